package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

const (
	BasicFanName              = "BasicFan"
	AdvancedOscillationName   = "AdvancedOscillation"
	PurificationName          = "Purification"
	AdvancedEnvironmentalName = "AdvancedEnvironmental"
	HeatingName               = "Heating"
	HumidificationName        = "Humidification"
)

// Detector inspects a status and environmental payload pair and reports which capabilities the fields present
// demonstrate. Implementations must not modify either payload and must treat absent or unusable fields as
// missing rather than failing.
type Detector interface {
	// Name identifies the detector, it is used to look up aggregation weights.
	Name() string
	// Detect returns the capabilities positively identified.
	Detect(status telemetry.Payload, environmental telemetry.Payload) capability.Set
	// RequiredFields lists every field the detector inspects, it is informational only.
	RequiredFields() []string
	// Confidence returns the detector's own estimate in [0, 1], independent of any other detector.
	Confidence(status telemetry.Payload, environmental telemetry.Payload) float64
}

// Defaults returns the shipped detectors in their fixed evaluation order.
func Defaults() []Detector {
	return []Detector{
		BasicFan{},
		AdvancedOscillation{},
		Purification{},
		AdvancedEnvironmental{},
		Heating{},
		Humidification{},
	}
}

func clamp(f float64) float64 {
	if f < 0.0 {
		return 0.0
	}

	if f > 1.0 {
		return 1.0
	}

	return f
}
