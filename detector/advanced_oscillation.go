package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

var _ Detector = (*AdvancedOscillation)(nil)

// AdvancedOscillation detects oscillation with configurable lower and upper angles.
type AdvancedOscillation struct{}

func (AdvancedOscillation) Name() string {
	return AdvancedOscillationName
}

func (AdvancedOscillation) Detect(status telemetry.Payload, _ telemetry.Payload) capability.Set {
	if status.PresentAll("osal", "osau") {
		return capability.NewSet(capability.AngleOscillation)
	}

	return capability.NewSet()
}

func (AdvancedOscillation) RequiredFields() []string {
	return []string{"osal", "osau", "ancp"}
}

func (AdvancedOscillation) Confidence(status telemetry.Payload, _ telemetry.Payload) float64 {
	switch status.CountPresent("osal", "osau") {
	case 2:
		return 0.95
	case 1:
		return 0.5
	default:
		return 0.0
	}
}
