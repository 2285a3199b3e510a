package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

var _ Detector = (*BasicFan)(nil)

// BasicFan detects power and speed control, plain oscillation, night mode and the sleep timer.
type BasicFan struct{}

func (BasicFan) Name() string {
	return BasicFanName
}

func (BasicFan) Detect(status telemetry.Payload, _ telemetry.Payload) capability.Set {
	var found []capability.Tag

	if status.PresentAll("fpwr", "fnsp") {
		found = append(found, capability.BasicFanControl)
	}

	if status.Present("oson") {
		found = append(found, capability.BasicOscillation)
	}

	if status.PresentAll("nmod", "nmdv") {
		found = append(found, capability.NightMode)
	}

	if status.Present("sltm") {
		found = append(found, capability.SleepTimer)
	}

	return capability.NewSet(found...)
}

func (BasicFan) RequiredFields() []string {
	return []string{"fpwr", "fnsp", "oson", "nmod", "nmdv", "sltm"}
}

func (BasicFan) Confidence(status telemetry.Payload, _ telemetry.Payload) float64 {
	confidence := 0.0

	if status.PresentAll("fpwr", "fnsp") {
		confidence += 0.8
	}

	if status.Present("oson") {
		confidence += 0.15
	}

	if status.Present("sltm") {
		confidence += 0.05
	}

	return clamp(confidence)
}
