package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

var _ Detector = (*Heating)(nil)

type Heating struct{}

func (Heating) Name() string {
	return HeatingName
}

func (Heating) Detect(status telemetry.Payload, _ telemetry.Payload) capability.Set {
	if status.Present("hmod") {
		return capability.NewSet(capability.Heating)
	}

	return capability.NewSet()
}

func (Heating) RequiredFields() []string {
	return []string{"hmod", "hmax"}
}

func (Heating) Confidence(status telemetry.Payload, _ telemetry.Payload) float64 {
	if status.Present("hmod") {
		return 1.0
	}

	return 0.0
}
