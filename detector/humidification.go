package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

var _ Detector = (*Humidification)(nil)

// Humidification detects a humidifier and its water hardness setting. Confidence rests on hume alone, water
// hardness is never reported without it.
type Humidification struct{}

func (Humidification) Name() string {
	return HumidificationName
}

func (Humidification) Detect(status telemetry.Payload, _ telemetry.Payload) capability.Set {
	var found []capability.Tag

	if status.Present("hume") {
		found = append(found, capability.Humidification)
	}

	if status.Present("wath") {
		found = append(found, capability.WaterHardness)
	}

	return capability.NewSet(found...)
}

func (Humidification) RequiredFields() []string {
	return []string{"hume", "haut", "humt", "wath"}
}

func (Humidification) Confidence(status telemetry.Payload, _ telemetry.Payload) float64 {
	if status.Present("hume") {
		return 1.0
	}

	return 0.0
}
