package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

var _ Detector = (*Purification)(nil)

var particulateFields = []string{"p25r", "p10r", "pm25", "pm10"}

// Purification detects automatic mode, filter life reporting, particulate sensors and front airflow direction.
type Purification struct{}

func (Purification) Name() string {
	return PurificationName
}

func (Purification) Detect(status telemetry.Payload, environmental telemetry.Payload) capability.Set {
	var found []capability.Tag

	if status.Present("auto") {
		found = append(found, capability.AutoMode)
	}

	if status.PresentAny("cflr", "hflr") {
		found = append(found, capability.FilterMonitoring)
	}

	if environmental.PresentAny(particulateFields...) {
		found = append(found, capability.PMSensors)
	}

	if status.Present("fdir") {
		found = append(found, capability.FrontAirflow)
	}

	return capability.NewSet(found...)
}

func (Purification) RequiredFields() []string {
	return append([]string{"auto", "cflr", "hflr", "fdir"}, particulateFields...)
}

func (Purification) Confidence(status telemetry.Payload, environmental telemetry.Payload) float64 {
	confidence := 0.0

	if status.Present("auto") {
		confidence += 0.4
	}

	if status.PresentAny("cflr", "hflr") {
		confidence += 0.4
	}

	if environmental.PresentAny(particulateFields...) {
		confidence += 0.3
	}

	if status.Present("fdir") {
		confidence += 0.1
	}

	return clamp(confidence)
}
