package detector

import (
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/telemetry"
)

var _ Detector = (*AdvancedEnvironmental)(nil)

// Only the gas sensors separate advanced purifiers from basic ones, humidity and temperature are widespread.
var gasSensorFields = []string{"va10", "noxl", "co2r"}

var environmentalSensors = []struct {
	field string
	tag   capability.Tag
}{
	{"va10", capability.VOCSensor},
	{"noxl", capability.NO2Sensor},
	{"co2r", capability.CO2Sensor},
	{"hact", capability.HumiditySensor},
	{"tact", capability.TemperatureSensor},
}

// AdvancedEnvironmental detects gas, humidity and temperature sensors reported in the environmental payload.
type AdvancedEnvironmental struct{}

func (AdvancedEnvironmental) Name() string {
	return AdvancedEnvironmentalName
}

func (AdvancedEnvironmental) Detect(_ telemetry.Payload, environmental telemetry.Payload) capability.Set {
	var found []capability.Tag

	for _, s := range environmentalSensors {
		if environmental.Present(s.field) {
			found = append(found, s.tag)
		}
	}

	return capability.NewSet(found...)
}

func (AdvancedEnvironmental) RequiredFields() []string {
	fields := make([]string, 0, len(environmentalSensors))

	for _, s := range environmentalSensors {
		fields = append(fields, s.field)
	}

	return fields
}

func (AdvancedEnvironmental) Confidence(_ telemetry.Payload, environmental telemetry.Payload) float64 {
	return clamp(float64(environmental.CountPresent(gasSensorFields...)) / float64(len(gasSensorFields)))
}
