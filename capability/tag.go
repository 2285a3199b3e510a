package capability

import "fmt"

// Tag is a single feature a device can be shown to have by the fields present in its telemetry.
type Tag uint8

const (
	BasicFanControl Tag = iota
	BasicOscillation
	NightMode
	SleepTimer

	AngleOscillation
	FrontAirflow

	AutoMode
	FilterMonitoring
	PMSensors

	VOCSensor
	NO2Sensor
	CO2Sensor
	HumiditySensor
	TemperatureSensor

	Humidification
	WaterHardness

	Heating

	// TiltControl and ContinuousMonitoring are part of the vocabulary, no shipped detector emits them.
	TiltControl
	ContinuousMonitoring
)

var StandardNames = map[Tag]string{
	BasicFanControl:      "basic_fan_control",
	BasicOscillation:     "basic_oscillation",
	NightMode:            "night_mode",
	SleepTimer:           "sleep_timer",
	AngleOscillation:     "angle_oscillation",
	FrontAirflow:         "front_airflow",
	AutoMode:             "auto_mode",
	FilterMonitoring:     "filter_monitoring",
	PMSensors:            "pm_sensors",
	VOCSensor:            "voc_sensor",
	NO2Sensor:            "no2_sensor",
	CO2Sensor:            "co2_sensor",
	HumiditySensor:       "humidity_sensor",
	TemperatureSensor:    "temperature_sensor",
	Humidification:       "humidification",
	WaterHardness:        "water_hardness",
	Heating:              "heating",
	TiltControl:          "tilt_control",
	ContinuousMonitoring: "continuous_monitoring",
}

// All returns every tag in declaration order.
func All() []Tag {
	tags := make([]Tag, 0, len(StandardNames))

	for t := BasicFanControl; t <= ContinuousMonitoring; t++ {
		tags = append(tags, t)
	}

	return tags
}

func (t Tag) String() string {
	if name, found := StandardNames[t]; found {
		return name
	}

	return fmt.Sprintf("unknown_capability(%d)", uint8(t))
}

func Parse(name string) (Tag, error) {
	for t, n := range StandardNames {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown capability name: %s", name)
}
