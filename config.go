package aircap

import (
	"errors"
	"fmt"
	"github.com/shimmeringbee/aircap/detector"
	"gopkg.in/yaml.v3"
	"io"
	"math"
)

// Weight is a detector's contribution to the aggregate confidence, depending on whether it found any capability.
type Weight struct {
	Productive   float64 `yaml:"productive"`
	Unproductive float64 `yaml:"unproductive"`
}

// CoherenceBonus rewards capability combinations that belong together, each pattern adds independently and the
// total is limited to Cap.
type CoherenceBonus struct {
	BasicFan                         float64 `yaml:"basicFan"`
	Purification                     float64 `yaml:"purification"`
	AdvancedEnvironmental            float64 `yaml:"advancedEnvironmental"`
	HeatingWithAutoMode              float64 `yaml:"heatingWithAutoMode"`
	HumidificationWithHumiditySensor float64 `yaml:"humidificationWithHumiditySensor"`
	AngleOscillationWithoutAutoMode  float64 `yaml:"angleOscillationWithoutAutoMode"`
	HumidityAndTemperatureSensors    float64 `yaml:"humidityAndTemperatureSensors"`
	Cap                              float64 `yaml:"cap"`
}

type Config struct {
	// Weights is keyed by detector name, a configured entry replaces both values.
	Weights       map[string]Weight `yaml:"weights"`
	DefaultWeight Weight            `yaml:"defaultWeight"`
	Bonus         CoherenceBonus    `yaml:"bonus"`
}

func DefaultConfig() Config {
	return Config{
		Weights: map[string]Weight{
			detector.BasicFanName:              {Productive: 3.0, Unproductive: 1.0},
			detector.AdvancedOscillationName:   {Productive: 2.5, Unproductive: 0.5},
			detector.PurificationName:          {Productive: 3.0, Unproductive: 1.0},
			detector.AdvancedEnvironmentalName: {Productive: 2.5, Unproductive: 0.5},
			detector.HeatingName:               {Productive: 2.0, Unproductive: 0.5},
			detector.HumidificationName:        {Productive: 2.0, Unproductive: 0.5},
		},
		DefaultWeight: Weight{Productive: 1.0, Unproductive: 1.0},
		Bonus: CoherenceBonus{
			BasicFan:                         0.10,
			Purification:                     0.15,
			AdvancedEnvironmental:            0.20,
			HeatingWithAutoMode:              0.15,
			HumidificationWithHumiditySensor: 0.15,
			AngleOscillationWithoutAutoMode:  0.20,
			HumidityAndTemperatureSensors:    0.10,
			Cap:                              0.30,
		},
	}
}

// LoadConfig reads YAML configuration over the defaults, anything absent keeps its default value.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	for name, w := range c.Weights {
		if invalidWeight(w) {
			return fmt.Errorf("invalid weight for detector %s: %+v", name, w)
		}
	}

	if invalidWeight(c.DefaultWeight) {
		return fmt.Errorf("invalid default weight: %+v", c.DefaultWeight)
	}

	b := c.Bonus
	for _, v := range []float64{b.BasicFan, b.Purification, b.AdvancedEnvironmental, b.HeatingWithAutoMode, b.HumidificationWithHumiditySensor, b.AngleOscillationWithoutAutoMode, b.HumidityAndTemperatureSensors} {
		if !finiteNonNegative(v) {
			return fmt.Errorf("invalid coherence bonus: %v", v)
		}
	}

	if !finiteNonNegative(b.Cap) || b.Cap > 1 {
		return fmt.Errorf("coherence bonus cap must be within [0, 1]: %v", b.Cap)
	}

	return nil
}

func invalidWeight(w Weight) bool {
	return !finiteNonNegative(w.Productive) || !finiteNonNegative(w.Unproductive)
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c Config) weight(detectorName string, productive bool) float64 {
	w, found := c.Weights[detectorName]
	if !found {
		w = c.DefaultWeight
	}

	if productive {
		return w.Productive
	}

	return w.Unproductive
}
