package aircap

import "fmt"

// Hint is a display label for the product family suggested by discovered capabilities.
type Hint string

const (
	HintAdvancedPurifierFanWithHeating        Hint = "AdvancedPurifierFanWithHeating"
	HintAdvancedPurifierFanWithHumidification Hint = "AdvancedPurifierFanWithHumidification"
	HintAdvancedPurifierFan                   Hint = "AdvancedPurifierFan"
	HintBasicPurifierFanWithHeating           Hint = "BasicPurifierFanWithHeating"
	HintBasicPurifierFanWithHumidification    Hint = "BasicPurifierFanWithHumidification"
	HintBasicPurifierFanWithOscillation       Hint = "BasicPurifierFanWithOscillation"
	HintBasicPurifierFan                      Hint = "BasicPurifierFan"
	HintAdvancedOscillationFan                Hint = "AdvancedOscillationFan"
	HintBasicFan                              Hint = "BasicFan"
	HintUnknownDevice                         Hint = "UnknownDevice"
)

var hints = []Hint{
	HintAdvancedPurifierFanWithHeating,
	HintAdvancedPurifierFanWithHumidification,
	HintAdvancedPurifierFan,
	HintBasicPurifierFanWithHeating,
	HintBasicPurifierFanWithHumidification,
	HintBasicPurifierFanWithOscillation,
	HintBasicPurifierFan,
	HintAdvancedOscillationFan,
	HintBasicFan,
	HintUnknownDevice,
}

func ParseHint(s string) (Hint, error) {
	for _, h := range hints {
		if string(h) == s {
			return h, nil
		}
	}

	return "", fmt.Errorf("unknown device type hint: %s", s)
}
