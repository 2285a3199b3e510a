package variant

import "fmt"

// ID selects which device control behaviour drives an appliance.
type ID string

const BasicFan ID = "BasicFan"
const AdvancedOscillationFan ID = "AdvancedOscillationFan"
const BasicPurifierFanWithOscillation ID = "BasicPurifierFanWithOscillation"
const BasicPurifierFanWithHeating ID = "BasicPurifierFanWithHeating"
const BasicPurifierFanWithHumidification ID = "BasicPurifierFanWithHumidification"
const AdvancedPurifierFan ID = "AdvancedPurifierFan"

var All = []ID{
	BasicFan,
	AdvancedOscillationFan,
	BasicPurifierFanWithOscillation,
	BasicPurifierFanWithHeating,
	BasicPurifierFanWithHumidification,
	AdvancedPurifierFan,
}

func Parse(s string) (ID, error) {
	for _, id := range All {
		if string(id) == s {
			return id, nil
		}
	}

	return "", fmt.Errorf("unknown variant: %s", s)
}

func (i ID) String() string {
	return string(i)
}
