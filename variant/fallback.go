package variant

import "strings"

type prefixMapping struct {
	prefix  string
	variant ID
}

// Device type strings carry a regional suffix (438K, 527E), so the base type is matched as a prefix.
var staticMapping = []prefixMapping{
	{"739", AdvancedOscillationFan},
	{"438", BasicPurifierFanWithOscillation},
	{"527", BasicPurifierFanWithHeating},
	{"358", BasicPurifierFanWithHumidification},
	{"664", AdvancedPurifierFan},
}

// Fallback selects a variant from the device type string alone, for use when telemetry is unavailable or
// inconclusive.
func Fallback(deviceType string) (ID, bool) {
	for _, m := range staticMapping {
		if strings.HasPrefix(deviceType, m.prefix) {
			return m.variant, true
		}
	}

	return "", false
}

type productFamily struct {
	prefix string
	name   string
}

var productFamilies = []productFamily{
	{"739", "AM Series Pure Cool Desktop Tower Fan"},
	{"438", "TP Series Pure Cool Tower Fan"},
	{"527", "HP Series Pure Hot+Cool Tower Fan"},
	{"358", "PH Series Pure Humidify+Cool Tower Fan"},
	{"664", "BP Series Purifier Big+Quiet Tower Fan"},
	{"475", "TP02 Pure Cool Link"},
	{"469", "DP01/DP02 Pure Cool Link Desk"},
	{"455", "HP02 Pure Hot+Cool Link"},
	{"520", "AM06 Pure Cool Desk"},
	{"N223", "360 Eye robot vacuum"},
	{"276", "360 Heurist robot vacuum"},
	{"277", "360 Vis Nav robot vacuum"},
}

// ProductFamily returns a human readable product family for a device type string.
func ProductFamily(deviceType string) (string, bool) {
	for _, f := range productFamilies {
		if strings.HasPrefix(deviceType, f.prefix) {
			return f.name, true
		}
	}

	return "", false
}
