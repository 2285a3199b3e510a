package aircap

import (
	"github.com/shimmeringbee/aircap/variant"
	"github.com/shimmeringbee/persistence"
	"sort"
)

type Source int

const (
	SourceDiscovery Source = iota
	SourceStatic
)

func (s Source) String() string {
	switch s {
	case SourceDiscovery:
		return "Discovery"
	case SourceStatic:
		return "Static"
	default:
		return "Unknown"
	}
}

// Device binds an appliance's identity to the variant chosen to control it. Capabilities are only present when
// the variant was selected by discovery.
type Device struct {
	Serial       string
	Credential   string
	DeviceType   string
	Variant      variant.ID
	Source       Source
	Capabilities *DeviceCapabilities
}

const staticSummaryNote = "Device created without capability discovery"

// Summary describes how a device was classified, it never contains the credential.
type Summary struct {
	Serial              string
	DeviceType          string
	DeviceClass         string
	ProductFamily       string
	Capabilities        []string
	ConfidenceScore     float64
	SuggestedType       string
	StatusFields        []string
	EnvironmentalFields []string
	Note                string
}

func (d Device) Summary() Summary {
	s := Summary{
		Serial:      d.Serial,
		DeviceType:  d.DeviceType,
		DeviceClass: d.Variant.String(),
	}

	s.ProductFamily, _ = variant.ProductFamily(d.DeviceType)

	if d.Capabilities == nil {
		s.Note = staticSummaryNote
		return s
	}

	s.Capabilities = copyStrings(d.Capabilities.DiscoveredCapabilities.Names())
	s.ConfidenceScore = d.Capabilities.ConfidenceScore
	s.SuggestedType = string(d.Capabilities.DeviceTypeHint)
	s.StatusFields = copyStrings(d.Capabilities.StatusFields)
	s.EnvironmentalFields = copyStrings(d.Capabilities.EnvironmentalFields)

	return s
}

// Store writes the summary into a caller owned section, for diagnostics that must outlive the device.
func (s Summary) Store(section persistence.Section) {
	section.Set("Serial", s.Serial)
	section.Set("DeviceType", s.DeviceType)
	section.Set("DeviceClass", s.DeviceClass)
	section.Set("ProductFamily", s.ProductFamily)
	section.Set("ConfidenceScore", s.ConfidenceScore)
	section.Set("SuggestedType", s.SuggestedType)
	section.Set("Note", s.Note)

	storeKeys(section.Section("Capabilities"), s.Capabilities)
	storeKeys(section.Section("StatusFields"), s.StatusFields)
	storeKeys(section.Section("EnvironmentalFields"), s.EnvironmentalFields)
}

func LoadSummary(section persistence.Section) Summary {
	s := Summary{}

	s.Serial, _ = section.String("Serial")
	s.DeviceType, _ = section.String("DeviceType")
	s.DeviceClass, _ = section.String("DeviceClass")
	s.ProductFamily, _ = section.String("ProductFamily")
	s.ConfidenceScore, _ = section.Float("ConfidenceScore")
	s.SuggestedType, _ = section.String("SuggestedType")
	s.Note, _ = section.String("Note")

	s.Capabilities = loadKeys(section.Section("Capabilities"))
	s.StatusFields = loadKeys(section.Section("StatusFields"))
	s.EnvironmentalFields = loadKeys(section.Section("EnvironmentalFields"))

	return s
}

func storeKeys(section persistence.Section, keys []string) {
	for _, k := range keys {
		section.Section(k)
	}
}

func loadKeys(section persistence.Section) []string {
	keys := section.Keys()
	if len(keys) == 0 {
		return nil
	}

	sort.Strings(keys)
	return keys
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	return append([]string{}, in...)
}
