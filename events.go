package aircap

// CapabilitiesDiscovered is sent after discovery has run for a device, before its variant is selected.
type CapabilitiesDiscovered struct {
	Serial       string
	DeviceType   string
	Capabilities DeviceCapabilities
}

// DeviceCreated is sent once a device has been bound to a variant.
type DeviceCreated struct {
	Device Device
}
