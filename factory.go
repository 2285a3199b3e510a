package aircap

import (
	"context"
	"errors"
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/rules"
	"github.com/shimmeringbee/aircap/telemetry"
	"github.com/shimmeringbee/aircap/variant"
	"github.com/shimmeringbee/callbacks"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
)

// ErrUnknownDeviceType is returned when neither discovered capabilities nor the device type string identify a
// variant.
var ErrUnknownDeviceType = errors.New("unknown device type")

// Factory selects the control variant for an appliance, preferring its discovered capabilities over its device
// type string.
type Factory struct {
	discovery *Discovery
	rules     *rules.Engine
	ruleSet   string
	logger    logwrap.Logger
	callbacks callbacks.AdderCaller

	// Only a discovery created by NewFactory follows the factory's logger.
	ownsDiscovery bool
}

func NewFactory() (*Factory, error) {
	d, err := NewDiscovery()
	if err != nil {
		return nil, err
	}

	f, err := NewFactoryWithDiscovery(d, d.rules)
	if err != nil {
		return nil, err
	}

	f.ownsDiscovery = true
	return f, nil
}

// NewFactoryWithDiscovery constructs a factory using the provided discovery and an engine whose variant rule set
// must only produce known variants. The discovery keeps its own logger, the factory's logging setters do not change it.
func NewFactoryWithDiscovery(d *Discovery, e *rules.Engine) (*Factory, error) {
	if err := validateVariantRuleSet(e, rules.VariantRuleSet); err != nil {
		return nil, err
	}

	return &Factory{
		discovery: d,
		rules:     e,
		ruleSet:   rules.VariantRuleSet,
		logger:    logwrap.New(discard.Discard()),
		callbacks: callbacks.Create(),
	}, nil
}

// WithVariantRuleSet selects variants with another compiled rule set of the factory's engine, usually one that
// depends upon the default variant rule set to extend it.
func (f *Factory) WithVariantRuleSet(name string) error {
	if err := validateVariantRuleSet(f.rules, name); err != nil {
		return err
	}

	f.ruleSet = name
	return nil
}

func validateVariantRuleSet(e *rules.Engine, name string) error {
	return validateResults(e, name, func(s string) error {
		_, err := variant.Parse(s)
		return err
	})
}

// Listen registers a function receiving DeviceCreated or CapabilitiesDiscovered events, e.g.
// func(context.Context, DeviceCreated) error. Listeners must be added before the factory is used.
func (f *Factory) Listen(fn any) {
	f.callbacks.Add(fn)
}

// Select picks a variant for a set of capabilities, it returns false if no capability pattern matches.
func (f *Factory) Select(ctx context.Context, c capability.Set) (variant.ID, bool) {
	m, matched, err := f.rules.Evaluate(f.ruleSet, rules.Input{Capabilities: c.Names()})
	if err != nil {
		f.logger.LogError(ctx, "Failed to evaluate variant rules.", logwrap.Err(err))
		return "", false
	}

	if !matched {
		return "", false
	}

	id, err := variant.Parse(m.Result)
	if err != nil {
		f.logger.LogError(ctx, "Variant rule produced unknown variant.", logwrap.Err(err), logwrap.Datum("Rule", m.Description))
		return "", false
	}

	f.logger.LogDebug(ctx, "Variant rule matched.", logwrap.Datum("Rule", m.Description), logwrap.Datum("Variant", id.String()))

	return id, true
}

// CreateFromTelemetry binds a device to a variant. With telemetry present capabilities are discovered and matched,
// falling back to the device type string if nothing matches. ErrUnknownDeviceType is returned when both fail.
func (f *Factory) CreateFromTelemetry(pctx context.Context, serial string, credential string, deviceType string, status telemetry.Payload, environmental telemetry.Payload) (*Device, error) {
	ctx, end := f.logger.Segment(pctx, "Creating device.", logwrap.Datum("Serial", serial), logwrap.Datum("DeviceType", deviceType))
	defer end()

	if status.Empty() && environmental.Empty() {
		f.logger.LogWarn(ctx, "No telemetry available for capability discovery, using static mapping.")
		return f.fallback(ctx, serial, credential, deviceType)
	}

	caps := f.discovery.Discover(ctx, status, environmental)

	f.logger.LogInfo(ctx, "Capabilities discovered.", logwrap.Datum("Capabilities", caps.DiscoveredCapabilities.Names()), logwrap.Datum("DeviceTypeHint", string(caps.DeviceTypeHint)), logwrap.Datum("Confidence", caps.ConfidenceScore))
	f.emit(ctx, CapabilitiesDiscovered{Serial: serial, DeviceType: deviceType, Capabilities: caps})

	id, found := f.Select(ctx, caps.DiscoveredCapabilities)
	if !found {
		f.logger.LogWarn(ctx, "No variant matched discovered capabilities, using static mapping.", logwrap.Datum("Capabilities", caps.DiscoveredCapabilities.Names()))
		return f.fallback(ctx, serial, credential, deviceType)
	}

	d := &Device{
		Serial:       serial,
		Credential:   credential,
		DeviceType:   deviceType,
		Variant:      id,
		Source:       SourceDiscovery,
		Capabilities: &caps,
	}

	f.logger.LogInfo(ctx, "Created device from discovered capabilities.", logwrap.Datum("Variant", id.String()))
	f.emit(ctx, DeviceCreated{Device: *d})

	return d, nil
}

func (f *Factory) fallback(ctx context.Context, serial string, credential string, deviceType string) (*Device, error) {
	id, found := variant.Fallback(deviceType)
	if !found {
		f.logger.LogError(ctx, "Unknown device type, no static mapping available.")
		return nil, ErrUnknownDeviceType
	}

	d := &Device{
		Serial:     serial,
		Credential: credential,
		DeviceType: deviceType,
		Variant:    id,
		Source:     SourceStatic,
	}

	f.logger.LogInfo(ctx, "Created device from static mapping.", logwrap.Datum("Variant", id.String()))
	f.emit(ctx, DeviceCreated{Device: *d})

	return d, nil
}

func (f *Factory) emit(ctx context.Context, event any) {
	if err := f.callbacks.Call(ctx, event); err != nil {
		f.logger.LogWarn(ctx, "Event listener returned an error.", logwrap.Err(err))
	}
}
