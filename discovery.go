package aircap

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/aircap/capability"
	"github.com/shimmeringbee/aircap/detector"
	"github.com/shimmeringbee/aircap/rules"
	"github.com/shimmeringbee/aircap/telemetry"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"math"
)

// Detection records how a single detector contributed to a discovery.
type Detection struct {
	Detector     string
	Capabilities capability.Set
	Confidence   float64
	// Relevant detectors found a capability or reported non zero confidence, only they are weighted.
	Relevant bool
	// Failed detectors panicked, they contribute nothing.
	Failed bool
}

// DeviceCapabilities is the outcome of a single discovery from one pair of payload snapshots.
type DeviceCapabilities struct {
	DiscoveredCapabilities capability.Set
	StatusFields           []string
	EnvironmentalFields    []string
	DeviceTypeHint         Hint
	ConfidenceScore        float64
	Detections             []Detection
}

func (c DeviceCapabilities) HasCapability(t capability.Tag) bool {
	return c.DiscoveredCapabilities.Has(t)
}

func (c DeviceCapabilities) HasAnyCapability(t ...capability.Tag) bool {
	return c.DiscoveredCapabilities.HasAny(t...)
}

func (c DeviceCapabilities) HasAllCapabilities(t ...capability.Tag) bool {
	return c.DiscoveredCapabilities.HasAll(t...)
}

// Discovery runs a fixed, ordered list of detectors over telemetry and aggregates their results. It holds no state
// between calls, once configured it may be shared between goroutines. The With* methods must be called before use.
type Discovery struct {
	detectors []detector.Detector
	config    Config
	rules     *rules.Engine
	ruleSet   string
	logger    logwrap.Logger
}

// NewDiscovery returns a Discovery with the shipped detectors, configuration and hint rules.
func NewDiscovery() (*Discovery, error) {
	e, err := DefaultRules()
	if err != nil {
		return nil, err
	}

	return &Discovery{
		detectors: detector.Defaults(),
		config:    DefaultConfig(),
		rules:     e,
		ruleSet:   rules.HintRuleSet,
		logger:    logwrap.New(discard.Discard()),
	}, nil
}

// WithDetectors replaces the detectors, they are run in the order provided.
func (d *Discovery) WithDetectors(detectors ...detector.Detector) {
	d.detectors = detectors
}

func (d *Discovery) WithConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	d.config = c
	return nil
}

// WithRules replaces the engine used to derive device type hints, its hint rule set must only produce known hints.
func (d *Discovery) WithRules(e *rules.Engine) error {
	if err := validateHintRuleSet(e, d.ruleSet); err != nil {
		return err
	}

	d.rules = e
	return nil
}

// WithHintRuleSet derives hints with another compiled rule set of the engine, usually one that depends upon the
// default hint rule set to extend it. Capabilities matching no rule are hinted as HintUnknownDevice.
func (d *Discovery) WithHintRuleSet(name string) error {
	if err := validateHintRuleSet(d.rules, name); err != nil {
		return err
	}

	d.ruleSet = name
	return nil
}

func validateHintRuleSet(e *rules.Engine, name string) error {
	return validateResults(e, name, func(s string) error {
		_, err := ParseHint(s)
		return err
	})
}

// Discover runs every detector against the payloads and aggregates their findings. It never fails, a detector
// that panics is logged and excluded.
func (d *Discovery) Discover(pctx context.Context, status telemetry.Payload, environmental telemetry.Payload) DeviceCapabilities {
	ctx, end := d.logger.Segment(pctx, "Discovering capabilities.", logwrap.Datum("StatusFields", len(status)), logwrap.Datum("EnvironmentalFields", len(environmental)))
	defer end()

	found := capability.NewSet()
	detections := make([]Detection, 0, len(d.detectors))
	anyRelevant := false

	for _, det := range d.detectors {
		detection := d.runDetector(ctx, det, status, environmental)
		detections = append(detections, detection)

		if detection.Failed {
			continue
		}

		found = found.Union(detection.Capabilities)
		anyRelevant = anyRelevant || detection.Relevant
	}

	dc := DeviceCapabilities{
		DiscoveredCapabilities: found,
		StatusFields:           status.Fields(),
		EnvironmentalFields:    environmental.Fields(),
		DeviceTypeHint:         HintUnknownDevice,
		ConfidenceScore:        0.0,
		Detections:             detections,
	}

	if !anyRelevant {
		d.logger.LogDebug(ctx, "No detector found any capability.")
		return dc
	}

	dc.ConfidenceScore = math.Min(1.0, d.weightedConfidence(detections)+coherenceBonus(d.config.Bonus, found))
	dc.DeviceTypeHint = d.suggestHint(ctx, found)

	d.logger.LogDebug(ctx, "Capabilities discovered.", logwrap.Datum("Capabilities", found.Names()), logwrap.Datum("DeviceTypeHint", string(dc.DeviceTypeHint)), logwrap.Datum("Confidence", dc.ConfidenceScore))

	return dc
}

func (d *Discovery) runDetector(ctx context.Context, det detector.Detector, status telemetry.Payload, environmental telemetry.Payload) (detection Detection) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.LogWarn(ctx, "Capability detector failed, excluding from discovery.", logwrap.Datum("Detector", detection.Detector), logwrap.Err(fmt.Errorf("detector panic: %v", r)))
			detection = Detection{Detector: detection.Detector, Capabilities: capability.NewSet(), Failed: true}
		}
	}()

	// Identified by type until Name has returned.
	detection.Detector = fmt.Sprintf("%T", det)
	detection.Detector = det.Name()

	caps := det.Detect(status, environmental)
	confidence := det.Confidence(status, environmental)

	if math.IsNaN(confidence) {
		confidence = 0.0
	}

	detection.Capabilities = caps
	detection.Confidence = math.Max(0.0, math.Min(1.0, confidence))
	detection.Relevant = caps.Len() > 0 || detection.Confidence > 0.0

	d.logger.LogDebug(ctx, "Capability detector completed.", logwrap.Datum("Detector", detection.Detector), logwrap.Datum("Capabilities", caps.Names()), logwrap.Datum("Confidence", detection.Confidence))

	return detection
}

func (d *Discovery) weightedConfidence(detections []Detection) float64 {
	totalWeightedConfidence := 0.0
	totalWeight := 0.0

	for _, detection := range detections {
		if detection.Failed || !detection.Relevant {
			continue
		}

		weight := d.config.weight(detection.Detector, detection.Capabilities.Len() > 0)

		totalWeightedConfidence += detection.Confidence * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0.0
	}

	return totalWeightedConfidence / totalWeight
}

func coherenceBonus(b CoherenceBonus, c capability.Set) float64 {
	bonus := 0.0

	if c.HasAll(capability.BasicFanControl, capability.BasicOscillation) {
		bonus += b.BasicFan
	}

	if c.HasAll(capability.AutoMode, capability.FilterMonitoring, capability.PMSensors) {
		bonus += b.Purification
	}

	if c.Count(capability.VOCSensor, capability.NO2Sensor, capability.CO2Sensor) >= 2 {
		bonus += b.AdvancedEnvironmental
	}

	if c.HasAll(capability.Heating, capability.AutoMode) {
		bonus += b.HeatingWithAutoMode
	}

	if c.HasAll(capability.Humidification, capability.HumiditySensor) {
		bonus += b.HumidificationWithHumiditySensor
	}

	if c.Has(capability.AngleOscillation) && !c.Has(capability.AutoMode) {
		bonus += b.AngleOscillationWithoutAutoMode
	}

	if c.HasAll(capability.HumiditySensor, capability.TemperatureSensor) {
		bonus += b.HumidityAndTemperatureSensors
	}

	return math.Min(b.Cap, bonus)
}

func (d *Discovery) suggestHint(ctx context.Context, c capability.Set) Hint {
	m, matched, err := d.rules.Evaluate(d.ruleSet, rules.Input{Capabilities: c.Names()})
	if err != nil {
		d.logger.LogError(ctx, "Failed to evaluate device type hint rules.", logwrap.Err(err))
		return HintUnknownDevice
	}

	if !matched {
		return HintUnknownDevice
	}

	return Hint(m.Result)
}
