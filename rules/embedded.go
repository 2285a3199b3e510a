package rules

import "embed"

const (
	HintRuleSet    = "hint"
	VariantRuleSet = "variant"
)

// Embedded holds the default hint and variant rule sets.
//
//go:embed *.yaml
var Embedded embed.FS
