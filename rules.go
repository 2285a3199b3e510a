package aircap

import (
	"fmt"
	"github.com/shimmeringbee/aircap/rules"
)

// DefaultRules returns an engine with the embedded hint and variant rule sets compiled.
func DefaultRules() (*rules.Engine, error) {
	e := rules.New()

	if err := e.LoadFS(rules.Embedded); err != nil {
		return nil, fmt.Errorf("failed to load default rules: %w", err)
	}

	if err := e.CompileRules(); err != nil {
		return nil, fmt.Errorf("failed to compile default rules: %w", err)
	}

	return e, nil
}

func validateResults(e *rules.Engine, ruleSet string, parse func(string) error) error {
	results, err := e.Results(ruleSet)
	if err != nil {
		return err
	}

	for _, r := range results {
		if err := parse(r); err != nil {
			return fmt.Errorf("rule set %s: %w", ruleSet, err)
		}
	}

	return nil
}
