package rules

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

var ErrUnknownRuleSet = errors.New("unknown rule set")

type Engine struct {
	RuleSets map[string]RuleSet
	Rules    map[string][]CompiledRule
}

type Rule struct {
	Description string `yaml:"description"`
	Filter      string `yaml:"filter"`
	Result      string `yaml:"result"`
	Children    []Rule `yaml:"children,omitempty"`
}

type CompiledRule struct {
	Description string
	Filter      *vm.Program
	Result      string
	Children    []CompiledRule
}

type RuleSet struct {
	Name      string   `yaml:"name"`
	DependsOn []string `yaml:"dependsOn,omitempty"`
	Rules     []Rule   `yaml:"rules"`
}

// Input is the environment filters are evaluated against, capabilities are referenced by their standard names,
// e.g. '"auto_mode" in Capabilities'.
type Input struct {
	Capabilities []string
}

type Match struct {
	Description string
	Result      string
}

func New() *Engine {
	return &Engine{
		RuleSets: map[string]RuleSet{},
		Rules:    map[string][]CompiledRule{},
	}
}

func (e *Engine) LoadString(s string) error {
	return e.LoadReader(strings.NewReader(s))
}

// LoadReader reads a single YAML rule set.
func (e *Engine) LoadReader(r io.Reader) error {
	var rs RuleSet

	if err := yaml.NewDecoder(r).Decode(&rs); err != nil {
		return fmt.Errorf("failed to decode rule set: %w", err)
	}

	if len(rs.Name) == 0 {
		return fmt.Errorf("rule set has no name")
	}

	if _, found := e.RuleSets[rs.Name]; found {
		return fmt.Errorf("rule set already loaded: %s", rs.Name)
	}

	if e.RuleSets == nil {
		e.RuleSets = map[string]RuleSet{}
	}

	e.RuleSets[rs.Name] = rs

	return nil
}

// LoadFS loads every .yaml file in the root of the filesystem.
func (e *Engine) LoadFS(f fs.FS) error {
	entries, err := fs.ReadDir(f, ".")
	if err != nil {
		return fmt.Errorf("failed to list rule sets: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}

		data, err := fs.ReadFile(f, entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read rule set %s: %w", entry.Name(), err)
		}

		if err := e.LoadReader(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}

	return nil
}

// CompileRules compiles every loaded rule set. A rule set is evaluated after the rule sets it depends upon, so
// dependants can only append rules to their dependencies.
func (e *Engine) CompileRules() error {
	own := map[string][]CompiledRule{}

	for _, name := range e.ruleSetNames() {
		cr, err := compileRules(e.RuleSets[name].Rules)
		if err != nil {
			return fmt.Errorf("ruleset compilation: %s: %w", name, err)
		}
		own[name] = cr
	}

	resolved := map[string][]CompiledRule{}

	for _, name := range e.ruleSetNames() {
		var order []string

		if err := e.resolveOrder(map[string]bool{}, []string{}, name, &order); err != nil {
			return err
		}

		var rules []CompiledRule

		for _, n := range order {
			rules = append(rules, own[n]...)
		}

		resolved[name] = rules
	}

	e.Rules = resolved

	return nil
}

func (e *Engine) ruleSetNames() []string {
	var names []string

	for k := range e.RuleSets {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

func (e *Engine) resolveOrder(alreadyLoaded map[string]bool, trail []string, name string, order *[]string) error {
	rs, ok := e.RuleSets[name]
	if !ok {
		return fmt.Errorf("ruleset missing dependency: %s->%s", strings.Join(trail, "->"), name)
	}

	trail = append(trail, rs.Name)

	for _, k := range rs.DependsOn {
		for _, t := range trail {
			if k == t {
				return fmt.Errorf("ruleset circular dependency: %s->%s", strings.Join(trail, "->"), k)
			}
		}

		if !alreadyLoaded[k] {
			if err := e.resolveOrder(alreadyLoaded, trail, k, order); err != nil {
				return err
			}
		}
	}

	alreadyLoaded[name] = true
	*order = append(*order, name)

	return nil
}

func compileRules(rules []Rule) ([]CompiledRule, error) {
	var compiledRules []CompiledRule

	for _, rule := range rules {
		if len(rule.Result) == 0 {
			return nil, fmt.Errorf("%s: rule has no result", rule.Description)
		}

		cf, err := expr.Compile(rule.Filter, expr.Env(Input{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("filter compilation: %w", err)
		}

		if childCompiledRules, err := compileRules(rule.Children); err != nil {
			return nil, fmt.Errorf("%s: %w", rule.Description, err)
		} else {
			compiledRules = append(compiledRules, CompiledRule{
				Description: rule.Description,
				Filter:      cf,
				Result:      rule.Result,
				Children:    childCompiledRules,
			})
		}
	}

	return compiledRules, nil
}

// Evaluate walks the compiled rules of a rule set in order, the first rule whose filter matches wins. A winning
// rule is refined by the first of its children that also matches, recursively.
func (e *Engine) Evaluate(name string, in Input) (Match, bool, error) {
	rules, found := e.Rules[name]
	if !found {
		return Match{}, false, fmt.Errorf("%w: %s", ErrUnknownRuleSet, name)
	}

	for _, r := range rules {
		if m, matched, err := r.match(in); err != nil {
			return Match{}, false, err
		} else if matched {
			return m, true, nil
		}
	}

	return Match{}, false, nil
}

// Results returns every result a compiled rule set can produce, in rule order.
func (e *Engine) Results(name string) ([]string, error) {
	rules, found := e.Rules[name]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleSet, name)
	}

	var results []string
	for _, r := range rules {
		results = r.appendResults(results)
	}

	return results, nil
}

func (r CompiledRule) match(in Input) (Match, bool, error) {
	out, err := expr.Run(r.Filter, in)
	if err != nil {
		return Match{}, false, fmt.Errorf("filter execution: %s: %w", r.Description, err)
	}

	if matched, ok := out.(bool); !ok || !matched {
		return Match{}, false, nil
	}

	for _, c := range r.Children {
		if m, matched, err := c.match(in); err != nil {
			return Match{}, false, err
		} else if matched {
			return m, true, nil
		}
	}

	return Match{Description: r.Description, Result: r.Result}, true, nil
}

func (r CompiledRule) appendResults(results []string) []string {
	results = append(results, r.Result)

	for _, c := range r.Children {
		results = c.appendResults(results)
	}

	return results
}
