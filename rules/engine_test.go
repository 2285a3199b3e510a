package rules

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"testing/fstest"
)

func descriptions(crs []CompiledRule) []string {
	var d []string

	for _, cr := range crs {
		d = append(d, cr.Description)
		d = append(d, descriptions(cr.Children)...)
	}

	return d
}

func Test_compileRule(t *testing.T) {
	t.Run("returns an error if the filter compilation fails", func(t *testing.T) {
		r := Rule{
			Filter: "INVALID UNPARSABLE FILTER",
			Result: "BasicFan",
		}

		crs, err := compileRules([]Rule{r})
		assert.Error(t, err)
		assert.Nil(t, crs)
		assert.Contains(t, err.Error(), "filter compilation:")
	})

	t.Run("returns an error if the filter is not boolean", func(t *testing.T) {
		r := Rule{
			Filter: "Capabilities",
			Result: "BasicFan",
		}

		_, err := compileRules([]Rule{r})
		assert.Error(t, err)
	})

	t.Run("returns an error if a rule has no result", func(t *testing.T) {
		r := Rule{
			Description: "resultless",
			Filter:      "true",
		}

		_, err := compileRules([]Rule{r})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "resultless: rule has no result")
	})

	t.Run("returns a compiled rule", func(t *testing.T) {
		r := Rule{
			Description: "Fan control",
			Filter:      `"basic_fan_control" in Capabilities`,
			Result:      "BasicFan",
		}

		cr, err := compileRules([]Rule{r})
		assert.NoError(t, err)

		assert.Equal(t, r.Description, cr[0].Description)
		assert.Equal(t, r.Result, cr[0].Result)
		assert.NotNil(t, cr[0].Filter)
		assert.Nil(t, cr[0].Children)
	})
}

func TestEngine_CompileRules(t *testing.T) {
	t.Run("raises an error if a depended on ruleset is not loaded", func(t *testing.T) {
		e := Engine{
			RuleSets: map[string]RuleSet{
				"one": {
					Name:      "one",
					DependsOn: []string{"two"},
				},
			},
		}

		err := e.CompileRules()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ruleset missing dependency: one->two")
	})

	t.Run("raises an error if there is a circular dependency", func(t *testing.T) {
		e := Engine{
			RuleSets: map[string]RuleSet{
				"one": {
					Name:      "one",
					DependsOn: []string{"two"},
				},
				"two": {
					Name:      "two",
					DependsOn: []string{"one"},
				},
			},
		}

		err := e.CompileRules()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ruleset circular dependency: one->two->one")
	})

	t.Run("raises an error if a rule fails to compile", func(t *testing.T) {
		e := Engine{
			RuleSets: map[string]RuleSet{
				"one": {
					Name: "one",
					Rules: []Rule{
						{
							Description: "this rule",
							Filter:      "INVALID UNPARSABLE FILTER",
							Result:      "x",
						},
					},
				},
			},
		}

		err := e.CompileRules()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ruleset compilation: one: filter compilation:")
	})

	t.Run("successfully compiles nested rules and places dependencies first", func(t *testing.T) {
		e := Engine{
			RuleSets: map[string]RuleSet{
				"one": {
					Name:      "one",
					DependsOn: []string{"two", "three"},
					Rules: []Rule{
						{Description: "one", Filter: "1 == 1", Result: "a"},
						{
							Description: "two",
							Filter:      "1 == 1",
							Result:      "b",
							Children: []Rule{
								{Description: "two-one", Filter: "1 == 1", Result: "c"},
							},
						},
					},
				},
				"two": {
					Name:      "two",
					DependsOn: []string{"three"},
					Rules:     []Rule{{Description: "three", Filter: "1 == 1", Result: "d"}},
				},
				"three": {
					Name:  "three",
					Rules: []Rule{{Description: "four", Filter: "1 == 1", Result: "e"}},
				},
			},
		}

		assert.NoError(t, e.CompileRules())
		assert.Equal(t, []string{"four", "three", "one", "two", "two-one"}, descriptions(e.Rules["one"]))
		assert.Equal(t, []string{"four", "three"}, descriptions(e.Rules["two"]))
		assert.Equal(t, []string{"four"}, descriptions(e.Rules["three"]))
	})
}

func TestEngine_Load(t *testing.T) {
	t.Run("loads a rule set from a string", func(t *testing.T) {
		e := New()

		err := e.LoadString(`
name: extra
dependsOn: [variant]
rules:
  - description: Tilt
    filter: '"tilt_control" in Capabilities'
    result: BasicFan
`)
		require.NoError(t, err)

		rs := e.RuleSets["extra"]
		assert.Equal(t, []string{"variant"}, rs.DependsOn)
		assert.Equal(t, "BasicFan", rs.Rules[0].Result)
	})

	t.Run("rejects unnamed and duplicate rule sets", func(t *testing.T) {
		e := New()

		assert.Error(t, e.LoadString("rules: []"))
		assert.NoError(t, e.LoadString("name: one"))
		assert.Error(t, e.LoadString("name: one"))
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		e := New()

		assert.Error(t, e.LoadString("name: [unterminated"))
	})

	t.Run("loads only yaml files from a filesystem", func(t *testing.T) {
		e := New()

		err := e.LoadFS(fstest.MapFS{
			"a.yaml":    {Data: []byte("name: a")},
			"notes.txt": {Data: []byte("not a rule set")},
		})
		require.NoError(t, err)

		assert.Contains(t, e.RuleSets, "a")
		assert.Len(t, e.RuleSets, 1)
	})
}

func TestEngine_Evaluate(t *testing.T) {
	e := New()
	require.NoError(t, e.LoadString(`
name: test
rules:
  - description: never
    filter: 'false'
    result: zero
  - description: heating
    filter: '"heating" in Capabilities'
    result: one
    children:
      - description: heating and auto
        filter: '"auto_mode" in Capabilities'
        result: two
        children:
          - description: heating, auto and filter
            filter: '"filter_monitoring" in Capabilities'
            result: three
      - description: heating and humidification
        filter: '"humidification" in Capabilities'
        result: four
  - description: auto
    filter: '"auto_mode" in Capabilities'
    result: five
`))
	require.NoError(t, e.CompileRules())

	t.Run("first matching rule wins", func(t *testing.T) {
		m, matched, err := e.Evaluate("test", Input{Capabilities: []string{"auto_mode"}})
		assert.NoError(t, err)
		assert.True(t, matched)
		assert.Equal(t, Match{Description: "auto", Result: "five"}, m)
	})

	t.Run("the winning rule is returned when no child matches", func(t *testing.T) {
		m, matched, err := e.Evaluate("test", Input{Capabilities: []string{"heating"}})
		assert.NoError(t, err)
		assert.True(t, matched)
		assert.Equal(t, "one", m.Result)
	})

	t.Run("descends into the deepest matching child", func(t *testing.T) {
		m, _, err := e.Evaluate("test", Input{Capabilities: []string{"heating", "auto_mode", "filter_monitoring", "humidification"}})
		assert.NoError(t, err)
		assert.Equal(t, "three", m.Result)

		m, _, err = e.Evaluate("test", Input{Capabilities: []string{"heating", "humidification"}})
		assert.NoError(t, err)
		assert.Equal(t, "four", m.Result)
	})

	t.Run("reports no match", func(t *testing.T) {
		_, matched, err := e.Evaluate("test", Input{})
		assert.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("errors for an unknown rule set", func(t *testing.T) {
		_, _, err := e.Evaluate("missing", Input{})
		assert.ErrorIs(t, err, ErrUnknownRuleSet)
	})

	t.Run("lists every result", func(t *testing.T) {
		results, err := e.Results("test")
		assert.NoError(t, err)
		assert.Equal(t, []string{"zero", "one", "two", "three", "four", "five"}, results)

		_, err = e.Results("missing")
		assert.ErrorIs(t, err, ErrUnknownRuleSet)
	})
}
