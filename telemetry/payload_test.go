package telemetry

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPayload_Current(t *testing.T) {
	t.Run("scalar values resolve to themselves", func(t *testing.T) {
		p := Payload{"fpwr": "ON"}

		v, ok := p.Current("fpwr")
		assert.True(t, ok)
		assert.Equal(t, "ON", v)
	})

	t.Run("pairs resolve to the current element", func(t *testing.T) {
		p := Payload{
			"fpwr": []any{"OFF", "ON"},
			"fnsp": []string{"0001", "0004"},
		}

		v, ok := p.Current("fpwr")
		assert.True(t, ok)
		assert.Equal(t, "ON", v)

		v, ok = p.Current("fnsp")
		assert.True(t, ok)
		assert.Equal(t, "0004", v)
	})

	t.Run("missing, nil and nil current values are not present", func(t *testing.T) {
		p := Payload{
			"hmod": nil,
			"hume": []any{"HUMD", nil},
		}

		assert.False(t, p.Present("auto"))
		assert.False(t, p.Present("hmod"))
		assert.False(t, p.Present("hume"))
	})

	t.Run("malformed pairs are not present", func(t *testing.T) {
		p := Payload{
			"osal": []any{"0005"},
			"osau": []string{"0001", "0002", "0003"},
		}

		assert.False(t, p.Present("osal"))
		assert.False(t, p.Present("osau"))
	})

	t.Run("nil payload answers queries", func(t *testing.T) {
		var p Payload

		assert.False(t, p.Present("fpwr"))
		assert.True(t, p.Empty())
		assert.Empty(t, p.Fields())
	})
}

func TestPayload_Presence(t *testing.T) {
	p := Payload{"fpwr": "ON", "fnsp": "AUTO", "nmod": nil}

	assert.True(t, p.PresentAll("fpwr", "fnsp"))
	assert.False(t, p.PresentAll("fpwr", "nmod"))
	assert.True(t, p.PresentAll())
	assert.True(t, p.PresentAny("nmod", "fnsp"))
	assert.False(t, p.PresentAny("nmod", "sltm"))
	assert.Equal(t, 2, p.CountPresent("fpwr", "fnsp", "nmod", "sltm"))
}

func TestPayload_Fields(t *testing.T) {
	t.Run("returns every key sorted, including nil values", func(t *testing.T) {
		p := Payload{"oson": "ON", "fpwr": "ON", "nmod": nil}

		assert.Equal(t, []string{"fpwr", "nmod", "oson"}, p.Fields())
	})
}
