package aircap

import (
	"context"
	"github.com/shimmeringbee/aircap/telemetry"
	"github.com/shimmeringbee/aircap/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFactory_CreateAll(t *testing.T) {
	requests := []Request{
		{Serial: "one", DeviceType: "438", Status: telemetry.Payload{"fpwr": "ON", "fnsp": "0004", "oson": "ON"}},
		{Serial: "two", DeviceType: "999"},
		{Serial: "three", DeviceType: "358K"},
		{Serial: "four", DeviceType: "", Environmental: telemetry.Payload{"noxl": "0002"}},
	}

	t.Run("results are returned in request order", func(t *testing.T) {
		f := newFactory(t)

		results, err := f.CreateAll(context.Background(), requests, 2)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, variant.BasicFan, results[0].Device.Variant)
		assert.Equal(t, "one", results[0].Device.Serial)

		assert.ErrorIs(t, results[1].Err, ErrUnknownDeviceType)
		assert.Nil(t, results[1].Device)

		assert.Equal(t, variant.BasicPurifierFanWithHumidification, results[2].Device.Variant)
		assert.Equal(t, variant.AdvancedPurifierFan, results[3].Device.Variant)
	})

	t.Run("an unlimited batch matches a sequential one", func(t *testing.T) {
		f := newFactory(t)

		results, err := f.CreateAll(context.Background(), requests, 0)
		require.NoError(t, err)

		for i, r := range requests {
			d, err := f.CreateFromTelemetry(context.Background(), r.Serial, r.Credential, r.DeviceType, r.Status, r.Environmental)
			assert.Equal(t, err, results[i].Err)
			assert.Equal(t, d, results[i].Device)
		}
	})

	t.Run("a cancelled context fails the batch", func(t *testing.T) {
		f := newFactory(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.CreateAll(ctx, requests, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("an empty batch returns no results", func(t *testing.T) {
		f := newFactory(t)

		results, err := f.CreateAll(context.Background(), nil, 1)
		assert.NoError(t, err)
		assert.Empty(t, results)
	})
}
