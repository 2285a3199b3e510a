package aircap

import (
	"context"
	"github.com/shimmeringbee/aircap/telemetry"
	"golang.org/x/sync/errgroup"
)

// Request describes one device to create, typically an entry of a cloud account device listing.
type Request struct {
	Serial        string
	Credential    string
	DeviceType    string
	Status        telemetry.Payload
	Environmental telemetry.Payload
}

// Result is the outcome of one Request, Err holds ErrUnknownDeviceType when no variant was found.
type Result struct {
	Device *Device
	Err    error
}

// CreateAll creates devices concurrently, at most limit at once if limit is positive. Results are in request
// order, only cancellation of the context fails the batch.
func (f *Factory) CreateAll(ctx context.Context, requests []Request, limit int) ([]Result, error) {
	results := make([]Result, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, r := range requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			d, err := f.CreateFromTelemetry(gctx, r.Serial, r.Credential, r.DeviceType, r.Status, r.Environmental)
			results[i] = Result{Device: d, Err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
