package events

import (
	"context"
	"errors"
)

// Fanout publishes every event to each of its publishers in order.
type Fanout []Publisher

// Publish attempts every publisher and joins their failures.
func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, p := range f {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
