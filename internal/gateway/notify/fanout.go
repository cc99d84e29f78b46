package notify

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Fanout sends every message through all of its senders.
type Fanout []Sender

// Send implements Sender. Senders run concurrently, so a slow channel
// does not eat the deadline of the others. Their errors are joined.
func (f Fanout) Send(ctx context.Context, m Message) error {
	errs := make([]error, len(f))
	var g errgroup.Group
	for i, s := range f {
		if s == nil {
			continue
		}
		g.Go(func() error {
			errs[i] = s.Send(ctx, m)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
