package app

import (
	"context"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/service/orders"
	"github.com/thakshilaCodes/Feedo/internal/transport/kafka"
)

// makeOrdersHandler bounds every order event by timeout and turns
// validation failures into permanent errors so the consumer skips them.
func makeOrdersHandler(p *orders.Processor, timeout time.Duration) kafka.HandleFunc {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return kafka.SkipInvalid(func(ctx context.Context, event orders.Event) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Handle(ctx, event)
	})
}
