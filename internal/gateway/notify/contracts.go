//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=notify_test

package notify

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

// Sender delivers a notification through a single channel.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

type counter interface {
	Inc()
}

type publisher interface {
	Publish(ctx context.Context, e tracking.Event) error
}

type phoneResolver interface {
	Phone(ctx context.Context, driverID string) (string, error)
}
