//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=driver_test

package driver

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

type notifier interface {
	NotifyUser(ctx context.Context, userID, title string, data map[string]any) error
}

type publisher interface {
	Publish(ctx context.Context, e tracking.Event) error
}
