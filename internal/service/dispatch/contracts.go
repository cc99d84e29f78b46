//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/domain"
)

type notifier interface {
	NotifyUser(ctx context.Context, userID, title string, data map[string]any) error
	NotifyDriver(ctx context.Context, driverID, title string, data map[string]any) error
	NotifyRestaurant(ctx context.Context, restaurantID, title string, data map[string]any) error
}

type driverFinder interface {
	FindEligibleDrivers(ctx context.Context, exclude map[string]struct{}) ([]domain.Driver, error)
}

// retrier queues background dispatch attempts.
type retrier interface {
	Dispatch(deliveryID string)
	Reassign(deliveryID string)
}

// ETAFactory estimates when a delivery reaches the customer.
type ETAFactory interface {
	Estimate(distanceKm float64, now time.Time) (time.Time, error)
}
