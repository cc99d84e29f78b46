package dispatchtx

import (
	"context"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// DeliveryReader is the non-locking read side of the delivery table.
type DeliveryReader interface {
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, int, error)
	// ListUnassigned returns CONFIRMED deliveries without a driver, oldest first.
	ListUnassigned(ctx context.Context, limit int) ([]domain.Delivery, error)
	// ListDriverDeliveries returns the driver's active deliveries plus the ones delivered since the given time.
	ListDriverDeliveries(ctx context.Context, driverID string, since time.Time) ([]domain.Delivery, error)
}

// DriverReader is the non-locking read side of the driver table.
type DriverReader interface {
	GetDriver(ctx context.Context, id string) (*domain.Driver, error)
	ListDrivers(ctx context.Context, p domain.Page) ([]domain.Driver, int, error)
	// ListEligibleDrivers returns available, verified drivers in AVAILABLE status.
	ListEligibleDrivers(ctx context.Context) ([]domain.Driver, error)
}

// Store bundles the transaction runner with both readers.
type Store interface {
	Runner
	DeliveryReader
	DriverReader
	Close()
}
