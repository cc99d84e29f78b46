package dispatchtx

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// Repository is the set of row-locking operations available inside a transaction.
// Lookups return (nil, nil) when the row does not exist.
type Repository interface {
	DeliveryForUpdate(ctx context.Context, id string) (*domain.Delivery, error)
	DeliveryByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Delivery, error)
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	UpdateDelivery(ctx context.Context, d *domain.Delivery) error

	DriverForUpdate(ctx context.Context, id string) (*domain.Driver, error)
	DriverByUserID(ctx context.Context, userID string) (*domain.Driver, error)
	InsertDriver(ctx context.Context, d *domain.Driver) error
	UpdateDriver(ctx context.Context, d *domain.Driver) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
