//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=retry_test

package retry

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/domain"
)

type dispatcher interface {
	AssignToDriver(ctx context.Context, deliveryID string) (bool, error)
	Get(ctx context.Context, id string) (domain.Delivery, error)
	PendingDeliveries(ctx context.Context, limit int) ([]domain.Delivery, error)
	Escalate(ctx context.Context, d domain.Delivery)
}

type counter interface {
	Inc()
}
