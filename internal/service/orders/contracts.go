//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// DeliveryPort abstracts the subset of dispatch operations
// needed by orders Processor when handling order events
type DeliveryPort interface {
	CreateDelivery(ctx context.Context, in domain.NewDelivery) (domain.Delivery, error)
	CancelByOrder(ctx context.Context, orderID, reason string) (domain.Delivery, error)
}
