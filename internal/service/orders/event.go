package orders

import (
	"time"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// Event is a single order event
type Event struct {
	OrderID      string
	Status       string
	RestaurantID string
	CustomerID   string
	Items        []domain.OrderItem
	TotalAmount  float64
	// Pickup and Dropoff are nil when the event carries no coordinates.
	Pickup       *domain.Location
	Dropoff      *domain.Location
	Notes        string
	Reason       string
	CreatedAt    time.Time
}

// NewDelivery returns the delivery creation payload carried by a confirmed order.
func (e Event) NewDelivery() (domain.NewDelivery, error) {
	if e.Pickup == nil {
		return domain.NewDelivery{}, apperr.Invalidf("order %s: pickup latitude and longitude are required", e.OrderID)
	}
	if e.Dropoff == nil {
		return domain.NewDelivery{}, apperr.Invalidf("order %s: dropoff latitude and longitude are required", e.OrderID)
	}
	return domain.NewDelivery{
		OrderID:      e.OrderID,
		RestaurantID: e.RestaurantID,
		CustomerID:   e.CustomerID,
		OrderDetails: domain.OrderDetails{
			Items:       append([]domain.OrderItem(nil), e.Items...),
			TotalAmount: e.TotalAmount,
		},
		Pickup:  *e.Pickup,
		Dropoff: *e.Dropoff,
		Notes:   e.Notes,
	}, nil
}
