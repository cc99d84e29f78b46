package kafka

import (
	"strings"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/service/orders"
)

// LocationDTO is a pickup or dropoff point of an order event
type LocationDTO struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ItemDTO is an order line of an order event
type ItemDTO struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	OrderID      string      `json:"order_id"`
	Status       string      `json:"status"`
	RestaurantID string      `json:"restaurant_id"`
	CustomerID   string      `json:"customer_id"`
	Items        []ItemDTO   `json:"items"`
	TotalAmount  float64     `json:"total_amount"`
	Pickup       LocationDTO `json:"pickup"`
	Dropoff      LocationDTO `json:"dropoff"`
	Notes        string      `json:"notes"`
	Reason       string      `json:"reason"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	var items []domain.OrderItem
	for _, it := range dto.Items {
		items = append(items, domain.OrderItem{
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return orders.Event{
		OrderID:      strings.TrimSpace(dto.OrderID),
		Status:       strings.TrimSpace(dto.Status),
		RestaurantID: strings.TrimSpace(dto.RestaurantID),
		CustomerID:   strings.TrimSpace(dto.CustomerID),
		Items:        items,
		TotalAmount:  dto.TotalAmount,
		Pickup:       toLocation(dto.Pickup),
		Dropoff:      toLocation(dto.Dropoff),
		Notes:        dto.Notes,
		Reason:       dto.Reason,
		CreatedAt:    dto.CreatedAt,
	}
}

// toLocation returns nil unless both coordinates are present.
func toLocation(l LocationDTO) *domain.Location {
	if l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &domain.Location{
		Address:   strings.TrimSpace(l.Address),
		Latitude:  *l.Latitude,
		Longitude: *l.Longitude,
	}
}
