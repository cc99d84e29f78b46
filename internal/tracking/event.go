package tracking

import (
	"context"
	"time"
)

// EventType names a live tracking frame.
type EventType string

// List of event types
const (
	EventDeliveryUpdate  EventType = "delivery_update"
	EventDeliveryRequest EventType = "delivery_request"
	EventDriverLocation  EventType = "driver_location"
	EventLocationUpdated EventType = "location_updated"
	EventError           EventType = "error"
)

// Event is a message delivered to every subscriber of a room.
type Event struct {
	Type  EventType      `json:"type"`
	Room  string         `json:"room"`
	Title string         `json:"title,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
	At    time.Time      `json:"at"`
}

// UserRoom is the room of a customer.
func UserRoom(id string) string { return "user_" + id }

// DriverRoom is the room of a driver.
func DriverRoom(id string) string { return "driver_" + id }

// RestaurantRoom is the room of a restaurant.
func RestaurantRoom(id string) string { return "restaurant_" + id }

// Broker fans events out to room subscribers.
// Publish never blocks on slow subscribers.
type Broker interface {
	Subscribe(ctx context.Context, room string) (<-chan Event, func(), error)
	Publish(ctx context.Context, e Event) error
}

type counter interface {
	Inc()
}
