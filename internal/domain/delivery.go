package domain

import "time"

// DeliveryStatus represents the lifecycle status of a delivery.
type DeliveryStatus string

// Location is a pickup or dropoff point.
type Location struct {
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// OrderItem is a single line of the order.
type OrderItem struct {
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"min=1"`
	Price    float64 `json:"price" validate:"min=0"`
}

// OrderDetails is the order snapshot carried by the delivery.
type OrderDetails struct {
	Items       []OrderItem `json:"items" validate:"dive"`
	TotalAmount float64     `json:"totalAmount" validate:"min=0"`
}

// StatusChange is a single history entry.
type StatusChange struct {
	Status DeliveryStatus `json:"status"`
	At     time.Time      `json:"timestamp"`
	Note   string         `json:"note,omitempty"`
}

// Rejection records a driver declining the delivery.
type Rejection struct {
	DriverID string    `json:"driverId"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"rejectedAt"`
}

// Delivery is the dispatch record of a single order.
type Delivery struct {
	ID                    string
	OrderID               string
	RestaurantID          string
	CustomerID            string
	DriverID              string
	OrderDetails          OrderDetails
	Pickup                Location
	Dropoff               Location
	Status                DeliveryStatus
	History               []StatusChange
	RejectedBy            []Rejection
	Attempts              int
	DistanceKm            float64
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Notes                 string
	Rating                *int
	Feedback              string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RejectedDriverIDs returns the set of drivers that declined the delivery.
func (d Delivery) RejectedDriverIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(d.RejectedBy))
	for _, r := range d.RejectedBy {
		out[r.DriverID] = struct{}{}
	}
	return out
}

// WasRejectedBy reports whether the driver already declined the delivery.
func (d Delivery) WasRejectedBy(driverID string) bool {
	for _, r := range d.RejectedBy {
		if r.DriverID == driverID {
			return true
		}
	}
	return false
}

// Unassigned reports whether the delivery is waiting for a driver.
func (d Delivery) Unassigned() bool {
	return d.Status == DeliveryConfirmed && d.DriverID == ""
}

// Clone returns a deep copy so callers can not alias slices or pointers.
func (d Delivery) Clone() Delivery {
	d.OrderDetails.Items = append([]OrderItem(nil), d.OrderDetails.Items...)
	d.History = append([]StatusChange(nil), d.History...)
	d.RejectedBy = append([]Rejection(nil), d.RejectedBy...)
	if d.EstimatedDeliveryTime != nil {
		t := *d.EstimatedDeliveryTime
		d.EstimatedDeliveryTime = &t
	}
	if d.ActualDeliveryTime != nil {
		t := *d.ActualDeliveryTime
		d.ActualDeliveryTime = &t
	}
	if d.Rating != nil {
		r := *d.Rating
		d.Rating = &r
	}
	return d
}

// NewDelivery carries the input of a delivery creation.
type NewDelivery struct {
	OrderID      string       `validate:"required"`
	RestaurantID string       `validate:"required"`
	CustomerID   string       `validate:"required"`
	OrderDetails OrderDetails
	Pickup       Location
	Dropoff      Location
	Notes        string
	// AwaitConfirmation starts the delivery in PENDING until the restaurant confirms it.
	AwaitConfirmation bool
}

// DeliveryFilter is the admin listing filter.
type DeliveryFilter struct {
	Status DeliveryStatus
	Paging Page
}

// DeliveryPage is a page of deliveries with totals.
type DeliveryPage struct {
	Items []Delivery
	Total int
	Page  int
	Limit int
	Pages int
}

// DriverPage is a page of drivers with totals.
type DriverPage struct {
	Items []Driver
	Total int
	Page  int
	Limit int
	Pages int
}

// TrackingInfo is the public view of a delivery for its customer.
type TrackingInfo struct {
	DeliveryID            string
	OrderID               string
	Status                DeliveryStatus
	History               []StatusChange
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	DistanceKm            float64
	Pickup                Location
	Dropoff               Location
	Driver                *DriverSummary
}

// DriverDeliveries is the driver's work view.
type DriverDeliveries struct {
	Current *Delivery
	Recent  []Delivery
}
