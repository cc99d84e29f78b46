package domain

import "time"

type (
	// DriverStatus represents the work status of a driver.
	DriverStatus string
	// VehicleType represents the vehicle a driver uses.
	VehicleType string
)

// GeoPoint is the last reported driver position.
type GeoPoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VehicleDetails describes the vehicle.
type VehicleDetails struct {
	Model        string `json:"model,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
}

// Driver represents a delivery driver profile.
type Driver struct {
	ID                string
	UserID            string
	Name              string
	Email             string
	Phone             string
	IsAvailable       bool
	IsVerified        bool
	Status            DriverStatus
	Location          *GeoPoint
	CurrentDeliveryID string
	Rating            float64
	TotalDeliveries   int
	VehicleType       VehicleType
	Vehicle           VehicleDetails
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Eligible reports whether the driver can be offered a new delivery.
func (d Driver) Eligible() bool {
	return d.IsAvailable && d.IsVerified && d.Status == DriverAvailable
}

// Clone returns a deep copy of the driver.
func (d Driver) Clone() Driver {
	if d.Location != nil {
		loc := *d.Location
		d.Location = &loc
	}
	return d
}

// NewDriver carries the registration payload.
type NewDriver struct {
	UserID      string      `validate:"required"`
	Name        string      `validate:"required"`
	Email       string      `validate:"omitempty,email"`
	Phone       string      `validate:"required,phone"`
	VehicleType VehicleType `validate:"required,vehicle"`
	Vehicle     VehicleDetails
	// nil means verified
	IsVerified *bool
}

// DriverSummary is the driver info exposed on public tracking.
type DriverSummary struct {
	ID          string
	Name        string
	Phone       string
	Rating      float64
	VehicleType VehicleType
	Vehicle     VehicleDetails
	Location    *GeoPoint
}

// NearbyDriver is a driver with its distance from a query point.
type NearbyDriver struct {
	Driver     Driver
	DistanceKm float64
}

// Page is a generic pagination request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize applies defaults: page 1, limit 20, limit capped at 100.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Pages returns the page count for the total number of rows.
func (p Page) Pages(total int) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
