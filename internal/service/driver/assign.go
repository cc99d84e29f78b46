package driver

import (
	"time"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// Assign binds the driver to the delivery. It is applied inside the
// caller's transaction on a row locked for update.
func Assign(d *domain.Driver, deliveryID string, at time.Time) error {
	if !d.Eligible() {
		return apperr.ErrDriverUnavailable
	}
	d.IsAvailable = false
	d.Status = domain.DriverOnDelivery
	d.CurrentDeliveryID = deliveryID
	d.UpdatedAt = at
	return nil
}

// Release frees the driver from the delivery and makes them available again.
// TotalDeliveries grows only for a completed delivery. It reports false
// and changes nothing when the driver works on another delivery.
func Release(d *domain.Driver, deliveryID string, completed bool, at time.Time) bool {
	if d.CurrentDeliveryID != deliveryID {
		return false
	}
	d.CurrentDeliveryID = ""
	d.Status = domain.DriverAvailable
	d.IsAvailable = true
	if completed {
		d.TotalDeliveries++
	}
	d.UpdatedAt = at
	return true
}

// ApplyRating folds a new customer rating into the running average.
func ApplyRating(d *domain.Driver, rating int, at time.Time) {
	total := float64(d.TotalDeliveries)
	d.Rating = (d.Rating*total + float64(rating)) / (total + 1)
	d.UpdatedAt = at
}
