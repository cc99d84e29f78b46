// Package fixture builds randomized domain values for tests.
package fixture

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"

	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/lifecycle"
)

var fake = faker.New()

// Colombo city centre, used as the default pickup area.
const (
	CityLat = 6.9271
	CityLon = 79.8612
)

// Driver returns an eligible driver located at the given point.
func Driver(lat, lon float64, now time.Time) domain.Driver {
	return domain.Driver{
		ID:          uuid.NewString(),
		UserID:      fake.UUID().V4(),
		Name:        fake.Person().Name(),
		Email:       fake.Internet().Email(),
		Phone:       fake.Numerify("+9477#######"),
		IsAvailable: true,
		IsVerified:  true,
		Status:      domain.DriverAvailable,
		Location:    &domain.GeoPoint{Latitude: lat, Longitude: lon, UpdatedAt: now},
		Rating:      fake.Float64(1, 3, 5),
		VehicleType: domain.VehicleMotorcycle,
		Vehicle:     domain.VehicleDetails{Model: fake.Lorem().Word(), LicensePlate: fake.Numerify("WP-####")},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewDelivery returns a valid creation payload picked up at the given point.
func NewDelivery(pickupLat, pickupLon float64) domain.NewDelivery {
	qty := fake.IntBetween(1, 3)
	price := fake.Float64(2, 2, 20)
	return domain.NewDelivery{
		OrderID:      fake.UUID().V4(),
		RestaurantID: fake.UUID().V4(),
		CustomerID:   fake.UUID().V4(),
		OrderDetails: domain.OrderDetails{
			Items:       []domain.OrderItem{{Name: fake.Lorem().Word(), Quantity: qty, Price: price}},
			TotalAmount: float64(qty) * price,
		},
		Pickup:  domain.Location{Address: fake.Address().Address(), Latitude: pickupLat, Longitude: pickupLon},
		Dropoff: domain.Location{Address: fake.Address().Address(), Latitude: pickupLat + 0.02, Longitude: pickupLon + 0.02},
	}
}

// Delivery returns a persisted-looking delivery in the given status.
func Delivery(status domain.DeliveryStatus, now time.Time) domain.Delivery {
	in := NewDelivery(CityLat, CityLon)
	d := domain.Delivery{
		ID:           uuid.NewString(),
		OrderID:      in.OrderID,
		RestaurantID: in.RestaurantID,
		CustomerID:   in.CustomerID,
		OrderDetails: in.OrderDetails,
		Pickup:       in.Pickup,
		Dropoff:      in.Dropoff,
		DistanceKm:   3.1,
		CreatedAt:    now,
	}
	return lifecycle.Start(d, status, "fixture", now)
}
