package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/validation"
)

func validDelivery() domain.NewDelivery {
	return domain.NewDelivery{
		OrderID:      "o-1",
		RestaurantID: "r-1",
		CustomerID:   "c-1",
		OrderDetails: domain.OrderDetails{
			Items:       []domain.OrderItem{{Name: "kottu", Quantity: 2, Price: 4.5}},
			TotalAmount: 9,
		},
		Pickup:  domain.Location{Address: "Galle Rd 1", Latitude: 6.9, Longitude: 79.85},
		Dropoff: domain.Location{Address: "Duplication Rd 7", Latitude: 6.91, Longitude: 79.86},
	}
}

func TestStruct_NewDelivery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.NewDelivery)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.NewDelivery) {}},
		{name: "missing order id", mutate: func(d *domain.NewDelivery) { d.OrderID = "" }, wantErr: "OrderID is required"},
		{name: "latitude out of range", mutate: func(d *domain.NewDelivery) { d.Pickup.Latitude = 91 }, wantErr: "Pickup.Latitude"},
		{name: "longitude out of range", mutate: func(d *domain.NewDelivery) { d.Dropoff.Longitude = -181 }, wantErr: "Dropoff.Longitude"},
		{name: "empty address", mutate: func(d *domain.NewDelivery) { d.Dropoff.Address = "" }, wantErr: "Dropoff.Address is required"},
		{name: "zero quantity", mutate: func(d *domain.NewDelivery) { d.OrderDetails.Items[0].Quantity = 0 }, wantErr: "Quantity"},
		{name: "negative total", mutate: func(d *domain.NewDelivery) { d.OrderDetails.TotalAmount = -1 }, wantErr: "TotalAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validDelivery()
			tt.mutate(&in)

			err := validation.Struct(in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperr.ErrInvalid)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStruct_NewDriver(t *testing.T) {
	t.Parallel()

	in := domain.NewDriver{
		UserID:      "u-1",
		Name:        "Nimal",
		Phone:       "+94771234567",
		VehicleType: domain.VehicleMotorcycle,
	}
	require.NoError(t, validation.Struct(in))

	in.VehicleType = "ROCKET"
	err := validation.Struct(in)
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.Contains(t, err.Error(), "VehicleType")

	in.VehicleType = domain.VehicleCar
	in.Phone = "call me"
	require.ErrorIs(t, validation.Struct(in), apperr.ErrInvalid)

	in.Phone = "+94771234567"
	in.Email = "not-an-email"
	require.ErrorIs(t, validation.Struct(in), apperr.ErrInvalid)
}
