package domain

import "regexp"

// List of delivery statuses
const (
	DeliveryPending        DeliveryStatus = "PENDING"
	DeliveryConfirmed      DeliveryStatus = "CONFIRMED"
	DeliveryDriverAssigned DeliveryStatus = "DRIVER_ASSIGNED"
	DeliveryPickedUp       DeliveryStatus = "PICKED_UP"
	DeliveryOnTheWay       DeliveryStatus = "ON_THE_WAY"
	DeliveryDelivered      DeliveryStatus = "DELIVERED"
	DeliveryCancelled      DeliveryStatus = "CANCELLED"
	DeliveryFailed         DeliveryStatus = "FAILED"
)

// List of driver statuses
const (
	DriverOffline    DriverStatus = "OFFLINE"
	DriverAvailable  DriverStatus = "AVAILABLE"
	DriverBusy       DriverStatus = "BUSY"
	DriverOnDelivery DriverStatus = "ON_DELIVERY"
)

// List of vehicle types
const (
	VehicleBicycle    VehicleType = "BICYCLE"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleCar        VehicleType = "CAR"
	VehicleVan        VehicleType = "VAN"
)

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryConfirmed, DeliveryDriverAssigned, DeliveryPickedUp,
	DeliveryOnTheWay, DeliveryDelivered, DeliveryCancelled, DeliveryFailed,
}

var allowedDriverStatuses = [...]DriverStatus{
	DriverOffline, DriverAvailable, DriverBusy, DriverOnDelivery,
}

var allowedVehicleTypes = [...]VehicleType{
	VehicleBicycle, VehicleMotorcycle, VehicleCar, VehicleVan,
}

// Valid checks if the DeliveryStatus is known
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s DeliveryStatus) Terminal() bool {
	switch s {
	case DeliveryDelivered, DeliveryCancelled, DeliveryFailed:
		return true
	default:
		return false
	}
}

// Active reports whether a driver is working on the delivery.
func (s DeliveryStatus) Active() bool {
	switch s {
	case DeliveryDriverAssigned, DeliveryPickedUp, DeliveryOnTheWay:
		return true
	default:
		return false
	}
}

// DriverFacing reports whether a driver may request the status through a status update.
func (s DeliveryStatus) DriverFacing() bool {
	switch s {
	case DeliveryPickedUp, DeliveryOnTheWay, DeliveryDelivered, DeliveryCancelled, DeliveryFailed:
		return true
	default:
		return false
	}
}

// Valid checks if the DriverStatus is known
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the VehicleType is known
func (t VehicleType) Valid() bool {
	for _, v := range allowedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// rePhone accepts E.164-like numbers with an optional leading plus.
var rePhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
