package handlers

import (
	"time"

	"github.com/thakshilaCodes/Feedo/internal/domain"
)

type locationDTO struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type orderItemDTO struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderDetailsDTO struct {
	Items       []orderItemDTO `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
}

type createDeliveryRequest struct {
	OrderID         string           `json:"orderId"`
	RestaurantID    string           `json:"restaurantId"`
	CustomerID      string           `json:"customerId"`
	OrderDetails    *orderDetailsDTO `json:"orderDetails"`
	PickupLocation  *locationDTO     `json:"pickupLocation"`
	DropoffLocation *locationDTO     `json:"dropoffLocation"`
	DeliveryNotes   string           `json:"deliveryNotes,omitempty"`
	// true keeps the delivery PENDING until the restaurant confirms it
	AwaitConfirmation bool `json:"awaitConfirmation,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type rateRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

type deliveryActionRequest struct {
	DeliveryID string `json:"deliveryId"`
	Reason     string `json:"reason,omitempty"`
}

type statusRequest struct {
	Status domain.DeliveryStatus `json:"status"`
	Note   string                `json:"note,omitempty"`
}

type vehicleDTO struct {
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
}

type registerDriverRequest struct {
	UserID         string             `json:"userId"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	IsVerified     *bool              `json:"isVerified,omitempty"`
	VehicleType    domain.VehicleType `json:"vehicleType"`
	VehicleDetails *vehicleDTO        `json:"vehicleDetails,omitempty"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type statusChangeDTO struct {
	Status domain.DeliveryStatus `json:"status"`
	At     time.Time             `json:"timestamp"`
	Note   string                `json:"note,omitempty"`
}

type rejectionDTO struct {
	DriverID string    `json:"driverId"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"rejectedAt"`
}

type pointDTO struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type deliveryDTO struct {
	ID                    string                `json:"id"`
	OrderID               string                `json:"orderId"`
	RestaurantID          string                `json:"restaurantId"`
	CustomerID            string                `json:"customerId"`
	DriverID              string                `json:"driverId,omitempty"`
	OrderDetails          orderDetailsDTO       `json:"orderDetails"`
	PickupLocation        pointDTO              `json:"pickupLocation"`
	DropoffLocation       pointDTO              `json:"dropoffLocation"`
	Status                domain.DeliveryStatus `json:"status"`
	StatusHistory         []statusChangeDTO     `json:"statusHistory"`
	RejectedBy            []rejectionDTO        `json:"rejectedBy,omitempty"`
	AssignmentAttempts    int                   `json:"assignmentAttempts"`
	Distance              float64               `json:"distance"`
	EstimatedDeliveryTime *time.Time            `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time            `json:"actualDeliveryTime,omitempty"`
	DeliveryNotes         string                `json:"deliveryNotes,omitempty"`
	Rating                *int                  `json:"rating,omitempty"`
	Feedback              string                `json:"feedback,omitempty"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}

type geoPointDTO struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"lastUpdated"`
}

type driverDTO struct {
	ID                string              `json:"id"`
	UserID            string              `json:"userId"`
	Name              string              `json:"name"`
	Email             string              `json:"email,omitempty"`
	Phone             string              `json:"phone"`
	IsAvailable       bool                `json:"isAvailable"`
	IsVerified        bool                `json:"isVerified"`
	Status            domain.DriverStatus `json:"status"`
	CurrentLocation   *geoPointDTO        `json:"currentLocation,omitempty"`
	CurrentDeliveryID string              `json:"currentDeliveryId,omitempty"`
	Rating            float64             `json:"rating"`
	TotalDeliveries   int                 `json:"totalDeliveries"`
	VehicleType       domain.VehicleType  `json:"vehicleType"`
	VehicleDetails    vehicleDTO          `json:"vehicleDetails"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

type nearbyDriverDTO struct {
	driverDTO
	Distance float64 `json:"distance"`
}

type driverSummaryDTO struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Rating          float64            `json:"rating"`
	VehicleType     domain.VehicleType `json:"vehicleType"`
	VehicleDetails  vehicleDTO         `json:"vehicleDetails"`
	CurrentLocation *geoPointDTO       `json:"currentLocation,omitempty"`
}

type trackingDTO struct {
	DeliveryID            string                `json:"deliveryId"`
	OrderID               string                `json:"orderId"`
	Status                domain.DeliveryStatus `json:"status"`
	StatusHistory         []statusChangeDTO     `json:"statusHistory"`
	EstimatedDeliveryTime *time.Time            `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time            `json:"actualDeliveryTime,omitempty"`
	Distance              float64               `json:"distance"`
	PickupLocation        pointDTO              `json:"pickupLocation"`
	DropoffLocation       pointDTO              `json:"dropoffLocation"`
	Driver                *driverSummaryDTO     `json:"driver,omitempty"`
}

type paginationDTO struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type deliveryResponse struct {
	Message  string      `json:"message,omitempty"`
	Delivery deliveryDTO `json:"delivery"`
}

type driverResponse struct {
	Message string    `json:"message,omitempty"`
	Driver  driverDTO `json:"driver"`
}

type trackingResponse struct {
	Tracking trackingDTO `json:"tracking"`
}

type deliveryListResponse struct {
	Deliveries []deliveryDTO `json:"deliveries"`
	Pagination paginationDTO `json:"pagination"`
}

type driverListResponse struct {
	Drivers    []driverDTO   `json:"drivers"`
	Pagination paginationDTO `json:"pagination"`
}

type nearbyResponse struct {
	Drivers []nearbyDriverDTO `json:"drivers"`
}

type driverDeliveriesResponse struct {
	CurrentDelivery  *deliveryDTO  `json:"currentDelivery"`
	RecentDeliveries []deliveryDTO `json:"recentDeliveries"`
}
