package handlers

import (
	"strings"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

func locationFromDTO(name string, l *locationDTO) (domain.Location, error) {
	if l == nil {
		return domain.Location{}, apperr.Invalidf("%s is required", name)
	}
	if l.Latitude == nil || l.Longitude == nil {
		return domain.Location{}, apperr.Invalidf("%s latitude and longitude are required", name)
	}
	return domain.Location{
		Address:   strings.TrimSpace(l.Address),
		Latitude:  *l.Latitude,
		Longitude: *l.Longitude,
	}, nil
}

func createRequestToDomain(req createDeliveryRequest) (domain.NewDelivery, error) {
	if req.OrderDetails == nil {
		return domain.NewDelivery{}, apperr.Invalidf("orderDetails is required")
	}
	pickup, err := locationFromDTO("pickupLocation", req.PickupLocation)
	if err != nil {
		return domain.NewDelivery{}, err
	}
	dropoff, err := locationFromDTO("dropoffLocation", req.DropoffLocation)
	if err != nil {
		return domain.NewDelivery{}, err
	}

	items := make([]domain.OrderItem, 0, len(req.OrderDetails.Items))
	for _, it := range req.OrderDetails.Items {
		items = append(items, domain.OrderItem{
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return domain.NewDelivery{
		OrderID:      strings.TrimSpace(req.OrderID),
		RestaurantID: strings.TrimSpace(req.RestaurantID),
		CustomerID:   strings.TrimSpace(req.CustomerID),
		OrderDetails: domain.OrderDetails{
			Items:       items,
			TotalAmount: req.OrderDetails.TotalAmount,
		},
		Pickup:            pickup,
		Dropoff:           dropoff,
		Notes:             req.DeliveryNotes,
		AwaitConfirmation: req.AwaitConfirmation,
	}, nil
}

func registerRequestToDomain(req registerDriverRequest) domain.NewDriver {
	in := domain.NewDriver{
		UserID:      strings.TrimSpace(req.UserID),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		VehicleType: domain.VehicleType(strings.ToUpper(strings.TrimSpace(string(req.VehicleType)))),
		IsVerified:  req.IsVerified,
	}
	if req.VehicleDetails != nil {
		in.Vehicle = domain.VehicleDetails{
			Model:        strings.TrimSpace(req.VehicleDetails.Model),
			LicensePlate: strings.TrimSpace(req.VehicleDetails.LicensePlate),
		}
	}
	return in
}

func pointToDTO(l domain.Location) pointDTO {
	return pointDTO{Address: l.Address, Latitude: l.Latitude, Longitude: l.Longitude}
}

func historyToDTO(h []domain.StatusChange) []statusChangeDTO {
	out := make([]statusChangeDTO, 0, len(h))
	for _, c := range h {
		out = append(out, statusChangeDTO{Status: c.Status, At: c.At, Note: c.Note})
	}
	return out
}

func deliveryToDTO(d domain.Delivery) deliveryDTO {
	items := make([]orderItemDTO, 0, len(d.OrderDetails.Items))
	for _, it := range d.OrderDetails.Items {
		items = append(items, orderItemDTO{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	var rejected []rejectionDTO
	for _, r := range d.RejectedBy {
		rejected = append(rejected, rejectionDTO{DriverID: r.DriverID, Reason: r.Reason, At: r.At})
	}
	return deliveryDTO{
		ID:                    d.ID,
		OrderID:               d.OrderID,
		RestaurantID:          d.RestaurantID,
		CustomerID:            d.CustomerID,
		DriverID:              d.DriverID,
		OrderDetails:          orderDetailsDTO{Items: items, TotalAmount: d.OrderDetails.TotalAmount},
		PickupLocation:        pointToDTO(d.Pickup),
		DropoffLocation:       pointToDTO(d.Dropoff),
		Status:                d.Status,
		StatusHistory:         historyToDTO(d.History),
		RejectedBy:            rejected,
		AssignmentAttempts:    d.Attempts,
		Distance:              d.DistanceKm,
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		ActualDeliveryTime:    d.ActualDeliveryTime,
		DeliveryNotes:         d.Notes,
		Rating:                d.Rating,
		Feedback:              d.Feedback,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func deliveriesToDTO(ds []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, deliveryToDTO(d))
	}
	return out
}

func geoPointToDTO(p *domain.GeoPoint) *geoPointDTO {
	if p == nil {
		return nil
	}
	return &geoPointDTO{Latitude: p.Latitude, Longitude: p.Longitude, UpdatedAt: p.UpdatedAt}
}

func driverToDTO(d domain.Driver) driverDTO {
	return driverDTO{
		ID:                d.ID,
		UserID:            d.UserID,
		Name:              d.Name,
		Email:             d.Email,
		Phone:             d.Phone,
		IsAvailable:       d.IsAvailable,
		IsVerified:        d.IsVerified,
		Status:            d.Status,
		CurrentLocation:   geoPointToDTO(d.Location),
		CurrentDeliveryID: d.CurrentDeliveryID,
		Rating:            d.Rating,
		TotalDeliveries:   d.TotalDeliveries,
		VehicleType:       d.VehicleType,
		VehicleDetails:    vehicleDTO{Model: d.Vehicle.Model, LicensePlate: d.Vehicle.LicensePlate},
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func trackingToDTO(info domain.TrackingInfo) trackingDTO {
	out := trackingDTO{
		DeliveryID:            info.DeliveryID,
		OrderID:               info.OrderID,
		Status:                info.Status,
		StatusHistory:         historyToDTO(info.History),
		EstimatedDeliveryTime: info.EstimatedDeliveryTime,
		ActualDeliveryTime:    info.ActualDeliveryTime,
		Distance:              info.DistanceKm,
		PickupLocation:        pointToDTO(info.Pickup),
		DropoffLocation:       pointToDTO(info.Dropoff),
	}
	if s := info.Driver; s != nil {
		out.Driver = &driverSummaryDTO{
			ID:              s.ID,
			Name:            s.Name,
			Phone:           s.Phone,
			Rating:          s.Rating,
			VehicleType:     s.VehicleType,
			VehicleDetails:  vehicleDTO{Model: s.Vehicle.Model, LicensePlate: s.Vehicle.LicensePlate},
			CurrentLocation: geoPointToDTO(s.Location),
		}
	}
	return out
}

func pageToDTO(total, page, limit, pages int) paginationDTO {
	return paginationDTO{Total: total, Page: page, Limit: limit, Pages: pages}
}
