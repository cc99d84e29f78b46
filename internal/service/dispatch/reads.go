package dispatch

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// Get returns a delivery by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.store.GetDelivery(ctx, id)
	if err != nil {
		return domain.Delivery{}, err
	}
	if d == nil {
		return domain.Delivery{}, apperr.ErrNotFound
	}
	return *d, nil
}

// GetByOrderID returns the delivery of an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID string) (domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.store.GetDeliveryByOrderID(ctx, orderID)
	if err != nil {
		return domain.Delivery{}, err
	}
	if d == nil {
		return domain.Delivery{}, apperr.ErrNotFound
	}
	return *d, nil
}

// Track returns the public view of an order's delivery.
func (s *Service) Track(ctx context.Context, orderID string) (domain.TrackingInfo, error) {
	d, err := s.GetByOrderID(ctx, orderID)
	if err != nil {
		return domain.TrackingInfo{}, err
	}
	info := domain.TrackingInfo{
		DeliveryID:            d.ID,
		OrderID:               d.OrderID,
		Status:                d.Status,
		History:               d.History,
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		ActualDeliveryTime:    d.ActualDeliveryTime,
		DistanceKm:            d.DistanceKm,
		Pickup:                d.Pickup,
		Dropoff:               d.Dropoff,
	}
	if d.DriverID == "" {
		return info, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	drv, err := s.store.GetDriver(ctx, d.DriverID)
	if err != nil {
		return domain.TrackingInfo{}, err
	}
	if drv != nil {
		info.Driver = &domain.DriverSummary{
			ID:          drv.ID,
			Name:        drv.Name,
			Phone:       drv.Phone,
			Rating:      drv.Rating,
			VehicleType: drv.VehicleType,
			Vehicle:     drv.Vehicle,
			Location:    drv.Location,
		}
	}
	return info, nil
}

// List returns a page of deliveries, newest first.
func (s *Service) List(ctx context.Context, f domain.DeliveryFilter) (domain.DeliveryPage, error) {
	if f.Status != "" && !f.Status.Valid() {
		return domain.DeliveryPage{}, apperr.Invalidf("unknown status %q", f.Status)
	}
	f.Paging = f.Paging.Normalize()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	items, total, err := s.store.ListDeliveries(ctx, f)
	if err != nil {
		return domain.DeliveryPage{}, err
	}
	return domain.DeliveryPage{
		Items: items,
		Total: total,
		Page:  f.Paging.Page,
		Limit: f.Paging.Limit,
		Pages: f.Paging.Pages(total),
	}, nil
}

// PendingDeliveries returns confirmed deliveries still waiting for a driver, oldest first.
// A non-positive limit returns all of them.
func (s *Service) PendingDeliveries(ctx context.Context, limit int) ([]domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListUnassigned(ctx, limit)
}
