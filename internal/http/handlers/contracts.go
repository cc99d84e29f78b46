package handlers

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/service/dispatch"
	"github.com/thakshilaCodes/Feedo/internal/service/driver"
)

//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=handlers

type deliveryUsecase interface {
	CreateDelivery(ctx context.Context, in domain.NewDelivery) (domain.Delivery, error)
	ConfirmDelivery(ctx context.Context, orderID string) (domain.Delivery, error)
	Get(ctx context.Context, id string) (domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (domain.Delivery, error)
	Track(ctx context.Context, orderID string) (domain.TrackingInfo, error)
	List(ctx context.Context, f domain.DeliveryFilter) (domain.DeliveryPage, error)
	CancelDelivery(ctx context.Context, deliveryID, reason string) (domain.Delivery, error)
	RateDelivery(ctx context.Context, deliveryID string, rating int, feedback string) (domain.Delivery, error)
	AcceptDelivery(ctx context.Context, driverID, deliveryID string) (domain.Delivery, error)
	RejectDelivery(ctx context.Context, driverID, deliveryID, reason string) (domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, driverID, deliveryID string, status domain.DeliveryStatus, note string) (domain.Delivery, error)
}

// NewDeliveryUsecase wires the dispatch service into a deliveryUsecase.
func NewDeliveryUsecase(svc *dispatch.Service) deliveryUsecase {
	return svc
}

type driverUsecase interface {
	Register(ctx context.Context, in domain.NewDriver) (domain.Driver, error)
	Get(ctx context.Context, id string) (domain.Driver, error)
	List(ctx context.Context, p domain.Page) (domain.DriverPage, error)
	Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.NearbyDriver, error)
	SetAvailability(ctx context.Context, id string, available bool) (domain.Driver, error)
	UpdateLocation(ctx context.Context, id string, lat, lon float64) (domain.Driver, error)
	Deliveries(ctx context.Context, id string) (domain.DriverDeliveries, error)
}

// NewDriverUsecase wires the driver registry into a driverUsecase.
func NewDriverUsecase(svc *driver.Service) driverUsecase {
	return svc
}
