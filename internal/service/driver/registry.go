package driver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/geo"
	"github.com/thakshilaCodes/Feedo/internal/lifecycle"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
	"github.com/thakshilaCodes/Feedo/internal/tracking"
	"github.com/thakshilaCodes/Feedo/internal/validation"
)

const (
	defaultRadiusKm = 5.0
	recentWindow    = 30 * 24 * time.Hour

	titleOnTheWay = "Driver is on the way with your order!"
)

type store interface {
	dispatchtx.Runner
	GetDriver(ctx context.Context, id string) (*domain.Driver, error)
	ListDrivers(ctx context.Context, p domain.Page) ([]domain.Driver, int, error)
	ListEligibleDrivers(ctx context.Context) ([]domain.Driver, error)
	ListDriverDeliveries(ctx context.Context, driverID string, since time.Time) ([]domain.Delivery, error)
}

// Config holds registry settings.
type Config struct {
	OperationTimeout time.Duration
	NearbyRadiusKm   float64
}

// Service is the driver registry: profiles, availability and live location.
type Service struct {
	store     store
	notifier  notifier
	publisher publisher
	cfg       Config
	logger    logx.Logger
	now       func() time.Time
}

// NewService creates a driver registry.
func NewService(st store, n notifier, p publisher, cfg Config, logger logx.Logger) *Service {
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 3 * time.Second
	}
	if cfg.NearbyRadiusKm <= 0 {
		cfg.NearbyRadiusKm = defaultRadiusKm
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:     st,
		notifier:  n,
		publisher: p,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.OperationTimeout)
}

// Register creates a driver profile. A second profile for the same user is a conflict.
func (s *Service) Register(ctx context.Context, in domain.NewDriver) (domain.Driver, error) {
	if err := validation.Struct(in); err != nil {
		return domain.Driver{}, err
	}
	verified := true
	if in.IsVerified != nil {
		verified = *in.IsVerified
	}

	now := s.now()
	d := domain.Driver{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		IsVerified:  verified,
		Status:      domain.DriverOffline,
		VehicleType: in.VehicleType,
		Vehicle:     in.Vehicle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		existing, err := tx.DriverByUserID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.ErrDuplicateDriver
		}
		return tx.InsertDriver(ctx, &d)
	})
	if err != nil {
		return domain.Driver{}, err
	}

	s.logger.Info("driver registered",
		logx.String("event", "driver_registered"),
		logx.String("driver_id", d.ID),
		logx.String("user_id", d.UserID),
	)
	return d, nil
}

// Get returns a driver by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.store.GetDriver(ctx, id)
	if err != nil {
		return domain.Driver{}, err
	}
	if d == nil {
		return domain.Driver{}, apperr.ErrNotFound
	}
	return *d, nil
}

// List returns a page of drivers, newest first.
func (s *Service) List(ctx context.Context, p domain.Page) (domain.DriverPage, error) {
	p = p.Normalize()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	items, total, err := s.store.ListDrivers(ctx, p)
	if err != nil {
		return domain.DriverPage{}, err
	}
	return domain.DriverPage{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: p.Pages(total),
	}, nil
}

// FindEligibleDrivers returns drivers that can take a new delivery, minus exclude.
func (s *Service) FindEligibleDrivers(ctx context.Context, exclude map[string]struct{}) ([]domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	all, err := s.store.ListEligibleDrivers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Driver, 0, len(all))
	for _, d := range all {
		if _, skip := exclude[d.ID]; skip {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Nearby returns eligible drivers within radiusKm of the point, closest first.
// A non-positive radius falls back to the configured default.
func (s *Service) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.NearbyDriver, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return nil, apperr.Invalidf("coordinates out of range")
	}
	if radiusKm <= 0 {
		radiusKm = s.cfg.NearbyRadiusKm
	}
	eligible, err := s.FindEligibleDrivers(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]domain.NearbyDriver, 0, len(eligible))
	for _, d := range eligible {
		if d.Location == nil {
			continue
		}
		km := geo.DistanceKm(lat, lon, d.Location.Latitude, d.Location.Longitude)
		if km <= radiusKm {
			out = append(out, domain.NearbyDriver{Driver: d, DistanceKm: km})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Driver.ID < out[j].Driver.ID
	})
	return out, nil
}

// SetAvailability switches the driver between AVAILABLE and OFFLINE.
func (s *Service) SetAvailability(ctx context.Context, id string, available bool) (domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Driver
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DriverForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status == domain.DriverOnDelivery {
			return fmt.Errorf("%w: driver is on a delivery", apperr.ErrInvalidState)
		}
		if available && !d.IsVerified {
			return apperr.ErrNotVerified
		}

		d.IsAvailable = available
		d.Status = domain.DriverOffline
		if available {
			d.Status = domain.DriverAvailable
		}
		d.UpdatedAt = s.now()
		if err := tx.UpdateDriver(ctx, d); err != nil {
			return err
		}
		out = *d
		return nil
	})
	if err != nil {
		return domain.Driver{}, err
	}

	s.logger.Info("driver availability updated",
		logx.String("event", "driver_availability"),
		logx.String("driver_id", id),
		logx.Bool("available", available),
	)
	return out, nil
}

type locationMove struct {
	deliveryID string
	orderID    string
	customerID string
	onTheWay   bool
}

// UpdateLocation stores the driver's position. The first report after pickup
// moves the current delivery to ON_THE_WAY. Every report is streamed to the
// customer of the current delivery.
func (s *Service) UpdateLocation(ctx context.Context, id string, lat, lon float64) (domain.Driver, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return domain.Driver{}, apperr.Invalidf("coordinates out of range")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	var out domain.Driver
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DriverForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		d.Location = &domain.GeoPoint{Latitude: lat, Longitude: lon, UpdatedAt: now}
		d.UpdatedAt = now
		if err := tx.UpdateDriver(ctx, d); err != nil {
			return err
		}
		out = *d
		return nil
	})
	if err != nil {
		return domain.Driver{}, err
	}
	if out.CurrentDeliveryID == "" {
		return out, nil
	}

	move, err := s.advanceDelivery(ctx, out.CurrentDeliveryID, now)
	if err != nil {
		// позиция уже сохранена, статус догонит следующий отчёт
		s.logger.Warn("location side effect failed",
			logx.String("driver_id", id),
			logx.String("delivery_id", out.CurrentDeliveryID),
			logx.Err(err),
		)
		return out, nil
	}
	if move.customerID == "" {
		return out, nil
	}

	if move.onTheWay {
		s.logger.Info("delivery on the way",
			logx.String("event", "delivery_on_the_way"),
			logx.String("delivery_id", move.deliveryID),
			logx.String("driver_id", id),
		)
		s.notify(ctx, move.customerID, titleOnTheWay, map[string]any{
			"deliveryId":     move.deliveryID,
			"orderId":        move.orderID,
			"status":         string(domain.DeliveryOnTheWay),
			"driverLocation": out.Location,
		})
	}

	evt := tracking.Event{
		Type: tracking.EventDriverLocation,
		Room: tracking.UserRoom(move.customerID),
		Data: map[string]any{
			"deliveryId": move.deliveryID,
			"driverId":   id,
			"location":   map[string]any{"latitude": lat, "longitude": lon},
		},
		At: now,
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("driver location publish failed", logx.String("driver_id", id), logx.Err(err))
	}
	return out, nil
}

func (s *Service) advanceDelivery(ctx context.Context, deliveryID string, now time.Time) (locationMove, error) {
	var move locationMove
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return nil
		}
		move = locationMove{deliveryID: d.ID, orderID: d.OrderID, customerID: d.CustomerID}
		if d.Status != domain.DeliveryPickedUp {
			return nil
		}
		next, err := lifecycle.Transition(*d, domain.DeliveryOnTheWay, "Driver is on the way to customer", now)
		if err != nil {
			return err
		}
		if err := tx.UpdateDelivery(ctx, &next); err != nil {
			return err
		}
		move.onTheWay = true
		return nil
	})
	return move, err
}

func (s *Service) notify(ctx context.Context, userID, title string, data map[string]any) {
	if err := s.notifier.NotifyUser(ctx, userID, title, data); err != nil {
		s.logger.Warn("notification failed",
			logx.String("recipient", userID),
			logx.String("title", title),
			logx.Err(err),
		)
	}
}

// Deliveries returns the driver's active delivery and the ones delivered in the last 30 days.
func (s *Service) Deliveries(ctx context.Context, id string) (domain.DriverDeliveries, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domain.DriverDeliveries{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	all, err := s.store.ListDriverDeliveries(ctx, id, s.now().Add(-recentWindow))
	if err != nil {
		return domain.DriverDeliveries{}, err
	}

	out := domain.DriverDeliveries{Recent: make([]domain.Delivery, 0, len(all))}
	for i := range all {
		d := all[i]
		if d.Status.Active() {
			if out.Current == nil {
				out.Current = &d
			}
			continue
		}
		out.Recent = append(out.Recent, d)
	}
	return out, nil
}
