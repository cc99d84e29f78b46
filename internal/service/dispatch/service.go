package dispatch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/geo"
	"github.com/thakshilaCodes/Feedo/internal/lifecycle"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/metrics"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
	"github.com/thakshilaCodes/Feedo/internal/service/driver"
	"github.com/thakshilaCodes/Feedo/internal/validation"
)

const (
	noteCreated   = "Delivery request created and is confirmed by the restaurant"
	noteAwaiting  = "Delivery request created and is awaiting restaurant confirmation"
	noteConfirmed = "Delivery confirmed by the restaurant"
	noteCancelled = "Delivery cancelled"
	noReason      = "No reason provided"
)

type store interface {
	dispatchtx.Runner
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, int, error)
	ListUnassigned(ctx context.Context, limit int) ([]domain.Delivery, error)
	GetDriver(ctx context.Context, id string) (*domain.Driver, error)
}

type labeledCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Metrics are the optional counters updated by the engine.
type Metrics struct {
	Attempts    labeledCounter
	Transitions labeledCounter
}

// Service is the dispatch engine: it owns the delivery lifecycle and driver matching.
type Service struct {
	store            store
	drivers          driverFinder
	notifier         notifier
	retrier          retrier
	factory          ETAFactory
	metrics          Metrics
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a dispatch engine.
func NewService(
	st store,
	drivers driverFinder,
	n notifier,
	r retrier,
	f ETAFactory,
	m Metrics,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if f == nil {
		f = NewETAFactory()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:            st,
		drivers:          drivers,
		notifier:         n,
		retrier:          r,
		factory:          f,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
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
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateDelivery persists a new delivery and queues a dispatch attempt when it is confirmed.
// Failing to find a driver does not fail creation.
func (s *Service) CreateDelivery(ctx context.Context, in domain.NewDelivery) (domain.Delivery, error) {
	if err := validation.Struct(in); err != nil {
		return domain.Delivery{}, err
	}

	now := s.now()
	d := domain.Delivery{
		ID:           uuid.NewString(),
		OrderID:      in.OrderID,
		RestaurantID: in.RestaurantID,
		CustomerID:   in.CustomerID,
		OrderDetails: in.OrderDetails,
		Pickup:       in.Pickup,
		Dropoff:      in.Dropoff,
		Notes:        in.Notes,
		DistanceKm:   geo.DistanceKm(in.Pickup.Latitude, in.Pickup.Longitude, in.Dropoff.Latitude, in.Dropoff.Longitude),
		CreatedAt:    now,
	}
	if in.AwaitConfirmation {
		d = lifecycle.Start(d, domain.DeliveryPending, noteAwaiting, now)
	} else {
		d = lifecycle.Start(d, domain.DeliveryConfirmed, noteCreated, now)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		return tx.InsertDelivery(ctx, &d)
	}); err != nil {
		return domain.Delivery{}, err
	}

	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("status", string(d.Status)),
		logx.Float64("distance_km", d.DistanceKm),
	)
	if d.Status == domain.DeliveryConfirmed {
		s.retrier.Dispatch(d.ID)
	}
	return d, nil
}

// ConfirmDelivery moves a PENDING delivery to CONFIRMED and queues dispatch.
func (s *Service) ConfirmDelivery(ctx context.Context, orderID string) (domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Delivery
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DeliveryByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status != domain.DeliveryPending {
			return fmt.Errorf("%w: delivery is %s", apperr.ErrInvalidState, d.Status)
		}
		next, err := lifecycle.Transition(*d, domain.DeliveryConfirmed, noteConfirmed, s.now())
		if err != nil {
			return err
		}
		if err := tx.UpdateDelivery(ctx, &next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.transitioned(out)
	s.retrier.Dispatch(out.ID)
	return out, nil
}

// AssignToDriver offers the delivery to the closest eligible driver that has
// not rejected it. Nothing is persisted: the driver commits by accepting.
// It reports whether a driver was notified.
func (s *Service) AssignToDriver(ctx context.Context, deliveryID string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.store.GetDelivery(ctx, deliveryID)
	if err != nil {
		s.attempt(metrics.ResultError)
		return false, err
	}
	if d == nil || !d.Unassigned() {
		s.attempt(metrics.ResultSkipped)
		return false, nil
	}

	candidates, err := s.drivers.FindEligibleDrivers(ctx, d.RejectedDriverIDs())
	if err != nil {
		s.attempt(metrics.ResultError)
		return false, err
	}
	best, km, ok := closest(candidates, d.Pickup)
	if !ok {
		s.attempt(metrics.ResultNoDriver)
		s.logger.Info("no driver available",
			logx.String("event", "no_driver"),
			logx.String("delivery_id", d.ID),
			logx.Int("attempts", d.Attempts),
		)
		return false, nil
	}

	s.notifyDriver(ctx, best.ID, "New delivery request", map[string]any{
		"deliveryId":      d.ID,
		"orderId":         d.OrderID,
		"pickupLocation":  d.Pickup,
		"dropoffLocation": d.Dropoff,
		"distance":        d.DistanceKm,
	})
	s.attempt(metrics.ResultAssigned)
	s.logger.Info("driver notified",
		logx.String("event", "driver_notified"),
		logx.String("delivery_id", d.ID),
		logx.String("driver_id", best.ID),
		logx.Float64("driver_distance_km", km),
	)
	return true, nil
}

// closest picks the driver nearest to the pickup point. Drivers that never
// reported a location are skipped; ties go to the smaller driver id.
func closest(drivers []domain.Driver, pickup domain.Location) (domain.Driver, float64, bool) {
	type ranked struct {
		driver domain.Driver
		km     float64
	}
	list := make([]ranked, 0, len(drivers))
	for _, d := range drivers {
		if d.Location == nil {
			continue
		}
		km := geo.DistanceKm(pickup.Latitude, pickup.Longitude, d.Location.Latitude, d.Location.Longitude)
		list = append(list, ranked{driver: d, km: km})
	}
	if len(list) == 0 {
		return domain.Driver{}, 0, false
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].km != list[j].km {
			return list[i].km < list[j].km
		}
		return list[i].driver.ID < list[j].driver.ID
	})
	return list[0].driver, list[0].km, true
}

// AcceptDelivery commits the driver to the delivery. Only the first accept wins.
func (s *Service) AcceptDelivery(ctx context.Context, driverID, deliveryID string) (domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		out  domain.Delivery
		name string
	)
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		drv, err := tx.DriverForUpdate(ctx, driverID)
		if err != nil {
			return err
		}
		if d == nil || drv == nil {
			return apperr.ErrNotFound
		}
		if !drv.Eligible() {
			return apperr.ErrDriverUnavailable
		}
		if !d.Unassigned() {
			return fmt.Errorf("%w: delivery is %s", apperr.ErrInvalidState, d.Status)
		}
		if d.WasRejectedBy(driverID) {
			return fmt.Errorf("%w: driver rejected this delivery", apperr.ErrForbidden)
		}

		now := s.now()
		next, err := lifecycle.Transition(*d, domain.DeliveryDriverAssigned, "Assigned to driver: "+drv.Name, now)
		if err != nil {
			return err
		}
		eta, err := s.factory.Estimate(next.DistanceKm, now)
		if err != nil {
			return err
		}
		next.DriverID = drv.ID
		next.EstimatedDeliveryTime = &eta
		if err := driver.Assign(drv, next.ID, now); err != nil {
			return err
		}

		if err := tx.UpdateDelivery(ctx, &next); err != nil {
			return err
		}
		if err := tx.UpdateDriver(ctx, drv); err != nil {
			return err
		}
		out = next
		name = drv.Name
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.transitioned(out)
	s.logger.Info("delivery accepted",
		logx.String("event", "delivery_assigned"),
		logx.String("delivery_id", out.ID),
		logx.String("driver_id", driverID),
	)
	s.notifyRestaurant(ctx, out.RestaurantID, "Driver assigned to order", map[string]any{
		"orderId":    out.OrderID,
		"deliveryId": out.ID,
		"driverId":   driverID,
		"driverName": name,
	})
	s.notifyUser(ctx, out.CustomerID, "Driver assigned to your order", map[string]any{
		"orderId":               out.OrderID,
		"deliveryId":            out.ID,
		"driverName":            name,
		"estimatedDeliveryTime": out.EstimatedDeliveryTime,
	})
	return out, nil
}

// RejectDelivery records the driver's refusal and queues an immediate re-dispatch.
// A repeated reject by the same driver changes nothing.
func (s *Service) RejectDelivery(ctx context.Context, driverID, deliveryID, reason string) (domain.Delivery, error) {
	if reason == "" {
		reason = noReason
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		out     domain.Delivery
		changed bool
	)
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		drv, err := tx.DriverForUpdate(ctx, driverID)
		if err != nil {
			return err
		}
		if d == nil || drv == nil {
			return apperr.ErrNotFound
		}
		if !d.Unassigned() {
			return fmt.Errorf("%w: delivery is %s", apperr.ErrInvalidState, d.Status)
		}
		out = *d
		if d.WasRejectedBy(driverID) {
			return nil
		}

		now := s.now()
		d.RejectedBy = append(d.RejectedBy, domain.Rejection{DriverID: driverID, Reason: reason, At: now})
		d.Attempts++
		d.UpdatedAt = now
		if err := tx.UpdateDelivery(ctx, d); err != nil {
			return err
		}
		out = *d
		changed = true
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}
	if !changed {
		return out, nil
	}

	s.logger.Info("delivery rejected",
		logx.String("event", "delivery_rejected"),
		logx.String("delivery_id", out.ID),
		logx.String("driver_id", driverID),
		logx.String("reason", reason),
		logx.Int("attempts", out.Attempts),
	)
	s.retrier.Reassign(out.ID)
	return out, nil
}

// Escalate tells the restaurant and the customer that no driver could be found yet.
func (s *Service) Escalate(ctx context.Context, d domain.Delivery) {
	s.logger.Warn("driver shortage",
		logx.String("event", "driver_shortage"),
		logx.String("delivery_id", d.ID),
		logx.Int("attempts", d.Attempts),
	)
	s.notifyRestaurant(ctx, d.RestaurantID, "Driver shortage alert", map[string]any{
		"orderId": d.OrderID,
		"message": "We are experiencing difficulty finding a driver. Please prepare for potential delay.",
	})
	s.notifyUser(ctx, d.CustomerID, "Delivery delay notification", map[string]any{
		"orderId": d.OrderID,
		"message": "We are currently experiencing high demand and working on assigning a driver to your order. Thank you for your patience.",
	})
}

func (s *Service) attempt(result string) {
	if s.metrics.Attempts != nil {
		s.metrics.Attempts.WithLabelValues(result).Inc()
	}
}

func (s *Service) transitioned(d domain.Delivery) {
	if s.metrics.Transitions != nil {
		s.metrics.Transitions.WithLabelValues(string(d.Status)).Inc()
	}
}

func (s *Service) notifyUser(ctx context.Context, id, title string, data map[string]any) {
	s.logNotifyErr("user", id, title, s.notifier.NotifyUser(ctx, id, title, data))
}

func (s *Service) notifyDriver(ctx context.Context, id, title string, data map[string]any) {
	s.logNotifyErr("driver", id, title, s.notifier.NotifyDriver(ctx, id, title, data))
}

func (s *Service) notifyRestaurant(ctx context.Context, id, title string, data map[string]any) {
	s.logNotifyErr("restaurant", id, title, s.notifier.NotifyRestaurant(ctx, id, title, data))
}

func (s *Service) logNotifyErr(audience, id, title string, err error) {
	if err == nil {
		return
	}
	s.logger.Warn("notification failed",
		logx.String("audience", audience),
		logx.String("recipient", id),
		logx.String("title", title),
		logx.Err(err),
	)
}
