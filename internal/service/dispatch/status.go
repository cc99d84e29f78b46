package dispatch

import (
	"context"
	"fmt"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/lifecycle"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
	"github.com/thakshilaCodes/Feedo/internal/service/driver"
)

// UpdateDeliveryStatus applies a driver-reported status change to the delivery
// assigned to that driver.
func (s *Service) UpdateDeliveryStatus(
	ctx context.Context,
	driverID, deliveryID string,
	status domain.DeliveryStatus,
	note string,
) (domain.Delivery, error) {
	if !status.DriverFacing() {
		return domain.Delivery{}, apperr.Invalidf("status %q can not be set by a driver", status)
	}
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
		if d.DriverID != driverID {
			return fmt.Errorf("%w: delivery is not assigned to this driver", apperr.ErrForbidden)
		}

		now := s.now()
		next, err := lifecycle.Transition(*d, status, note, now)
		if err != nil {
			return err
		}
		if err := tx.UpdateDelivery(ctx, &next); err != nil {
			return err
		}
		if next.Status.Terminal() {
			if driver.Release(drv, next.ID, next.Status == domain.DeliveryDelivered, now) {
				if err := tx.UpdateDriver(ctx, drv); err != nil {
					return err
				}
			}
		}
		out = next
		name = drv.Name
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.transitioned(out)
	s.logger.Info("delivery status updated",
		logx.String("event", "delivery_status"),
		logx.String("delivery_id", out.ID),
		logx.String("driver_id", driverID),
		logx.String("status", string(out.Status)),
	)
	s.announceStatus(ctx, out, name, note)
	return out, nil
}

func (s *Service) announceStatus(ctx context.Context, d domain.Delivery, driverName, note string) {
	base := map[string]any{
		"orderId":    d.OrderID,
		"deliveryId": d.ID,
		"status":     string(d.Status),
	}
	with := func(extra map[string]any) map[string]any {
		out := make(map[string]any, len(base)+len(extra))
		for k, v := range base {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	switch d.Status {
	case domain.DeliveryPickedUp:
		s.notifyUser(ctx, d.CustomerID, "Driver has picked up your order", with(map[string]any{
			"driverName":            driverName,
			"estimatedDeliveryTime": d.EstimatedDeliveryTime,
		}))
		s.notifyRestaurant(ctx, d.RestaurantID, "Order picked up", with(map[string]any{"driverName": driverName}))
	case domain.DeliveryOnTheWay:
		s.notifyUser(ctx, d.CustomerID, "Driver is on the way with your order!", with(nil))
	case domain.DeliveryDelivered:
		s.notifyUser(ctx, d.CustomerID, "Your order has been delivered!", with(map[string]any{"message": "Enjoy your meal!"}))
	case domain.DeliveryCancelled, domain.DeliveryFailed:
		reason := note
		if reason == "" {
			reason = noReason
		}
		userTitle, restaurantTitle := "Your delivery has been cancelled", "Delivery cancelled"
		if d.Status == domain.DeliveryFailed {
			userTitle, restaurantTitle = "Your delivery has failed", "Delivery failed"
		}
		s.notifyUser(ctx, d.CustomerID, userTitle, with(map[string]any{"reason": reason}))
		s.notifyRestaurant(ctx, d.RestaurantID, restaurantTitle, with(map[string]any{"reason": reason}))
	}
}

// CancelDelivery cancels a non-terminal delivery and frees its driver.
func (s *Service) CancelDelivery(ctx context.Context, deliveryID, reason string) (domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Delivery
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		next, err := s.cancelLocked(ctx, tx, *d, reason)
		if err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}
	s.announceCancel(ctx, out, reason)
	return out, nil
}

// CancelByOrder cancels the delivery of an order, used by the order events consumer.
func (s *Service) CancelByOrder(ctx context.Context, orderID, reason string) (domain.Delivery, error) {
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
		next, err := s.cancelLocked(ctx, tx, *d, reason)
		if err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}
	s.announceCancel(ctx, out, reason)
	return out, nil
}

// cancelLocked runs inside a transaction holding the delivery row.
func (s *Service) cancelLocked(ctx context.Context, tx dispatchtx.Repository, d domain.Delivery, reason string) (domain.Delivery, error) {
	if d.Status.Terminal() {
		return domain.Delivery{}, fmt.Errorf("%w: delivery is %s", apperr.ErrInvalidState, d.Status)
	}
	note := reason
	if note == "" {
		note = noteCancelled
	}

	now := s.now()
	next, err := lifecycle.Transition(d, domain.DeliveryCancelled, note, now)
	if err != nil {
		return domain.Delivery{}, err
	}
	if err := tx.UpdateDelivery(ctx, &next); err != nil {
		return domain.Delivery{}, err
	}
	if next.DriverID == "" {
		return next, nil
	}

	drv, err := tx.DriverForUpdate(ctx, next.DriverID)
	if err != nil {
		return domain.Delivery{}, err
	}
	if drv != nil && driver.Release(drv, next.ID, false, now) {
		if err := tx.UpdateDriver(ctx, drv); err != nil {
			return domain.Delivery{}, err
		}
	}
	return next, nil
}

func (s *Service) announceCancel(ctx context.Context, d domain.Delivery, reason string) {
	if reason == "" {
		reason = noReason
	}
	s.transitioned(d)
	s.logger.Info("delivery cancelled",
		logx.String("event", "delivery_cancelled"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("reason", reason),
	)
	data := map[string]any{"orderId": d.OrderID, "deliveryId": d.ID, "reason": reason}
	s.notifyRestaurant(ctx, d.RestaurantID, "Delivery cancelled", data)
	s.notifyUser(ctx, d.CustomerID, "Your delivery has been cancelled", data)
	if d.DriverID != "" {
		s.notifyDriver(ctx, d.DriverID, "Delivery cancelled", data)
	}
}

// RateDelivery stores the customer's rating of a delivered order and folds it
// into the driver's average. A delivery can be rated once.
func (s *Service) RateDelivery(ctx context.Context, deliveryID string, rating int, feedback string) (domain.Delivery, error) {
	if rating < 1 || rating > 5 {
		return domain.Delivery{}, apperr.Invalidf("rating must be between 1 and 5")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Delivery
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.DeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status != domain.DeliveryDelivered {
			return fmt.Errorf("%w: only delivered orders can be rated", apperr.ErrInvalidState)
		}
		if d.Rating != nil {
			return apperr.ErrAlreadyRated
		}

		now := s.now()
		r := rating
		d.Rating = &r
		d.Feedback = feedback
		d.UpdatedAt = now
		if err := tx.UpdateDelivery(ctx, d); err != nil {
			return err
		}

		if d.DriverID != "" {
			drv, err := tx.DriverForUpdate(ctx, d.DriverID)
			if err != nil {
				return err
			}
			if drv != nil {
				driver.ApplyRating(drv, rating, now)
				if err := tx.UpdateDriver(ctx, drv); err != nil {
					return err
				}
			}
		}
		out = *d
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.logger.Info("delivery rated",
		logx.String("event", "delivery_rated"),
		logx.String("delivery_id", out.ID),
		logx.Int("rating", rating),
	)
	return out, nil
}
