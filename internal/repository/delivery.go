package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

const deliveryColumns = `
    id, order_id, restaurant_id, customer_id, driver_id,
    order_details, pickup, dropoff, status, history, rejected_by,
    attempts, distance_km, estimated_delivery_time, actual_delivery_time,
    notes, rating, feedback, created_at, updated_at`

// DeliveryForUpdate locks and returns the delivery, or nil when missing.
func (r *TxRepo) DeliveryForUpdate(ctx context.Context, id string) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id)
	d, err := scanDelivery(row)
	if err != nil {
		return nil, fmt.Errorf("lock delivery %s: %w", id, err)
	}
	return d, nil
}

// DeliveryByOrderIDForUpdate locks and returns the delivery of the order, or nil when missing.
func (r *TxRepo) DeliveryByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1 FOR UPDATE`, orderID)
	d, err := scanDelivery(row)
	if err != nil {
		return nil, fmt.Errorf("lock delivery by order %q: %w", orderID, err)
	}
	return d, nil
}

// InsertDelivery inserts a new delivery.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	args, err := deliveryArgs(d)
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `
        INSERT INTO deliveries (`+deliveryColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
    `, args...)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrDuplicateOrder
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// UpdateDelivery writes every mutable column of the delivery.
func (r *TxRepo) UpdateDelivery(ctx context.Context, d *domain.Delivery) error {
	history, err := json.Marshal(nonNil(d.History))
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	rejected, err := json.Marshal(nonNil(d.RejectedBy))
	if err != nil {
		return fmt.Errorf("marshal rejections: %w", err)
	}

	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET driver_id = $2,
            status = $3,
            history = $4,
            rejected_by = $5,
            attempts = $6,
            estimated_delivery_time = $7,
            actual_delivery_time = $8,
            notes = $9,
            rating = $10,
            feedback = $11,
            updated_at = $12
        WHERE id = $1
    `, d.ID, nullable(d.DriverID), string(d.Status), history, rejected, d.Attempts,
		d.EstimatedDeliveryTime, d.ActualDeliveryTime, d.Notes, d.Rating, d.Feedback, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update delivery %s: %w", d.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %s: %w", d.ID, apperr.ErrNotFound)
	}
	return nil
}

// GetDelivery returns the delivery, or nil when missing.
func (s *Store) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	d, err := scanDelivery(s.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get delivery %s: %w", id, err)
	}
	return d, nil
}

// GetDeliveryByOrderID returns the delivery of the order, or nil when missing.
func (s *Store) GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	d, err := scanDelivery(s.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1`, orderID))
	if err != nil {
		return nil, fmt.Errorf("get delivery by order %q: %w", orderID, err)
	}
	return d, nil
}

// ListDeliveries returns a page of deliveries, newest first, and the filtered total.
func (s *Store) ListDeliveries(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, int, error) {
	p := f.Paging.Normalize()
	status := string(f.Status)

	var total int
	if err := s.db.QueryRow(ctx, `
        SELECT count(*) FROM deliveries WHERE ($1::text = '' OR status = $1::text)
    `, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	rows, err := s.db.Query(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE ($1::text = '' OR status = $1::text)
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `, status, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	items, err := collectDeliveries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	return items, total, nil
}

// ListUnassigned returns CONFIRMED deliveries without a driver, oldest first.
func (s *Store) ListUnassigned(ctx context.Context, limit int) ([]domain.Delivery, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.db.Query(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE status = $1 AND driver_id IS NULL
        ORDER BY created_at ASC, id ASC
        LIMIT $2
    `, string(domain.DeliveryConfirmed), lim)
	if err != nil {
		return nil, fmt.Errorf("list unassigned deliveries: %w", err)
	}
	items, err := collectDeliveries(rows)
	if err != nil {
		return nil, fmt.Errorf("list unassigned deliveries: %w", err)
	}
	return items, nil
}

// ListDriverDeliveries returns active deliveries plus the ones delivered since the given time.
func (s *Store) ListDriverDeliveries(ctx context.Context, driverID string, since time.Time) ([]domain.Delivery, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE driver_id = $1
          AND (status = ANY($2) OR (status = $3 AND actual_delivery_time >= $4))
        ORDER BY created_at DESC, id DESC
    `, driverID,
		[]string{string(domain.DeliveryDriverAssigned), string(domain.DeliveryPickedUp), string(domain.DeliveryOnTheWay)},
		string(domain.DeliveryDelivered), since)
	if err != nil {
		return nil, fmt.Errorf("list driver deliveries: %w", err)
	}
	items, err := collectDeliveries(rows)
	if err != nil {
		return nil, fmt.Errorf("list driver deliveries: %w", err)
	}
	return items, nil
}

func deliveryArgs(d *domain.Delivery) ([]any, error) {
	details, err := json.Marshal(d.OrderDetails)
	if err != nil {
		return nil, fmt.Errorf("marshal order details: %w", err)
	}
	pickup, err := json.Marshal(d.Pickup)
	if err != nil {
		return nil, fmt.Errorf("marshal pickup: %w", err)
	}
	dropoff, err := json.Marshal(d.Dropoff)
	if err != nil {
		return nil, fmt.Errorf("marshal dropoff: %w", err)
	}
	history, err := json.Marshal(nonNil(d.History))
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	rejected, err := json.Marshal(nonNil(d.RejectedBy))
	if err != nil {
		return nil, fmt.Errorf("marshal rejections: %w", err)
	}

	return []any{
		d.ID, d.OrderID, d.RestaurantID, d.CustomerID, nullable(d.DriverID),
		details, pickup, dropoff, string(d.Status), history, rejected,
		d.Attempts, d.DistanceKm, d.EstimatedDeliveryTime, d.ActualDeliveryTime,
		d.Notes, d.Rating, d.Feedback, d.CreatedAt, d.UpdatedAt,
	}, nil
}

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	var (
		d                                           domain.Delivery
		driverID                                    *string
		status                                      string
		details, pickup, dropoff, history, rejected []byte
	)
	err := row.Scan(
		&d.ID, &d.OrderID, &d.RestaurantID, &d.CustomerID, &driverID,
		&details, &pickup, &dropoff, &status, &history, &rejected,
		&d.Attempts, &d.DistanceKm, &d.EstimatedDeliveryTime, &d.ActualDeliveryTime,
		&d.Notes, &d.Rating, &d.Feedback, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if driverID != nil {
		d.DriverID = *driverID
	}
	d.Status = domain.DeliveryStatus(status)

	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{details, &d.OrderDetails},
		{pickup, &d.Pickup},
		{dropoff, &d.Dropoff},
		{history, &d.History},
		{rejected, &d.RejectedBy},
	} {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode delivery %s: %w", d.ID, err)
		}
	}
	return &d, nil
}

func collectDeliveries(rows pgx.Rows) ([]domain.Delivery, error) {
	defer rows.Close()

	out := make([]domain.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
