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

const driverColumns = `
    id, user_id, name, email, phone, is_available, is_verified, status,
    latitude, longitude, location_updated_at, current_delivery_id,
    rating, total_deliveries, vehicle_type, vehicle, created_at, updated_at`

// DriverForUpdate locks and returns the driver, or nil when missing.
func (r *TxRepo) DriverForUpdate(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := scanDriver(r.tx.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("lock driver %s: %w", id, err)
	}
	return d, nil
}

// DriverByUserID returns the driver profile of the user, or nil when missing.
func (r *TxRepo) DriverByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	d, err := scanDriver(r.tx.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE user_id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("get driver by user %q: %w", userID, err)
	}
	return d, nil
}

// InsertDriver inserts a new driver profile.
func (r *TxRepo) InsertDriver(ctx context.Context, d *domain.Driver) error {
	vehicle, err := json.Marshal(d.Vehicle)
	if err != nil {
		return fmt.Errorf("marshal vehicle: %w", err)
	}
	lat, lon, locAt := locationArgs(d.Location)

	_, err = r.tx.Exec(ctx, `
        INSERT INTO drivers (`+driverColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
    `, d.ID, d.UserID, d.Name, d.Email, d.Phone, d.IsAvailable, d.IsVerified, string(d.Status),
		lat, lon, locAt, nullable(d.CurrentDeliveryID),
		d.Rating, d.TotalDeliveries, string(d.VehicleType), vehicle, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrDuplicateDriver
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// UpdateDriver writes the mutable state of the driver.
func (r *TxRepo) UpdateDriver(ctx context.Context, d *domain.Driver) error {
	lat, lon, locAt := locationArgs(d.Location)
	ct, err := r.tx.Exec(ctx, `
        UPDATE drivers
        SET is_available = $2,
            is_verified = $3,
            status = $4,
            latitude = $5,
            longitude = $6,
            location_updated_at = $7,
            current_delivery_id = $8,
            rating = $9,
            total_deliveries = $10,
            updated_at = $11
        WHERE id = $1
    `, d.ID, d.IsAvailable, d.IsVerified, string(d.Status), lat, lon, locAt,
		nullable(d.CurrentDeliveryID), d.Rating, d.TotalDeliveries, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update driver %s: %w", d.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("driver %s: %w", d.ID, apperr.ErrNotFound)
	}
	return nil
}

// GetDriver returns the driver, or nil when missing.
func (s *Store) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := scanDriver(s.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get driver %s: %w", id, err)
	}
	return d, nil
}

// ListDrivers returns a page of drivers, newest first, and the total count.
func (s *Store) ListDrivers(ctx context.Context, p domain.Page) ([]domain.Driver, int, error) {
	p = p.Normalize()

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM drivers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count drivers: %w", err)
	}

	rows, err := s.db.Query(ctx, `
        SELECT `+driverColumns+`
        FROM drivers
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2
    `, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list drivers: %w", err)
	}
	items, err := collectDrivers(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list drivers: %w", err)
	}
	return items, total, nil
}

// ListEligibleDrivers returns drivers that can be offered a delivery, ordered by id.
func (s *Store) ListEligibleDrivers(ctx context.Context) ([]domain.Driver, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+driverColumns+`
        FROM drivers
        WHERE is_available AND is_verified AND status = $1
        ORDER BY id
    `, string(domain.DriverAvailable))
	if err != nil {
		return nil, fmt.Errorf("list eligible drivers: %w", err)
	}
	items, err := collectDrivers(rows)
	if err != nil {
		return nil, fmt.Errorf("list eligible drivers: %w", err)
	}
	return items, nil
}

func locationArgs(p *domain.GeoPoint) (*float64, *float64, *time.Time) {
	if p == nil {
		return nil, nil, nil
	}
	lat, lon, at := p.Latitude, p.Longitude, p.UpdatedAt
	return &lat, &lon, &at
}

func scanDriver(row pgx.Row) (*domain.Driver, error) {
	var (
		d                 domain.Driver
		status, vehicleTp string
		lat, lon          *float64
		locAt             *time.Time
		current           *string
		vehicle           []byte
	)
	err := row.Scan(
		&d.ID, &d.UserID, &d.Name, &d.Email, &d.Phone, &d.IsAvailable, &d.IsVerified, &status,
		&lat, &lon, &locAt, &current,
		&d.Rating, &d.TotalDeliveries, &vehicleTp, &vehicle, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	d.Status = domain.DriverStatus(status)
	d.VehicleType = domain.VehicleType(vehicleTp)
	if current != nil {
		d.CurrentDeliveryID = *current
	}
	if lat != nil && lon != nil {
		p := domain.GeoPoint{Latitude: *lat, Longitude: *lon}
		if locAt != nil {
			p.UpdatedAt = *locAt
		}
		d.Location = &p
	}
	if err := json.Unmarshal(vehicle, &d.Vehicle); err != nil {
		return nil, fmt.Errorf("decode driver %s vehicle: %w", d.ID, err)
	}
	return &d, nil
}

func collectDrivers(rows pgx.Rows) ([]domain.Driver, error) {
	defer rows.Close()

	out := make([]domain.Driver, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
