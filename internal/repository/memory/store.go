package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
)

// Store is an in-process store used when no database is configured and in tests.
// WithTx holds the store mutex for the whole callback, so transactions are serial.
type Store struct {
	mu         sync.Mutex
	deliveries map[string]domain.Delivery
	byOrder    map[string]string
	drivers    map[string]domain.Driver
	byUser     map[string]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		deliveries: map[string]domain.Delivery{},
		byOrder:    map[string]string{},
		drivers:    map[string]domain.Driver{},
		byUser:     map[string]string{},
	}
}

var _ dispatchtx.Store = (*Store)(nil)

// Close is a no-op.
func (s *Store) Close() {}

// WithTx runs fn against staged copies and commits them when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txRepo{
		s:          s,
		deliveries: map[string]domain.Delivery{},
		drivers:    map[string]domain.Driver{},
	}
	if err := fn(tx); err != nil {
		return err
	}

	for id, d := range tx.deliveries {
		s.deliveries[id] = d
		s.byOrder[d.OrderID] = id
	}
	for id, d := range tx.drivers {
		s.drivers[id] = d
		s.byUser[d.UserID] = id
	}
	return nil
}

type txRepo struct {
	s          *Store
	deliveries map[string]domain.Delivery
	drivers    map[string]domain.Driver
}

func (t *txRepo) delivery(id string) (domain.Delivery, bool) {
	if d, ok := t.deliveries[id]; ok {
		return d, true
	}
	d, ok := t.s.deliveries[id]
	return d, ok
}

func (t *txRepo) driver(id string) (domain.Driver, bool) {
	if d, ok := t.drivers[id]; ok {
		return d, true
	}
	d, ok := t.s.drivers[id]
	return d, ok
}

func (t *txRepo) DeliveryForUpdate(_ context.Context, id string) (*domain.Delivery, error) {
	d, ok := t.delivery(id)
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

func (t *txRepo) DeliveryByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Delivery, error) {
	for id, d := range t.deliveries {
		if d.OrderID == orderID {
			return t.DeliveryForUpdate(ctx, id)
		}
	}
	id, ok := t.s.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	return t.DeliveryForUpdate(ctx, id)
}

func (t *txRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	existing, err := t.DeliveryByOrderIDForUpdate(ctx, d.OrderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.ErrDuplicateOrder
	}
	if _, ok := t.delivery(d.ID); ok {
		return fmt.Errorf("%w: delivery id %s", apperr.ErrConflict, d.ID)
	}
	t.deliveries[d.ID] = d.Clone()
	return nil
}

func (t *txRepo) UpdateDelivery(_ context.Context, d *domain.Delivery) error {
	if _, ok := t.delivery(d.ID); !ok {
		return fmt.Errorf("delivery %s: %w", d.ID, apperr.ErrNotFound)
	}
	t.deliveries[d.ID] = d.Clone()
	return nil
}

func (t *txRepo) DriverForUpdate(_ context.Context, id string) (*domain.Driver, error) {
	d, ok := t.driver(id)
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

func (t *txRepo) DriverByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	for id, d := range t.drivers {
		if d.UserID == userID {
			return t.DriverForUpdate(ctx, id)
		}
	}
	id, ok := t.s.byUser[userID]
	if !ok {
		return nil, nil
	}
	return t.DriverForUpdate(ctx, id)
}

func (t *txRepo) InsertDriver(ctx context.Context, d *domain.Driver) error {
	existing, err := t.DriverByUserID(ctx, d.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.ErrDuplicateDriver
	}
	t.drivers[d.ID] = d.Clone()
	return nil
}

func (t *txRepo) UpdateDriver(_ context.Context, d *domain.Driver) error {
	if _, ok := t.driver(d.ID); !ok {
		return fmt.Errorf("driver %s: %w", d.ID, apperr.ErrNotFound)
	}
	t.drivers[d.ID] = d.Clone()
	return nil
}

// GetDelivery returns the delivery or nil when missing.
func (s *Store) GetDelivery(_ context.Context, id string) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deliveries[id]
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

// GetDeliveryByOrderID returns the delivery of the order or nil when missing.
func (s *Store) GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	s.mu.Lock()
	id, ok := s.byOrder[orderID]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return s.GetDelivery(ctx, id)
}

// ListDeliveries returns a page of deliveries, newest first.
func (s *Store) ListDeliveries(_ context.Context, f domain.DeliveryFilter) ([]domain.Delivery, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Delivery, 0, len(s.deliveries))
	for _, d := range s.deliveries {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return newerFirst(all[i].CreatedAt, all[j].CreatedAt, all[i].ID, all[j].ID) })

	return clonePage(all, f.Paging), len(all), nil
}

// ListUnassigned returns CONFIRMED deliveries without a driver, oldest first.
func (s *Store) ListUnassigned(_ context.Context, limit int) ([]domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Delivery, 0)
	for _, d := range s.deliveries {
		if d.Unassigned() {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return !newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListDriverDeliveries returns active deliveries plus the ones delivered since the given time.
func (s *Store) ListDriverDeliveries(_ context.Context, driverID string, since time.Time) ([]domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Delivery, 0)
	for _, d := range s.deliveries {
		if d.DriverID != driverID {
			continue
		}
		recent := d.Status == domain.DeliveryDelivered && d.ActualDeliveryTime != nil && !d.ActualDeliveryTime.Before(since)
		if d.Status.Active() || recent {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

// GetDriver returns the driver or nil when missing.
func (s *Store) GetDriver(_ context.Context, id string) (*domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

// ListDrivers returns a page of drivers, newest first.
func (s *Store) ListDrivers(_ context.Context, p domain.Page) ([]domain.Driver, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return newerFirst(all[i].CreatedAt, all[j].CreatedAt, all[i].ID, all[j].ID) })

	p = p.Normalize()
	start, end := bounds(len(all), p)
	out := make([]domain.Driver, 0, end-start)
	for _, d := range all[start:end] {
		out = append(out, d.Clone())
	}
	return out, len(all), nil
}

// ListEligibleDrivers returns drivers that can be offered a delivery, ordered by id.
func (s *Store) ListEligibleDrivers(_ context.Context) ([]domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Driver, 0)
	for _, d := range s.drivers {
		if d.Eligible() {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func newerFirst(a, b time.Time, idA, idB string) bool {
	if a.Equal(b) {
		return idA > idB
	}
	return a.After(b)
}

func bounds(n int, p domain.Page) (int, int) {
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}

func clonePage(all []domain.Delivery, p domain.Page) []domain.Delivery {
	p = p.Normalize()
	start, end := bounds(len(all), p)
	out := make([]domain.Delivery, 0, end-start)
	for _, d := range all[start:end] {
		out = append(out, d.Clone())
	}
	return out
}
