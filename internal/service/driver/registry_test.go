package driver_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
	"github.com/thakshilaCodes/Feedo/internal/repository/memory"
	"github.com/thakshilaCodes/Feedo/internal/service/driver"
	"github.com/thakshilaCodes/Feedo/internal/testutil/fixture"
	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type env struct {
	store    *memory.Store
	notifier *Mocknotifier
	pub      *Mockpublisher
	svc      *driver.Service
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := memory.NewStore()
	n := NewMocknotifier(ctrl)
	p := NewMockpublisher(ctrl)
	svc := driver.NewService(st, n, p, driver.Config{}, nil).WithClock(func() time.Time { return fixedNow })
	return env{store: st, notifier: n, pub: p, svc: svc}
}

func seed(t *testing.T, st *memory.Store, drivers []domain.Driver, deliveries []domain.Delivery) {
	t.Helper()
	err := st.WithTx(context.Background(), func(tx dispatchtx.Repository) error {
		for i := range drivers {
			if err := tx.InsertDriver(context.Background(), &drivers[i]); err != nil {
				return err
			}
		}
		for i := range deliveries {
			if err := tx.InsertDelivery(context.Background(), &deliveries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	in := domain.NewDriver{
		UserID:      "user-1",
		Name:        "Kamal Perera",
		Email:       "kamal@example.com",
		Phone:       "+94771234567",
		VehicleType: domain.VehicleMotorcycle,
		Vehicle:     domain.VehicleDetails{Model: "Bajaj", LicensePlate: "WP-1234"},
	}

	d, err := e.svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.True(t, d.IsVerified)
	assert.False(t, d.IsAvailable)
	assert.Equal(t, domain.DriverOffline, d.Status)
	assert.Zero(t, d.Rating)
	assert.Equal(t, fixedNow, d.CreatedAt)

	_, err = e.svc.Register(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrDuplicateDriver)
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegister_ExplicitlyUnverified(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	no := false
	d, err := e.svc.Register(context.Background(), domain.NewDriver{
		UserID: "u", Name: "n", Phone: "0771234567", VehicleType: domain.VehicleCar, IsVerified: &no,
	})
	require.NoError(t, err)
	assert.False(t, d.IsVerified)
}

func TestRegister_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   domain.NewDriver
	}{
		{"no user", domain.NewDriver{Name: "n", Phone: "0771234567", VehicleType: domain.VehicleCar}},
		{"bad phone", domain.NewDriver{UserID: "u", Name: "n", Phone: "abc", VehicleType: domain.VehicleCar}},
		{"bad vehicle", domain.NewDriver{UserID: "u", Name: "n", Phone: "0771234567", VehicleType: "TRUCK"}},
		{"bad email", domain.NewDriver{UserID: "u", Name: "n", Email: "nope", Phone: "0771234567", VehicleType: domain.VehicleVan}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			_, err := e.svc.Register(context.Background(), tt.in)
			require.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, err := e.svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestList_Paginates(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	drivers := make([]domain.Driver, 0, 5)
	for i := 0; i < 5; i++ {
		drivers = append(drivers, fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow.Add(time.Duration(i)*time.Minute)))
	}
	seed(t, e.store, drivers, nil)

	page, err := e.svc.List(context.Background(), domain.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, drivers[2].ID, page.Items[0].ID)
}

func TestFindEligibleDrivers_Excludes(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	d1 := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	d2 := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	off := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	off.IsAvailable = false
	off.Status = domain.DriverOffline
	unverified := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	unverified.IsVerified = false
	seed(t, e.store, []domain.Driver{d1, d2, off, unverified}, nil)

	got, err := e.svc.FindEligibleDrivers(context.Background(), map[string]struct{}{d1.ID: {}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d2.ID, got[0].ID)
}

func TestNearby(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	near := fixture.Driver(fixture.CityLat+0.009, fixture.CityLon, fixedNow)
	mid := fixture.Driver(fixture.CityLat+0.027, fixture.CityLon, fixedNow)
	far := fixture.Driver(fixture.CityLat+0.2, fixture.CityLon, fixedNow)
	noLoc := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	noLoc.Location = nil
	seed(t, e.store, []domain.Driver{far, mid, near, noLoc}, nil)

	got, err := e.svc.Nearby(context.Background(), fixture.CityLat, fixture.CityLon, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, near.ID, got[0].Driver.ID)
	assert.Equal(t, mid.ID, got[1].Driver.ID)
	assert.InDelta(t, 1.0, got[0].DistanceKm, 0.05)

	got, err = e.svc.Nearby(context.Background(), fixture.CityLat, fixture.CityLon, 50)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = e.svc.Nearby(context.Background(), 91, 0, 1)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestSetAvailability(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	d := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	d.IsAvailable = false
	d.Status = domain.DriverOffline
	unverified := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	unverified.IsVerified = false
	unverified.IsAvailable = false
	unverified.Status = domain.DriverOffline
	busy := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	busy.IsAvailable = false
	busy.Status = domain.DriverOnDelivery
	busy.CurrentDeliveryID = "del-1"
	seed(t, e.store, []domain.Driver{d, unverified, busy}, nil)
	ctx := context.Background()

	got, err := e.svc.SetAvailability(ctx, d.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
	assert.Equal(t, domain.DriverAvailable, got.Status)

	got, err = e.svc.SetAvailability(ctx, d.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, domain.DriverOffline, got.Status)

	_, err = e.svc.SetAvailability(ctx, unverified.ID, true)
	require.ErrorIs(t, err, apperr.ErrNotVerified)
	_, err = e.svc.SetAvailability(ctx, unverified.ID, false)
	require.NoError(t, err)

	_, err = e.svc.SetAvailability(ctx, busy.ID, false)
	require.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = e.svc.SetAvailability(ctx, "missing", true)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateLocation_NoDelivery(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	d := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow.Add(-time.Hour))
	seed(t, e.store, []domain.Driver{d}, nil)

	got, err := e.svc.UpdateLocation(context.Background(), d.ID, 6.9, 79.9)
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	assert.Equal(t, 6.9, got.Location.Latitude)
	assert.Equal(t, fixedNow, got.Location.UpdatedAt)

	_, err = e.svc.UpdateLocation(context.Background(), d.ID, 0, 181)
	require.ErrorIs(t, err, apperr.ErrInvalid)
	_, err = e.svc.UpdateLocation(context.Background(), "missing", 1, 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateLocation_PickedUpMovesOnTheWayOnce(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	del := fixture.Delivery(domain.DeliveryPickedUp, fixedNow.Add(-time.Hour))
	d := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow.Add(-time.Hour))
	d.IsAvailable = false
	d.Status = domain.DriverOnDelivery
	d.CurrentDeliveryID = del.ID
	del.DriverID = d.ID
	seed(t, e.store, []domain.Driver{d}, []domain.Delivery{del})

	e.notifier.EXPECT().
		NotifyUser(gomock.Any(), del.CustomerID, "Driver is on the way with your order!", gomock.Any()).
		Return(nil).
		Times(1)
	e.pub.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, evt tracking.Event) error {
			assert.Equal(t, tracking.EventDriverLocation, evt.Type)
			assert.Equal(t, tracking.UserRoom(del.CustomerID), evt.Room)
			assert.Equal(t, d.ID, evt.Data["driverId"])
			return nil
		}).
		Times(2)

	_, err := e.svc.UpdateLocation(context.Background(), d.ID, 6.93, 79.86)
	require.NoError(t, err)
	_, err = e.svc.UpdateLocation(context.Background(), d.ID, 6.94, 79.87)
	require.NoError(t, err)

	stored, err := e.store.GetDelivery(context.Background(), del.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryOnTheWay, stored.Status)
	assert.Len(t, stored.History, 2)
	assert.Equal(t, domain.DeliveryOnTheWay, stored.History[len(stored.History)-1].Status)
}

func TestDeliveries(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	d := fixture.Driver(fixture.CityLat, fixture.CityLon, fixedNow)
	active := fixture.Delivery(domain.DeliveryDriverAssigned, fixedNow.Add(-time.Hour))
	active.DriverID = d.ID
	recent := fixture.Delivery(domain.DeliveryDelivered, fixedNow.Add(-48*time.Hour))
	recent.DriverID = d.ID
	recentAt := fixedNow.Add(-47 * time.Hour)
	recent.ActualDeliveryTime = &recentAt
	old := fixture.Delivery(domain.DeliveryDelivered, fixedNow.Add(-60*24*time.Hour))
	old.DriverID = d.ID
	oldAt := fixedNow.Add(-59 * 24 * time.Hour)
	old.ActualDeliveryTime = &oldAt
	seed(t, e.store, []domain.Driver{d}, []domain.Delivery{active, recent, old})

	got, err := e.svc.Deliveries(context.Background(), d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Current)
	assert.Equal(t, active.ID, got.Current.ID)
	require.Len(t, got.Recent, 1)
	assert.Equal(t, recent.ID, got.Recent[0].ID)

	_, err = e.svc.Deliveries(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
