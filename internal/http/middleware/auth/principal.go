// Package auth resolves the caller of a request and guards driver and admin routes.
package auth

import (
	"context"
	"strings"

	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

// Role is the caller's role as issued by the user service.
type Role string

// List of roles
const (
	RoleDriver     Role = "DRIVER"
	RoleAdmin      Role = "ADMIN"
	RoleCustomer   Role = "CUSTOMER"
	RoleRestaurant Role = "RESTAURANT"
)

// ParseRole normalizes a role string; unknown roles map to "".
func ParseRole(s string) Role {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleDriver, RoleAdmin, RoleCustomer, RoleRestaurant:
		return r
	default:
		return ""
	}
}

// Principal is the authenticated caller.
type Principal struct {
	UserID       string
	DriverID     string
	RestaurantID string
	Role         Role
}

// Anonymous reports whether no identity was presented.
func (p Principal) Anonymous() bool {
	return p == Principal{}
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// ActsAsDriver reports whether the principal may act on behalf of the driver.
func (p Principal) ActsAsDriver(driverID string) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == RoleDriver && p.DriverID != "" && p.DriverID == driverID
}

// Rooms lists the live tracking rooms the principal listens to.
func (p Principal) Rooms() []string {
	var rooms []string
	if p.UserID != "" {
		rooms = append(rooms, tracking.UserRoom(p.UserID))
	}
	if p.DriverID != "" {
		rooms = append(rooms, tracking.DriverRoom(p.DriverID))
	}
	if p.RestaurantID != "" {
		rooms = append(rooms, tracking.RestaurantRoom(p.RestaurantID))
	}
	return rooms
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by the middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
