package auth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// ErrUnauthorized is returned for a malformed, expired or badly signed token.
var ErrUnauthorized = errors.New("unauthorized")

// Claims is the token payload issued by the user service.
type Claims struct {
	UserID       string `json:"userId,omitempty"`
	DriverID     string `json:"driverId,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty"`
	Role         string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator turns requests into principals.
// Without a secret it trusts the X-Role, X-User-Id, X-Driver-Id and
// X-Restaurant-Id headers (development mode).
type Authenticator struct {
	secret []byte
	logger logx.Logger
	now    func() time.Time
}

// New creates an Authenticator. An empty secret enables header identity.
func New(secret string, logger logx.Logger) *Authenticator {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Authenticator{secret: []byte(secret), logger: logger, now: time.Now}
}

// HeaderMode reports whether identity comes from plain headers.
func (a *Authenticator) HeaderMode() bool { return len(a.secret) == 0 }

// Principal resolves the caller. A request without credentials yields the
// anonymous principal and no error.
func (a *Authenticator) Principal(r *http.Request) (Principal, error) {
	if a.HeaderMode() {
		return Principal{
			UserID:       strings.TrimSpace(r.Header.Get("X-User-Id")),
			DriverID:     strings.TrimSpace(r.Header.Get("X-Driver-Id")),
			RestaurantID: strings.TrimSpace(r.Header.Get("X-Restaurant-Id")),
			Role:         ParseRole(r.Header.Get("X-Role")),
		}, nil
	}

	token := bearer(r.Header.Get("Authorization"))
	if token == "" {
		// браузерный websocket не умеет в заголовки
		token = strings.TrimSpace(r.URL.Query().Get("token"))
	}
	if token == "" {
		return Principal{}, nil
	}
	return a.Parse(token)
}

// Parse validates an HS256 token and returns its principal.
func (a *Authenticator) Parse(token string) (Principal, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return Principal{
		UserID:       c.UserID,
		DriverID:     c.DriverID,
		RestaurantID: c.RestaurantID,
		Role:         ParseRole(c.Role),
	}, nil
}

// Sign issues a token for p valid for ttl. Used by tooling and tests.
func (a *Authenticator) Sign(p Principal, ttl time.Duration) (string, error) {
	now := a.now()
	c := Claims{
		UserID:       p.UserID,
		DriverID:     p.DriverID,
		RestaurantID: p.RestaurantID,
		Role:         string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
}

func bearer(h string) string {
	const prefix = "bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// Middleware stores the principal in the request context.
// A bad token is rejected with 401; a missing one passes as anonymous.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := a.Principal(r)
		if err != nil {
			a.logger.Warn("invalid token",
				logx.String("path", r.URL.Path),
				logx.Err(err),
			)
			deny(a.logger, w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAdmin lets only ADMIN principals through.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		switch {
		case p.Anonymous():
			deny(a.logger, w, http.StatusUnauthorized, "authentication required")
		case !p.IsAdmin():
			a.logger.Warn("admin access denied",
				logx.String("user_id", p.UserID),
				logx.String("role", string(p.Role)),
			)
			deny(a.logger, w, http.StatusForbidden, "admin privileges required")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// RequireDriver lets through the driver named by the URL param, or an admin.
func (a *Authenticator) RequireDriver(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := FromContext(r.Context())
			driverID := chi.URLParam(r, param)
			switch {
			case p.Anonymous():
				deny(a.logger, w, http.StatusUnauthorized, "authentication required")
			case !p.ActsAsDriver(driverID):
				a.logger.Warn("driver access denied",
					logx.String("user_id", p.UserID),
					logx.String("principal_driver", p.DriverID),
					logx.String("driver_id", driverID),
				)
				deny(a.logger, w, http.StatusForbidden, "unauthorized access")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func deny(logger logx.Logger, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, `{"error":"`+msg+`"}`); err != nil {
		logger.Debug("auth response write failed", logx.Err(err))
	}
}
