package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thakshilaCodes/Feedo/internal/http/handlers"
	"github.com/thakshilaCodes/Feedo/internal/http/middleware/auth"
)

const defaultTimeout = 5 * time.Second

// Deps bundles everything the router mounts.
type Deps struct {
	Base       *handlers.Handlers
	Deliveries *handlers.DeliveryHandler
	Drivers    *handlers.DriverHandler
	Socket     *handlers.SocketHandler
	Auth       *auth.Authenticator
	// Metrics serves /metrics; nil falls back to the default registry.
	Metrics http.Handler
	// Middlewares run after the base chain and before auth (observability, rate limit).
	Middlewares []func(http.Handler) http.Handler
	Timeout     time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = defaultTimeout
	}
	if d.Metrics == nil {
		d.Metrics = promhttp.Handler()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	for _, mw := range d.Middlewares {
		r.Use(mw)
	}
	r.Use(d.Auth.Middleware)

	r.NotFound(http.HandlerFunc(d.Base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(d.Base.MethodNotAllowed))

	// long-lived, must stay outside of Timeout
	r.Get("/ws", d.Socket.Serve)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(d.Timeout))

		r.Get("/ping", d.Base.Ping)
		r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
		r.Method(http.MethodGet, "/metrics", d.Metrics)
		r.Get("/track/{orderId}", d.Deliveries.Track)

		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/", d.Deliveries.Create)
			r.Put("/confirm/{orderId}", d.Deliveries.Confirm)
			r.Get("/order/{orderId}", d.Deliveries.GetByOrder)
			r.Get("/{id}", d.Deliveries.Get)
			r.Post("/{id}/cancel", d.Deliveries.Cancel)
			r.Post("/{id}/rate", d.Deliveries.Rate)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/register", d.Drivers.Register)
			r.Get("/nearby", d.Drivers.Nearby)
			r.Get("/{id}", d.Drivers.Get)

			r.Group(func(r chi.Router) {
				r.Use(d.Auth.RequireDriver("id"))
				r.Put("/{id}/availability", d.Drivers.SetAvailability)
				r.Put("/{id}/location", d.Drivers.UpdateLocation)
				r.Get("/{id}/deliveries", d.Drivers.Deliveries)
				r.Post("/{id}/accept", d.Drivers.Accept)
				r.Post("/{id}/reject", d.Drivers.Reject)
				r.Put("/{id}/deliveries/{deliveryId}/status", d.Drivers.UpdateStatus)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(d.Auth.RequireAdmin)
			r.Get("/drivers", d.Drivers.List)
			r.Get("/deliveries", d.Deliveries.List)
		})
	})

	return r
}
