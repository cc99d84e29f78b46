package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"github.com/thakshilaCodes/Feedo/internal/config"
	"github.com/thakshilaCodes/Feedo/internal/http/handlers"
	"github.com/thakshilaCodes/Feedo/internal/http/middleware"
	"github.com/thakshilaCodes/Feedo/internal/http/middleware/auth"
	"github.com/thakshilaCodes/Feedo/internal/http/middleware/ratelimit"
	"github.com/thakshilaCodes/Feedo/internal/http/pprofserver"
	"github.com/thakshilaCodes/Feedo/internal/http/router"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/metrics"
	"github.com/thakshilaCodes/Feedo/internal/service/dispatch"
	"github.com/thakshilaCodes/Feedo/internal/service/driver"
	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

const pprofServerName = "pprof_server"

func registerHTTP(container *dig.Container) error {
	if err := provideAll(container,
		func(cfg *config.Config, logger logx.Logger) *auth.Authenticator {
			return auth.New(cfg.Auth.JWTSecret, logger)
		},
		handlers.New,
		func(logger logx.Logger, svc *dispatch.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, handlers.NewDeliveryUsecase(svc))
		},
		func(logger logx.Logger, drivers *driver.Service, svc *dispatch.Service) *handlers.DriverHandler {
			return handlers.NewDriverHandler(logger, handlers.NewDriverUsecase(drivers), handlers.NewDeliveryUsecase(svc))
		},
		provideSocketHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		provideRouter,
		provideServer,
	); err != nil {
		return err
	}
	if err := container.Provide(providePprofServer, dig.Name(pprofServerName)); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return nil
}

type socketIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Broker  tracking.Broker
	Auth    *auth.Authenticator
	Drivers *driver.Service
	Metrics *metrics.Registry
}

func provideSocketHandler(in socketIn) *handlers.SocketHandler {
	return handlers.NewSocketHandler(
		in.Logger.With(logx.String("component", "ws")),
		in.Broker,
		in.Auth,
		in.Drivers,
		in.Metrics.WebsocketConnections,
		handlers.SocketConfig{
			LocationRate:  in.Cfg.Tracking.LocationRate,
			LocationBurst: in.Cfg.Tracking.LocationBurst,
		},
	)
}

type routerIn struct {
	dig.In

	Cfg        *config.Config
	Logger     logx.Logger
	Metrics    *metrics.Registry
	Gatherer   prometheus.Gatherer
	Base       *handlers.Handlers
	Deliveries *handlers.DeliveryHandler
	Drivers    *handlers.DriverHandler
	Socket     *handlers.SocketHandler
	Auth       *auth.Authenticator
	RateLimit  *ratelimit.Middleware
}

func provideRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:       in.Base,
		Deliveries: in.Deliveries,
		Drivers:    in.Drivers,
		Socket:     in.Socket,
		Auth:       in.Auth,
		Metrics:    promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{}),
		Middlewares: []func(http.Handler) http.Handler{
			middleware.Observability(in.Logger, middleware.HTTPMetrics{
				Requests: in.Metrics.HTTPRequests,
				Duration: in.Metrics.HTTPDuration,
			}),
			in.RateLimit.Handler(),
		},
		Timeout: in.Cfg.Dispatch.OperationTimeout + 2*time.Second,
	})
}

func provideServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// providePprofServer returns nil when PPROF_ADDR is empty.
func providePprofServer(cfg *config.Config) *http.Server {
	return pprofserver.New(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewKeyedLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitMiddleware(logger logx.Logger, m *metrics.Registry, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, m.RateLimitExceeded, limiter,
		ratelimit.WithSkipPaths("/ping", "/healthcheck", "/metrics", "/ws"),
	)
}
