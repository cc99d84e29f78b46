package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/thakshilaCodes/Feedo/internal/config"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/metrics"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	logOutput  io.Writer
	logFatalf  func(string, ...any)
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDBWithRetry,
		loadConfig: config.Load,
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
		logOutput:  os.Stdout,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config.Load.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithRegistry sets where collectors are registered and /metrics reads from.
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registerer = reg
		b.gatherer = reg
	}
	return b
}

// WithLogOutput redirects service logs.
func (b *ContainerBuilder) WithLogOutput(w io.Writer) *ContainerBuilder {
	if w != nil {
		b.logOutput = w
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...any)) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container: HTTP, websocket and every background loop.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	return b.must(b.build(ctx, registerHTTP))
}

// MustBuildWorker builds the worker container without the HTTP surface.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	return b.must(b.build(ctx))
}

func (b *ContainerBuilder) must(c *dig.Container, err error) *dig.Container {
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return c
}

func (b *ContainerBuilder) build(ctx context.Context, extra ...func(*dig.Container) error) (*dig.Container, error) {
	container := dig.New()

	steps := []struct {
		name string
		fn   func(*dig.Container) error
	}{
		{"core", b.registerCore(ctx)},
		{"storage", b.registerStorage},
		{"tracking", registerTracking},
		{"notify", registerNotify},
		{"domain", registerDomain},
		{"ingest", registerIngest},
	}
	for _, s := range steps {
		if err := s.fn(container); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	for _, fn := range extra {
		if err := fn(container); err != nil {
			return nil, fmt.Errorf("http: %w", err)
		}
	}
	return container, nil
}

// MustBuildContainer builds the API container with production defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with production defaults.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func (b *ContainerBuilder) registerCore(ctx context.Context) func(*dig.Container) error {
	return func(container *dig.Container) error {
		return provideAll(container,
			func() context.Context { return ctx },
			b.loadConfig,
			func(cfg *config.Config) (logx.Logger, error) {
				return logx.New(logx.Options{Format: cfg.Log.Format, Level: cfg.Log.Level}, b.logOutput)
			},
			func() prometheus.Gatherer { return b.gatherer },
			func() (*metrics.Registry, error) { return provideMetrics(b.registerer) },
			newCleanup,
		)
	}
}

// provideMetrics builds the service collectors and registers them with reg.
func provideMetrics(reg prometheus.Registerer) (*metrics.Registry, error) {
	m := metrics.New()
	if err := m.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return m, nil
}
