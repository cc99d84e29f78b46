package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/thakshilaCodes/Feedo/internal/config"
	"github.com/thakshilaCodes/Feedo/internal/gateway/notify"
	"github.com/thakshilaCodes/Feedo/internal/http/handlers"
	"github.com/thakshilaCodes/Feedo/internal/http/middleware/ratelimit"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/metrics"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
	"github.com/thakshilaCodes/Feedo/internal/repository/memory"
	"github.com/thakshilaCodes/Feedo/internal/service/dispatch"
	"github.com/thakshilaCodes/Feedo/internal/service/retry"
	"github.com/thakshilaCodes/Feedo/internal/testutil/fixture"
	"github.com/thakshilaCodes/Feedo/internal/tracking"
	"github.com/thakshilaCodes/Feedo/internal/transport/kafka"
	"github.com/thakshilaCodes/Feedo/internal/transport/mqtt"
)

func memoryConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage = config.StorageMemory
	cfg.Notifications.ServiceURL = ""
	cfg.Log.Level = "error"
	return &cfg
}

func testBuilder(cfg *config.Config) *ContainerBuilder {
	return NewContainerBuilder().
		WithConfig(func() (*config.Config, error) { return cfg, nil }).
		WithRegistry(prometheus.NewRegistry()).
		WithLogOutput(io.Discard).
		WithDBConnect(func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
			return nil, errors.New("postgres must not be used")
		})
}

func TestContainer_MemoryStack(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	c, err := testBuilder(cfg).build(context.Background(), registerHTTP)
	require.NoError(t, err)

	err = c.Invoke(func(in serviceIn, st dispatchtx.Store, broker tracking.Broker, async *notify.AsyncSender) {
		assert.IsType(t, &memory.Store{}, st)
		assert.IsType(t, &tracking.MemoryBroker{}, broker)
		require.NotNil(t, async)

		require.NotNil(t, in.Server)
		assert.Equal(t, ":8080", in.Server.Addr)
		assert.Greater(t, in.Server.ReadHeaderTimeout, time.Duration(0))
		assert.Nil(t, in.Pprof)

		bg := in.Background
		assert.NotNil(t, bg.Scheduler)
		assert.Nil(t, bg.Consumer)
		assert.Nil(t, bg.Ingestor)
		assert.Len(t, backgroundTasks(bg), 1)

		rr := httptest.NewRecorder()
		in.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		in.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "http_requests_total")

		bg.Cleanup.run(bg.Logger)
	})
	require.NoError(t, err)
}

func TestContainer_PprofEnabled(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Pprof = config.Pprof{Addr: "127.0.0.1:6060", User: "u", Pass: "p"}
	c, err := testBuilder(cfg).build(context.Background(), registerHTTP)
	require.NoError(t, err)

	require.NoError(t, c.Invoke(func(in serviceIn) {
		require.NotNil(t, in.Pprof)
		assert.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
	}))
}

func TestContainer_Worker(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Dispatch.SchedulerEnabled = false
	cfg.MQTT.Broker = "tcp://127.0.0.1:1883"

	c, err := testBuilder(cfg).build(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.Invoke(func(in backgroundIn, q *retry.Queue) {
		require.NotNil(t, q)
		assert.Nil(t, in.Consumer)
		assert.IsType(t, &mqtt.Ingestor{}, in.Ingestor)

		tasks := backgroundTasks(in)
		require.Len(t, tasks, 1)
		assert.Equal(t, "mqtt-ingestor", tasks[0].name)
	}))

	// у воркера нет HTTP
	err = c.Invoke(func(*handlers.Handlers) {})
	require.Error(t, err)
}

func TestContainer_PostgresConnectError(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Notifications.ServiceURL = ""

	c, err := testBuilder(&cfg).build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(dispatchtx.Store) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres must not be used")
}

func TestContainer_ConfigErrorIsFatal(t *testing.T) {
	t.Parallel()

	var fatal string
	b := NewContainerBuilder().
		WithConfig(func() (*config.Config, error) { return nil, errors.New("bad env") }).
		WithRegistry(prometheus.NewRegistry()).
		WithLogFatalf(func(format string, _ ...any) { fatal = format })

	c := b.MustBuild(context.Background())
	require.NotNil(t, c)

	// конфиг читается лениво, при первом Invoke
	err := c.Invoke(func(*config.Config) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad env")
	assert.Empty(t, fatal)
}

func TestContainer_KafkaConsumerError(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Kafka.Brokers = []string{"127.0.0.1:1"}
	cfg.Notifications.Topic = ""

	c, err := testBuilder(cfg).build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(*kafka.Consumer) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka consumer")
}

func TestProvideMetrics_RegisterTwiceFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := provideMetrics(reg)
	require.NoError(t, err)
	require.IsType(t, &metrics.Registry{}, m)

	_, err = provideMetrics(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register metrics")
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	type bad struct{}
	require.Error(t, provideAll(dig.New(), bad{}))
}

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	assert.IsType(t, ratelimit.NopLimiter{}, newRateLimiter(cfg, newRateLimitClock()))

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Burst = 1
	l := newRateLimiter(cfg, newRateLimitClock())
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
}

func TestContainer_DispatchQueueFollowsScheduler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
		wantLen int
	}{
		{name: "scheduler on", enabled: true, wantLen: 1},
		{name: "scheduler off", enabled: false, wantLen: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := memoryConfig()
			cfg.Dispatch.SchedulerEnabled = tc.enabled
			c, err := testBuilder(cfg).build(context.Background())
			require.NoError(t, err)

			require.NoError(t, c.Invoke(func(svc *dispatch.Service, q *retry.Queue) {
				_, err := svc.CreateDelivery(context.Background(), fixture.NewDelivery(6.92, 79.86))
				require.NoError(t, err)
				assert.Equal(t, tc.wantLen, q.Len())
			}))
		})
	}
}
