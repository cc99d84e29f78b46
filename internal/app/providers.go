package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/dig"

	"github.com/thakshilaCodes/Feedo/internal/config"
	"github.com/thakshilaCodes/Feedo/internal/gateway/notify"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/metrics"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
	"github.com/thakshilaCodes/Feedo/internal/repository"
	"github.com/thakshilaCodes/Feedo/internal/repository/memory"
	"github.com/thakshilaCodes/Feedo/internal/service/dispatch"
	"github.com/thakshilaCodes/Feedo/internal/service/driver"
	"github.com/thakshilaCodes/Feedo/internal/service/orders"
	"github.com/thakshilaCodes/Feedo/internal/service/retry"
	"github.com/thakshilaCodes/Feedo/internal/tracking"
	"github.com/thakshilaCodes/Feedo/internal/transport/kafka"
	"github.com/thakshilaCodes/Feedo/internal/transport/mqtt"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
)

type storageIn struct {
	dig.In

	Ctx     context.Context
	Cfg     *config.Config
	Logger  logx.Logger
	Cleanup *cleanup
}

func (b *ContainerBuilder) registerStorage(container *dig.Container) error {
	return provideAll(container, func(in storageIn) (dispatchtx.Store, error) {
		return b.provideStore(in)
	})
}

func (b *ContainerBuilder) provideStore(in storageIn) (dispatchtx.Store, error) {
	if in.Cfg.Storage == config.StorageMemory {
		in.Logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}

	pool, err := b.dbConnect(in.Ctx, in.Logger, in.Cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
	if err != nil {
		return nil, err
	}
	if err := repository.EnsureSchema(in.Ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	st := repository.NewStore(pool)
	in.Cleanup.addFunc("postgres", st.Close)
	return st, nil
}

func registerTracking(container *dig.Container) error {
	return provideAll(container, provideBroker)
}

func provideBroker(cfg *config.Config, logger logx.Logger, m *metrics.Registry, c *cleanup) (tracking.Broker, error) {
	if cfg.Redis.URL == "" {
		return tracking.NewMemoryBroker(cfg.Tracking.BufferSize, m.TrackingDropped), nil
	}
	b, err := tracking.NewRedisBroker(cfg.Redis.URL, cfg.Tracking.BufferSize, m.TrackingDropped, logger)
	if err != nil {
		return nil, err
	}
	c.add("redis", b.Close)
	return b, nil
}

type notifyIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Metrics *metrics.Registry
	Broker  tracking.Broker
	Store   dispatchtx.Store
	Cleanup *cleanup
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		provideSender,
		func(s *notify.AsyncSender) *notify.Gateway { return notify.NewGateway(s) },
	)
}

// provideSender fans every message out to the configured channels.
// Each channel retries on its own, the whole fan-out runs off the caller's goroutine.
func provideSender(in notifyIn) (*notify.AsyncSender, error) {
	cfg := in.Cfg.Notifications
	rc := notify.RetryConfig{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}

	var fan notify.Fanout
	add := func(name string, s notify.Sender) {
		// NewRetryingSender отдает nil для nil next
		if rs := notify.NewRetryingSender(s, name, in.Logger, in.Metrics.NotificationRetries, rc); rs != nil {
			fan = append(fan, rs)
		}
	}

	add("tracking", notify.NewTrackingSender(in.Broker))
	if cfg.ServiceURL != "" {
		add("http", notify.NewHTTPSender(cfg.ServiceURL, cfg.Timeout))
	}
	if len(in.Cfg.Kafka.Brokers) > 0 && cfg.Topic != "" {
		ks, err := notify.NewKafkaSender(in.Cfg.Kafka.Brokers, cfg.Topic)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		in.Cleanup.add("kafka producer", ks.Close)
		add("kafka", ks)
	}
	if tw := in.Cfg.Twilio; tw.AccountSID != "" {
		add("sms", notify.NewSMSSender(tw.AccountSID, tw.AuthToken, tw.From, driver.NewPhoneBook(in.Store)))
	}

	timeout := cfg.Timeout * time.Duration(rc.MaxAttempts)
	async := notify.NewAsyncSender(fan, timeout, in.Metrics.NotificationFailures, in.Logger)
	// закрываем первым, чтобы дождаться отправок до закрытия продюсера
	in.Cleanup.addFunc("notifications", async.Close)
	return async, nil
}

func registerDomain(container *dig.Container) error {
	return provideAll(container,
		retry.NewQueue,
		provideDriverService,
		provideDispatchService,
		provideScheduler,
		func(svc *dispatch.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(svc, logger)
		},
	)
}

func provideDriverService(
	cfg *config.Config,
	st dispatchtx.Store,
	gw *notify.Gateway,
	broker tracking.Broker,
	logger logx.Logger,
) *driver.Service {
	return driver.NewService(st, gw, broker, driver.Config{
		OperationTimeout: cfg.Dispatch.OperationTimeout,
		NearbyRadiusKm:   cfg.Dispatch.NearbyRadiusKm,
	}, logger.With(logx.String("component", "drivers")))
}

type dispatchIn struct {
	dig.In

	Cfg     *config.Config
	Store   dispatchtx.Store
	Drivers *driver.Service
	Gateway *notify.Gateway
	Queue   *retry.Queue
	Metrics *metrics.Registry
	Logger  logx.Logger
}

func provideDispatchService(in dispatchIn) *dispatch.Service {
	logger := in.Logger.With(logx.String("component", "dispatch"))
	var retrier interface {
		Dispatch(deliveryID string)
		Reassign(deliveryID string)
	} = in.Queue
	if !in.Cfg.Dispatch.SchedulerEnabled {
		// очередь никто не разбирает, остается только sweep воркера
		logger.Warn("scheduler disabled, background dispatch attempts are left to the worker sweep")
		retrier = retry.Discard{}
	}
	return dispatch.NewService(
		in.Store,
		in.Drivers,
		in.Gateway,
		retrier,
		dispatch.NewETAFactory(),
		dispatch.Metrics{Attempts: in.Metrics.DispatchAttempts, Transitions: in.Metrics.StatusTransitions},
		in.Cfg.Dispatch.OperationTimeout,
		logger,
	)
}

func provideScheduler(
	cfg *config.Config,
	q *retry.Queue,
	svc *dispatch.Service,
	m *metrics.Registry,
	logger logx.Logger,
) *retry.Scheduler {
	d := cfg.Dispatch
	return retry.NewScheduler(q, svc, retry.Config{
		Interval:         d.RetryInterval,
		Backoff:          d.EscalationBackoff,
		Threshold:        d.EscalationThreshold,
		Batch:            d.SweepBatch,
		OperationTimeout: d.OperationTimeout,
	}, m.DispatchEscalations, logger.With(logx.String("component", "scheduler")))
}

func registerIngest(container *dig.Container) error {
	return provideAll(container, provideConsumer, provideIngestor)
}

// provideConsumer returns a nil consumer when Kafka is not configured.
func provideConsumer(cfg *config.Config, logger logx.Logger, p *orders.Processor, c *cleanup) (*kafka.Consumer, error) {
	k := cfg.Kafka
	consumer, err := kafka.NewConsumer(logger.With(logx.String("component", "orders-consumer")),
		k.Brokers, k.GroupID, k.OrdersTopic, makeOrdersHandler(p, cfg.Dispatch.OperationTimeout))
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	if consumer != nil {
		c.add("kafka consumer", consumer.Close)
	}
	return consumer, nil
}

// provideIngestor returns a nil ingestor when MQTT is not configured.
func provideIngestor(cfg *config.Config, logger logx.Logger, drivers *driver.Service) *mqtt.Ingestor {
	m := cfg.MQTT
	return mqtt.NewIngestor(mqtt.Config{
		Broker:   m.Broker,
		ClientID: m.ClientID,
		Username: m.Username,
		Password: m.Password,
		Topic:    m.LocationTopic,
	}, func(ctx context.Context, driverID string, lat, lon float64) error {
		_, err := drivers.UpdateLocation(ctx, driverID, lat, lon)
		return err
	}, logger)
}
