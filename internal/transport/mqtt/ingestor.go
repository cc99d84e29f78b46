// Package mqtt ingests driver telemetry published by vehicle devices.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// LocationHandler applies a reported driver position.
type LocationHandler func(ctx context.Context, driverID string, lat, lon float64) error

// Config describes the broker connection.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	// Topic must contain a single '+' wildcard in place of the driver id.
	Topic string
}

type locationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Ingestor subscribes to the location topic and feeds every report to a handler.
type Ingestor struct {
	client  paho.Client
	topic   string
	handle  LocationHandler
	logger  logx.Logger
	timeout time.Duration
	ctx     context.Context
}

// NewIngestor returns nil when no broker is configured.
func NewIngestor(cfg Config, h LocationHandler, logger logx.Logger) *Ingestor {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	logger = logger.With(logx.String("component", "mqtt"))

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("mqtt connection lost", logx.Err(err))
	})

	return &Ingestor{
		client:  paho.NewClient(opts),
		topic:   cfg.Topic,
		handle:  h,
		logger:  logger,
		timeout: 5 * time.Second,
		ctx:     context.Background(),
	}
}

// Run connects, subscribes and blocks until ctx is done.
func (i *Ingestor) Run(ctx context.Context) error {
	if i == nil {
		return nil
	}
	i.ctx = ctx

	if token := i.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	defer i.client.Disconnect(250)

	token := i.client.Subscribe(i.topic, 1, func(_ paho.Client, msg paho.Message) {
		i.onMessage(msg.Topic(), msg.Payload())
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", i.topic, token.Error())
	}
	i.logger.Info("mqtt location ingestion started", logx.String("topic", i.topic))

	<-ctx.Done()
	i.client.Unsubscribe(i.topic).WaitTimeout(time.Second)
	return ctx.Err()
}

func (i *Ingestor) onMessage(topic string, payload []byte) {
	driverID, ok := DriverIDFromTopic(i.topic, topic)
	if !ok {
		i.logger.Warn("mqtt unexpected topic", logx.String("topic", topic))
		return
	}
	var p locationPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Latitude == nil || p.Longitude == nil {
		i.logger.Warn("mqtt bad location payload", logx.String("driver_id", driverID))
		return
	}

	ctx, cancel := context.WithTimeout(i.ctx, i.timeout)
	defer cancel()
	if err := i.handle(ctx, driverID, *p.Latitude, *p.Longitude); err != nil {
		i.logger.Warn("mqtt location update failed",
			logx.String("driver_id", driverID),
			logx.Err(err),
		)
	}
}

// DriverIDFromTopic extracts the segment matched by the '+' wildcard of pattern.
func DriverIDFromTopic(pattern, topic string) (string, bool) {
	ps := strings.Split(pattern, "/")
	ts := strings.Split(topic, "/")
	if len(ps) != len(ts) {
		return "", false
	}
	id := ""
	for n := range ps {
		switch ps[n] {
		case "+":
			id = ts[n]
		case ts[n]:
		default:
			return "", false
		}
	}
	return id, id != ""
}
