package config

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port          int
	Storage       string
	DB            DB
	Log           Log
	Dispatch      Dispatch
	Notifications Notifications
	Twilio        Twilio
	Kafka         Kafka
	Redis         Redis
	MQTT          MQTT
	Auth          Auth
	Tracking      Tracking
	RateLimit     RateLimit
	Pprof         Pprof
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Log selects the logger backend.
type Log struct {
	Format string
	Level  string
}

// Dispatch stores dispatch engine and retry scheduler settings.
type Dispatch struct {
	OperationTimeout    time.Duration
	RetryInterval       time.Duration
	EscalationBackoff   time.Duration
	EscalationThreshold int
	SweepBatch          int
	NearbyRadiusKm      float64
	SchedulerEnabled    bool
}

// Retry describes exponential backoff of an outbound gateway.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Notifications stores the notification gateway settings.
type Notifications struct {
	ServiceURL string
	Timeout    time.Duration
	Retry      Retry
	Topic      string
}

// Twilio stores SMS credentials; an empty SID disables SMS.
type Twilio struct {
	AccountSID string
	AuthToken  string
	From       string
}

// Kafka stores broker settings shared by the consumer and the producer.
type Kafka struct {
	Brokers     []string
	GroupID     string
	OrdersTopic string
}

// Redis stores the tracking broker URL; empty means in-process broker.
type Redis struct {
	URL string
}

// MQTT stores driver telemetry ingestion settings; an empty broker disables it.
type MQTT struct {
	Broker        string
	ClientID      string
	Username      string
	Password      string
	LocationTopic string
}

// Auth stores the JWT secret; empty enables header based identity for development.
type Auth struct {
	JWTSecret string
}

// Tracking stores live tracking settings.
type Tracking struct {
	LocationRate  float64
	LocationBurst int
	BufferSize    int
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the debug server settings; an empty address disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := defaults()
	e := envReader{}

	cfg.Port = e.integer("PORT", cfg.Port)
	cfg.Storage = e.text("STORAGE", cfg.Storage)

	cfg.DB.Host = e.text("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = e.text("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = e.text("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = e.text("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = e.text("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q", cfg.DB.Port)
	}

	cfg.Log.Format = e.text("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Level = e.text("LOG_LEVEL", cfg.Log.Level)

	cfg.Dispatch.OperationTimeout = e.dur("DISPATCH_OPERATION_TIMEOUT", cfg.Dispatch.OperationTimeout)
	cfg.Dispatch.RetryInterval = e.dur("DISPATCH_RETRY_INTERVAL", cfg.Dispatch.RetryInterval)
	cfg.Dispatch.EscalationBackoff = e.dur("DISPATCH_ESCALATION_BACKOFF", cfg.Dispatch.EscalationBackoff)
	cfg.Dispatch.EscalationThreshold = e.integer("DISPATCH_ESCALATION_THRESHOLD", cfg.Dispatch.EscalationThreshold)
	cfg.Dispatch.SweepBatch = e.integer("DISPATCH_SWEEP_BATCH", cfg.Dispatch.SweepBatch)
	cfg.Dispatch.NearbyRadiusKm = e.number("DISPATCH_NEARBY_RADIUS_KM", cfg.Dispatch.NearbyRadiusKm)
	cfg.Dispatch.SchedulerEnabled = e.boolean("DISPATCH_SCHEDULER_ENABLED", cfg.Dispatch.SchedulerEnabled)

	cfg.Notifications.ServiceURL = strings.TrimRight(e.text("NOTIFICATION_SERVICE_URL", cfg.Notifications.ServiceURL), "/")
	cfg.Notifications.Timeout = e.dur("NOTIFICATION_TIMEOUT", cfg.Notifications.Timeout)
	cfg.Notifications.Retry.MaxAttempts = e.integer("NOTIFICATION_RETRY_MAX_ATTEMPTS", cfg.Notifications.Retry.MaxAttempts)
	cfg.Notifications.Retry.BaseDelay = e.dur("NOTIFICATION_RETRY_BASE_DELAY", cfg.Notifications.Retry.BaseDelay)
	cfg.Notifications.Retry.MaxDelay = e.dur("NOTIFICATION_RETRY_MAX_DELAY", cfg.Notifications.Retry.MaxDelay)
	cfg.Notifications.Topic = e.text("NOTIFICATIONS_TOPIC", cfg.Notifications.Topic)

	cfg.Twilio.AccountSID = e.text("TWILIO_ACCOUNT_SID", cfg.Twilio.AccountSID)
	cfg.Twilio.AuthToken = e.text("TWILIO_AUTH_TOKEN", cfg.Twilio.AuthToken)
	cfg.Twilio.From = e.text("TWILIO_FROM", cfg.Twilio.From)

	cfg.Kafka.Brokers = e.list("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.GroupID = e.text("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.OrdersTopic = e.text("ORDERS_TOPIC", cfg.Kafka.OrdersTopic)

	cfg.Redis.URL = e.text("REDIS_URL", cfg.Redis.URL)

	cfg.MQTT.Broker = e.text("MQTT_BROKER", cfg.MQTT.Broker)
	cfg.MQTT.ClientID = e.text("MQTT_CLIENT_ID", cfg.MQTT.ClientID)
	cfg.MQTT.Username = e.text("MQTT_USERNAME", cfg.MQTT.Username)
	cfg.MQTT.Password = e.text("MQTT_PASSWORD", cfg.MQTT.Password)
	cfg.MQTT.LocationTopic = e.text("MQTT_LOCATION_TOPIC", cfg.MQTT.LocationTopic)

	cfg.Auth.JWTSecret = e.text("JWT_SECRET", cfg.Auth.JWTSecret)

	cfg.Tracking.LocationRate = e.number("TRACKING_LOCATION_RATE", cfg.Tracking.LocationRate)
	cfg.Tracking.LocationBurst = e.integer("TRACKING_LOCATION_BURST", cfg.Tracking.LocationBurst)
	cfg.Tracking.BufferSize = e.integer("TRACKING_BUFFER_SIZE", cfg.Tracking.BufferSize)

	cfg.RateLimit.Enabled = e.boolean("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = e.number("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = e.integer("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.TTL = e.dur("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = e.integer("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	cfg.Pprof.Addr = e.text("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = e.text("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = e.text("PPROF_PASS", cfg.Pprof.Pass)

	if e.err != nil {
		return nil, e.err
	}

	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: postgres or memory")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("invalid storage %q", c.Storage)
	}
	if c.Dispatch.RetryInterval <= 0 {
		return fmt.Errorf("invalid DISPATCH_RETRY_INTERVAL: %s", c.Dispatch.RetryInterval)
	}
	if c.Dispatch.EscalationBackoff <= 0 {
		return fmt.Errorf("invalid DISPATCH_ESCALATION_BACKOFF: %s", c.Dispatch.EscalationBackoff)
	}
	if c.Dispatch.EscalationThreshold < 1 {
		return fmt.Errorf("invalid DISPATCH_ESCALATION_THRESHOLD: %d", c.Dispatch.EscalationThreshold)
	}
	if c.Notifications.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid NOTIFICATION_RETRY_MAX_ATTEMPTS: %d", c.Notifications.Retry.MaxAttempts)
	}
	return nil
}

// envReader reads typed values and remembers the first parse error.
type envReader struct {
	err error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (e *envReader) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
}

func (e *envReader) text(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) number(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *envReader) boolean(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *envReader) dur(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *envReader) list(key string, def []string) []string {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
