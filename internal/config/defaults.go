package config

import "time"

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "delivery_db",
}

var defaultDispatch = Dispatch{
	OperationTimeout:    3 * time.Second,
	RetryInterval:       30 * time.Second,
	EscalationBackoff:   60 * time.Second,
	EscalationThreshold: 5,
	SweepBatch:          100,
	NearbyRadiusKm:      5,
	SchedulerEnabled:    true,
}

var defaultNotifications = Notifications{
	ServiceURL: "http://localhost:3005",
	Timeout:    5 * time.Second,
	Retry: Retry{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	},
	Topic: "delivery-notifications",
}

var defaultKafka = Kafka{
	GroupID:     "delivery-service",
	OrdersTopic: "orders",
}

var defaultMQTT = MQTT{
	ClientID:      "delivery-service",
	LocationTopic: "drivers/+/location",
}

var defaultTracking = Tracking{
	LocationRate:  1,
	LocationBurst: 5,
	BufferSize:    16,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       10,
	Burst:      20,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

func defaults() Config {
	return Config{
		Port:          defaultPort,
		Storage:       StoragePostgres,
		DB:            defaultDB,
		Log:           Log{Format: "json", Level: "info"},
		Dispatch:      defaultDispatch,
		Notifications: defaultNotifications,
		Kafka:         defaultKafka,
		MQTT:          defaultMQTT,
		Tracking:      defaultTracking,
		RateLimit:     defaultRateLimit,
	}
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultNotifications returns the default notification gateway settings.
func DefaultNotifications() Notifications {
	return defaultNotifications
}

// Default returns the built-in configuration without reading the environment.
func Default() Config {
	return defaults()
}
