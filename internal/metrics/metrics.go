package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewNotificationRetriesTotal returns a counter of notification send retries.
func NewNotificationRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_retries_total",
		Help: "Total number of retry attempts performed by notification senders",
	})
}

// NewNotificationFailuresTotal returns a counter of notifications that were given up on.
func NewNotificationFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Total number of notifications that could not be delivered",
	})
}

// Dispatch attempt results.
const (
	ResultAssigned = "notified"
	ResultNoDriver = "no_driver"
	ResultSkipped  = "skipped"
	ResultError    = "error"
)

// NewDispatchAttemptsTotal returns a counter of dispatch attempts partitioned by result.
func NewDispatchAttemptsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_attempts_total",
		Help: "Total number of driver dispatch attempts by result",
	}, []string{"result"})
}

// NewDispatchEscalationsTotal returns a counter of driver shortage escalations.
func NewDispatchEscalationsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_escalations_total",
		Help: "Total number of driver shortage alerts sent",
	})
}

// NewStatusTransitionsTotal returns a counter of delivery status transitions by target status.
func NewStatusTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_status_transitions_total",
		Help: "Total number of delivery status transitions by target status",
	}, []string{"status"})
}

// NewTrackingDroppedTotal returns a counter of tracking events dropped on full subscriber buffers.
func NewTrackingDroppedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_events_dropped_total",
		Help: "Total number of live tracking events dropped because a subscriber was slow",
	})
}

// NewWebsocketConnections returns a gauge of open tracking websocket connections.
func NewWebsocketConnections() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tracking_websocket_connections",
		Help: "Number of open live tracking websocket connections",
	})
}

// NewHTTPRequestsTotal returns a counter of served HTTP requests.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
}

// NewHTTPRequestDuration returns a histogram of HTTP request latency.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
}

// Registry bundles every collector the service exports.
type Registry struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	RateLimitExceeded    prometheus.Counter
	NotificationRetries  prometheus.Counter
	NotificationFailures prometheus.Counter
	DispatchAttempts     *prometheus.CounterVec
	DispatchEscalations  prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	TrackingDropped      prometheus.Counter
	WebsocketConnections prometheus.Gauge
}

// New builds all collectors without registering them.
func New() *Registry {
	return &Registry{
		HTTPRequests:         NewHTTPRequestsTotal(),
		HTTPDuration:         NewHTTPRequestDuration(),
		RateLimitExceeded:    NewRateLimitExceededTotal(),
		NotificationRetries:  NewNotificationRetriesTotal(),
		NotificationFailures: NewNotificationFailuresTotal(),
		DispatchAttempts:     NewDispatchAttemptsTotal(),
		DispatchEscalations:  NewDispatchEscalationsTotal(),
		StatusTransitions:    NewStatusTransitionsTotal(),
		TrackingDropped:      NewTrackingDroppedTotal(),
		WebsocketConnections: NewWebsocketConnections(),
	}
}

// Collectors returns every collector of the registry.
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.HTTPRequests,
		r.HTTPDuration,
		r.RateLimitExceeded,
		r.NotificationRetries,
		r.NotificationFailures,
		r.DispatchAttempts,
		r.DispatchEscalations,
		r.StatusTransitions,
		r.TrackingDropped,
		r.WebsocketConnections,
	}
}

// Register registers every collector with reg.
func (r *Registry) Register(reg prometheus.Registerer) error {
	for _, c := range r.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
