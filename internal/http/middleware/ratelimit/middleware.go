package ratelimit

import (
	"io"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// Middleware ограничивает количество запросов на ключ (по умолчанию IP клиента)
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	limiter Limiter
	key     KeyFunc
	skip    map[string]struct{}
}

// Option tunes the Middleware.
type Option func(*Middleware)

// WithKeyFunc replaces the client IP key.
func WithKeyFunc(fn KeyFunc) Option {
	return func(m *Middleware) {
		if fn != nil {
			m.key = fn
		}
	}
}

// WithSkipPaths exempts exact paths, e.g. health checks and the metrics endpoint.
func WithSkipPaths(paths ...string) Option {
	return func(m *Middleware) {
		for _, p := range paths {
			m.skip[p] = struct{}{}
		}
	}
}

// New создает новый Middleware
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, opts ...Option) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	m := &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
		key:     clientIP,
		skip:    make(map[string]struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := m.skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			key := m.key(r)
			if m.limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			if m.counter != nil {
				m.counter.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("key", key),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
				// клиент мог оборвать соединение
				m.logger.Debug("rate limit response write failed",
					logx.String("key", key),
					logx.Any("err", err),
				)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
