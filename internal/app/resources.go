package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/repository"
)

var newPool = repository.NewPool

func connectDBWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	const attemptTimeout = 3 * time.Second
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", i))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

// cleanup collects closers of the resources opened while building a container.
// They run in reverse order of registration.
type cleanup struct {
	mu  sync.Mutex
	fns []namedCloser
}

type namedCloser struct {
	name string
	fn   func() error
}

func newCleanup() *cleanup { return &cleanup{} }

func (c *cleanup) add(name string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, namedCloser{name: name, fn: fn})
}

func (c *cleanup) addFunc(name string, fn func()) {
	c.add(name, func() error {
		fn()
		return nil
	})
}

func (c *cleanup) run(logger logx.Logger) {
	c.mu.Lock()
	fns := c.fns
	c.fns = nil
	c.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i].fn(); err != nil {
			logger.Error("close error", logx.String("resource", fns[i].name), logx.Err(err))
		}
	}
}
