package notify

import (
	"context"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// RetryConfig описывает поведение RetryingSender
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingSender повторяет отправку при временных ошибках
type RetryingSender struct {
	next    Sender
	name    string
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingSender конструктор который проверяет, что next не nil и возвращает RetryingSender
func NewRetryingSender(next Sender, name string, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingSender {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingSender{next: next, name: name, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

// Send реализует Sender
func (s *RetryingSender) Send(ctx context.Context, m Message) error {
	var lastErr error
	// цикл по повторам
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		err := s.next.Send(ctx, m)
		if err == nil {
			return nil
		}
		lastErr = err
		// проверяем условия повтора
		if ctx.Err() != nil || attempt == s.cfg.MaxAttempts || !IsTemporary(err) {
			break
		}
		// вычисляем задержку
		delay := backoff(s.cfg.BaseDelay, s.cfg.MaxDelay, attempt)
		if s.retries != nil {
			s.retries.Inc()
		}
		s.logger.Warn("notification retry",
			logx.String("sender", s.name),
			logx.String("audience", string(m.Audience)),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		// ждем
		if !s.sleep(ctx, delay) {
			break
		}
	}
	return lastErr
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d < 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
