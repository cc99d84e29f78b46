package notify

import (
	"context"
	"sync"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// AsyncSender sends in the background so callers never wait on a channel.
type AsyncSender struct {
	next     Sender
	timeout  time.Duration
	failures counter
	logger   logx.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncSender wraps next. failures may be nil.
func NewAsyncSender(next Sender, timeout time.Duration, failures counter, logger logx.Logger) *AsyncSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &AsyncSender{next: next, timeout: timeout, failures: failures, logger: logger}
}

// Send starts the delivery and returns at once. The caller's
// cancellation does not abort it.
func (s *AsyncSender) Send(ctx context.Context, m Message) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if err := s.next.Send(sendCtx, m); err != nil {
			if s.failures != nil {
				s.failures.Inc()
			}
			s.logger.Error("notification failed",
				logx.String("audience", string(m.Audience)),
				logx.String("recipient", m.RecipientID),
				logx.String("title", m.Title),
				logx.Err(err),
			)
			return
		}
		s.logger.Debug("notification sent",
			logx.String("audience", string(m.Audience)),
			logx.String("recipient", m.RecipientID),
			logx.String("title", m.Title),
		)
	}()
	return nil
}

// Close rejects new sends and waits for in-flight ones.
func (s *AsyncSender) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}
