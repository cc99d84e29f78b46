package retry

import (
	"context"
	"errors"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// Config tunes the scheduler.
type Config struct {
	// Interval between periodic sweeps of pending deliveries.
	Interval time.Duration
	// Backoff before the delayed attempt that follows a failed reassign.
	Backoff time.Duration
	// Threshold of attempts from which a failed reassign escalates.
	Threshold int
	// Batch caps the deliveries loaded by one sweep, 0 means all.
	Batch int
	// OperationTimeout bounds a single job.
	OperationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.Backoff <= 0 {
		c.Backoff = 60 * time.Second
	}
	if c.Threshold < 1 {
		c.Threshold = 5
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = 5 * time.Second
	}
	return c
}

// Scheduler drains the queue and sweeps unassigned deliveries. All work
// happens on the goroutine that calls Run.
type Scheduler struct {
	queue       *Queue
	svc         dispatcher
	cfg         Config
	escalations counter
	logger      logx.Logger
	now         func() time.Time
}

// NewScheduler creates a scheduler. escalations may be nil.
func NewScheduler(q *Queue, svc dispatcher, cfg Config, escalations counter, logger logx.Logger) *Scheduler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Scheduler{
		queue:       q,
		svc:         svc,
		cfg:         cfg.withDefaults(),
		escalations: escalations,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock, used by tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	if now != nil {
		s.now = now
	}
	return s
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	s.logger.Info("dispatch scheduler started",
		logx.Duration("interval", s.cfg.Interval),
		logx.Duration("backoff", s.cfg.Backoff),
	)
	for {
		s.RunDue(ctx)
		timer.Reset(s.untilNext())

		select {
		case <-ctx.Done():
			s.logger.Info("dispatch scheduler stopped", logx.Int("queued", s.queue.Len()))
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.queue.Wake():
		case <-timer.C:
		}
	}
}

func (s *Scheduler) untilNext() time.Duration {
	due, ok := s.queue.NextDue()
	if !ok {
		return s.cfg.Interval
	}
	wait := due.Sub(s.now())
	if wait < 0 {
		return 0
	}
	if wait > s.cfg.Interval {
		return s.cfg.Interval
	}
	return wait
}

// RunDue handles every job that is due and returns how many ran.
func (s *Scheduler) RunDue(ctx context.Context) int {
	n := 0
	for ctx.Err() == nil {
		job, ok := s.queue.PopDue(s.now())
		if !ok {
			break
		}
		s.handle(ctx, job)
		n++
	}
	return n
}

// Sweep retries every unassigned delivery, oldest first. A failing
// delivery does not stop the batch.
func (s *Scheduler) Sweep(ctx context.Context) {
	pending, err := s.svc.PendingDeliveries(ctx, s.cfg.Batch)
	if err != nil {
		s.logger.Error("sweep: load pending deliveries", logx.Err(err))
		return
	}
	if len(pending) == 0 {
		return
	}

	assigned := 0
	for _, d := range pending {
		if ctx.Err() != nil {
			return
		}
		ok, err := s.assign(ctx, d.ID)
		if err != nil {
			s.logger.Warn("sweep: dispatch failed",
				logx.String("delivery_id", d.ID),
				logx.Err(err),
			)
			continue
		}
		if ok {
			assigned++
		}
	}
	s.logger.Info("sweep finished",
		logx.String("event", "dispatch_sweep"),
		logx.Int("pending", len(pending)),
		logx.Int("notified", assigned),
	)
}

func (s *Scheduler) assign(ctx context.Context, deliveryID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()
	return s.svc.AssignToDriver(ctx, deliveryID)
}

func (s *Scheduler) handle(ctx context.Context, job Job) {
	ok, err := s.assign(ctx, job.DeliveryID)
	if err != nil {
		s.logger.Warn("dispatch job failed",
			logx.String("delivery_id", job.DeliveryID),
			logx.String("kind", string(job.Kind)),
			logx.Err(err),
		)
		return
	}
	// delayed jobs never chain, the sweep picks the delivery up later
	if ok || job.Kind != KindReassign {
		return
	}

	d, err := s.svc.Get(ctx, job.DeliveryID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("reassign: reload delivery",
				logx.String("delivery_id", job.DeliveryID),
				logx.Err(err),
			)
		}
		return
	}
	if !d.Unassigned() {
		return
	}

	if d.Attempts >= s.cfg.Threshold {
		if s.escalations != nil {
			s.escalations.Inc()
		}
		s.svc.Escalate(ctx, d)
	}
	s.queue.After(d.ID, s.cfg.Backoff)
}
