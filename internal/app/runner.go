package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"github.com/thakshilaCodes/Feedo/internal/config"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/service/retry"
	"github.com/thakshilaCodes/Feedo/internal/transport/kafka"
	"github.com/thakshilaCodes/Feedo/internal/transport/mqtt"
)

const shutdownTimeout = 15 * time.Second

// task is a long running component stopped by cancelling its context.
type task struct {
	name string
	run  func(ctx context.Context) error
}

// Runner runs one of the containers until its context is cancelled.
type Runner struct {
	runFn     func(*dig.Container) error
	logFatalf func(string, ...any)
}

// NewRunner returns a runner for the API container.
func NewRunner() *Runner {
	return &Runner{runFn: runService, logFatalf: log.Fatalf}
}

// NewWorkerRunner returns a runner for the worker container.
func NewWorkerRunner() *Runner {
	return &Runner{runFn: runWorker, logFatalf: log.Fatalf}
}

// MustRun blocks until shutdown and exits the process on a runtime error.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return
	case errors.Is(err, context.DeadlineExceeded):
		log.Println("startup aborted: startup timeout exceeded")
	default:
		r.logFatalf("run error: %v", err)
	}
}

type backgroundIn struct {
	dig.In

	Ctx       context.Context
	Cfg       *config.Config
	Logger    logx.Logger
	Scheduler *retry.Scheduler
	Consumer  *kafka.Consumer
	Ingestor  *mqtt.Ingestor
	Cleanup   *cleanup
}

type serviceIn struct {
	dig.In

	Background backgroundIn
	Server     *http.Server
	Pprof      *http.Server `name:"pprof_server" optional:"true"`
}

func runService(container *dig.Container) error {
	return container.Invoke(func(in serviceIn) error {
		bg := in.Background
		defer bg.Cleanup.run(bg.Logger)

		tasks := []task{serveTask("http", in.Server, bg.Logger)}
		if in.Pprof != nil {
			tasks = append(tasks, serveTask("pprof", in.Pprof, bg.Logger))
		}
		tasks = append(tasks, backgroundTasks(bg)...)
		bg.Logger.Info("delivery service starting", logx.String("addr", in.Server.Addr))
		return runTasks(bg.Ctx, bg.Logger, tasks)
	})
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(in backgroundIn) error {
		defer in.Cleanup.run(in.Logger)

		tasks := backgroundTasks(in)
		if len(tasks) == 0 {
			return errors.New("worker has nothing to run: enable the scheduler, Kafka or MQTT")
		}
		in.Logger.Info("delivery worker starting", logx.Int("tasks", len(tasks)))
		return runTasks(in.Ctx, in.Logger, tasks)
	})
}

func backgroundTasks(in backgroundIn) []task {
	var tasks []task
	if in.Cfg.Dispatch.SchedulerEnabled {
		tasks = append(tasks, task{name: "scheduler", run: in.Scheduler.Run})
	}
	if in.Consumer != nil {
		tasks = append(tasks, task{name: "orders-consumer", run: in.Consumer.Run})
	}
	if in.Ingestor != nil {
		tasks = append(tasks, task{name: "mqtt-ingestor", run: in.Ingestor.Run})
	}
	return tasks
}

// runTasks runs every task until ctx is done or one of them fails.
// Cancellation is not an error.
func runTasks(ctx context.Context, logger logx.Logger, tasks []task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			err := t.run(gctx)
			if err == nil || errors.Is(err, context.Canceled) {
				logger.Info("stopped", logx.String("task", t.name))
				return nil
			}
			logger.Error("task failed", logx.String("task", t.name), logx.Err(err))
			return err
		})
	}
	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		logger.Info("shutdown requested")
	}
	return err
}

func serveTask(name string, srv *http.Server, logger logx.Logger) task {
	return task{name: name, run: func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", logx.String("server", name), logx.String("addr", srv.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Warn("graceful shutdown error", logx.String("server", name), logx.Err(err))
			_ = srv.Close()
		}
		return ctx.Err()
	}}
}
