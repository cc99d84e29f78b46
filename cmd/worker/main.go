// Command worker runs the order consumer, the dispatch scheduler and
// MQTT telemetry ingestion without the HTTP API.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/thakshilaCodes/Feedo/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	container := app.MustBuildWorkerContainer(ctx)
	app.NewWorkerRunner().MustRun(container)
}
