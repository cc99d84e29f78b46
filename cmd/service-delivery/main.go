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

	container := app.MustBuildContainer(ctx)
	app.NewRunner().MustRun(container)
}
