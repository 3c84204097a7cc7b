package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZertGraf/team-feedback/internal/bootstrap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "team-feedback: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// cancelled on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New()
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	app.Logger.Info("starting team-feedback service",
		"environment", app.Config.Environment,
		"storage_driver", app.Config.StorageDriver,
		"log_level", app.Config.LogLevel)

	if err = app.Init(ctx); err != nil {
		app.Logger.Error("failed to initialize application", "error", err)
		shutdown(app)
		return err
	}

	<-ctx.Done()
	app.Logger.Info("received shutdown signal, initiating graceful shutdown")

	if err = shutdown(app); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	app.Logger.Info("service stopped gracefully")
	return nil
}

func shutdown(app *bootstrap.Application) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return app.Shutdown(ctx)
}
