package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profile-api/internal/app"
	"profile-api/internal/config"
	"profile-api/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	bootstrap, cleanup, err := app.Bootstrap(bootCtx, cfg, log)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to bootstrap app: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	log.Info("server listening", zap.String("addr", addr), zap.String("driver", cfg.Database.Driver))

	select {
	case err := <-errCh:
		// The listener died on its own: drain what is left and fail.
		shutdown(bootstrap, cfg.App.ShutdownTimeout, log)
		if err == nil {
			err = errors.New("listener closed unexpectedly")
		}
		log.Error("server error", zap.Error(err))
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdown(bootstrap, cfg.App.ShutdownTimeout, log)
		return nil
	}
}

func shutdown(a *app.App, timeout time.Duration, log *zap.Logger) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
}
