// Package main starts the CargoMate delivery management HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kedarbajaj/CargoMate-sub000/internal/config"
	"github.com/kedarbajaj/CargoMate-sub000/internal/db"
	"github.com/kedarbajaj/CargoMate-sub000/internal/httpapi"
	"github.com/kedarbajaj/CargoMate-sub000/internal/lifecycle"
	"github.com/kedarbajaj/CargoMate-sub000/repository"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}
	sugar.Infow("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.DatabasePath)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer func() {
		if err := d.Close(); err != nil {
			sugar.Errorw("close db", "error", err.Error())
		}
	}()

	users := repository.NewUserRepository(d)
	vendors := repository.NewVendorRepository(d)
	deliveries := repository.NewDeliveryRepository(d)
	tracking := repository.NewTrackingRepository(d)
	notifications := repository.NewNotificationRepository(d)
	payments := repository.NewPaymentRepository(d)

	emitter := lifecycle.NewEmitter(notifications, users, vendors)
	svc := lifecycle.NewService(deliveries, tracking, notifications, vendors, payments, emitter, logger)

	h := httpapi.NewHandler(svc, logger)
	r := h.SetupRouter(cfg.JWTSecret)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting cargomate server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
