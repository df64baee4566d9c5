package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"habits/internal/backend"
	"habits/internal/cli"
	apphttp "habits/internal/http"
	"habits/internal/log"
	"habits/internal/services"
)

func main() {
	cfg, logger := cli.LoadConfig(log.ComponentApp)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	// A nil *amqp.Client must not become a non-nil interface.
	var publisher services.EventPublisher
	if res.Events != nil {
		publisher = res.Events
	}

	svc := services.NewHabitService(res.Store, publisher, services.ServiceConfig{
		Clock:                time.Now,
		RecommendConcurrency: cfg.RecommendConcurrency,
	})

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	}()

	logger.Info("Starting habits server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"events_enabled", publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		cancel()
		return
	}

	logger.Info("Server stopped gracefully")
}
