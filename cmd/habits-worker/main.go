package main

import (
	"context"
	"errors"
	"os"
	"time"

	"habits/internal/amqp"
	"habits/internal/backend"
	"habits/internal/cli"
	"habits/internal/log"
	gsheet "habits/internal/sheets/google"
	"habits/internal/worker"
)

func main() {
	cfg, logger := cli.LoadConfig(log.ComponentWorker)
	logger.Info("Starting habits-worker")

	if err := cfg.ValidateWorker(); err != nil {
		logger.Error("Worker configuration invalid", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	// The worker reads months only; events come from its own consumer client.
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	backendCfg.AMQPURL = ""
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer res.Cleanup()

	sheetsClient, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(res.Store, sheetsClient, 2)

	// Startup catch-up and periodic re-export of every stored month
	scheduler := worker.NewScheduler(exportWorker, cfg.ExportInterval)
	if err := scheduler.Start(ctx); err != nil {
		logger.Error("Failed to start export scheduler", log.FieldError, err)
		os.Exit(1)
	}

	go func() {
		if err := amqpClient.ConsumeMonthSaved(ctx, exportWorker.HandleMonthSaved); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", log.FieldError, err)
			}
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down worker...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("Export scheduler did not stop cleanly", log.FieldError, err)
	}
	logger.Info("Worker shutdown complete")
}
