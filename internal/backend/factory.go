package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"habits/internal/amqp"
	"habits/internal/storage"
	"habits/internal/storage/file"
	"habits/internal/storage/memory"
	"habits/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend opens the configured store, seeds templates when the store is
// empty and connects the optional AMQP client.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := f.openStore(config)
	if err != nil {
		return nil, err
	}

	if err := storage.SeedDefaultsIfEmpty(ctx, store, config.DefaultsSeedFile); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	events := f.connectEvents(config)

	return &BackendResult{
		Store:  store,
		Events: events,
		Cleanup: func() error {
			var errs []error
			if events != nil {
				errs = append(errs, events.Close())
			}
			errs = append(errs, store.Close())
			return errors.Join(errs...)
		},
	}, nil
}

func (f *DefaultFactory) openStore(config Config) (storage.Store, error) {
	switch config.Type {
	case FileBackend:
		store, err := file.Open(config.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		f.logger.Info("Initialized file backend", "data_directory", config.DataDirectory)
		return store, nil

	case SQLiteBackend:
		repo, err := sqlite.NewRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return repo, nil

	case MemoryBackend:
		var store *memory.Store
		if config.DataDirectory != "" {
			store = memory.NewFromFiles(config.DataDirectory)
		} else {
			store = memory.New()
		}
		f.logger.Info("Initialized memory backend", "data_directory", config.DataDirectory)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// connectEvents returns nil when AMQP is not configured or the broker cannot
// be reached; writes then proceed without events.
func (f *DefaultFactory) connectEvents(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
