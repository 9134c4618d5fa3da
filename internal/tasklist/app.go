// Package tasklist wires configuration, storage backends, and the task store
// into a single App that commands and the TUI consume.
package tasklist

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasklist/internal/core/config"
	"github.com/colonyops/tasklist/internal/core/kv"
	"github.com/colonyops/tasklist/internal/core/logging"
	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/core/theme"
	"github.com/colonyops/tasklist/internal/data/db"
	"github.com/colonyops/tasklist/internal/data/stores"
	"github.com/colonyops/tasklist/internal/store/jsonfile"
)

// App is the central entry point for all task list operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *task.Store
	Themes *theme.Service
	KV     kv.KV
	Config *config.Config

	database *db.DB
}

// Open builds the KV backend selected by cfg, then creates and loads the
// task store. A failed load is logged and the store starts empty; only
// failing to open the backend is returned as an error.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.Component("app")

	store, database, err := openBackend(cfg, log)
	if err != nil {
		return nil, err
	}

	return newApp(ctx, cfg, store, database), nil
}

// NewWithKV builds an App on an existing KV store. Used by tests.
func NewWithKV(ctx context.Context, cfg *config.Config, store kv.KV) *App {
	return newApp(ctx, cfg, store, nil)
}

func newApp(ctx context.Context, cfg *config.Config, store kv.KV, database *db.DB) *App {
	persister := task.NewKVPersister(store, cfg.Keys.Tasks, logging.Component("persister"))
	tasks := task.NewStore(persister, logging.Component("tasks"))
	// Load failures degrade to an empty list; the store logs the cause.
	_ = tasks.Load(ctx)

	return &App{
		Tasks:    tasks,
		Themes:   theme.NewService(store, cfg.Keys.Theme, cfg.Theme.Default, logging.Component("theme")),
		KV:       store,
		Config:   cfg,
		database: database,
	}
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.database != nil {
		return a.database.Close()
	}
	return nil
}

func openBackend(cfg *config.Config, log zerolog.Logger) (kv.KV, *db.DB, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), nil, nil
	case config.BackendFile:
		path := cfg.StorageFile()
		log.Debug().Str("path", path).Msg("using file backend")
		return jsonfile.NewKVFile(path), nil, nil
	case config.BackendSQLite:
		database, backup, err := stores.OpenWithRecovery(cfg.DataDir, db.OpenOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			BusyTimeout:  cfg.Database.BusyTimeout,
		})
		if backup != "" {
			log.Warn().Str("backup", backup).Msg("database was corrupt, moved aside and recreated")
		}
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return stores.NewKVStore(database), database, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
