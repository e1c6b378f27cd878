package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mishagordeev/workouts/internal/config"
	"github.com/mishagordeev/workouts/internal/db"
	"github.com/mishagordeev/workouts/internal/middleware"
	"github.com/mishagordeev/workouts/internal/repository"
	"github.com/mishagordeev/workouts/internal/service"
	"github.com/mishagordeev/workouts/internal/storage"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB // nil unless the sql store is used
	Store        storage.Store
	Metrics      *middleware.Metrics
	EntryService *service.EntryService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var (
		store    storage.Store
		database *sqlx.DB
		err      error
	)

	switch cfg.StoreDriver {
	case config.StoreDriverSQL:
		database, err = db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		store = storage.NewSQLStore(database)

	case config.StoreDriverS3:
		store, err = storage.NewS3Store(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}

	case config.StoreDriverMemory:
		store = storage.NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	a := NewWithStore(cfg, store)
	a.DB = database
	return a, nil
}

// NewWithStore wires the services around an already constructed store
func NewWithStore(cfg *config.Config, store storage.Store) *App {
	entryRepository := repository.NewEntryRepository(store)

	return &App{
		Cfg:          cfg,
		Store:        store,
		Metrics:      middleware.NewMetrics(),
		EntryService: service.NewEntryService(entryRepository),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
