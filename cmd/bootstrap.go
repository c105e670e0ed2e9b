package cmd

import (
	"fmt"

	"bunker/core/config"
	"bunker/core/database"
	"bunker/core/logger"
	"bunker/core/storage"
	"bunker/feature/catalog"
	"bunker/feature/integrity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the shared dependencies every command builds.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    storage.Client
	catalogs *catalog.Service
}

// bootstrap loads the configuration and connects the database and, when
// enabled, object storage.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, integrity.Models()...); err != nil {
			return nil, err
		}
	}

	var store storage.Client
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		store = client
	} else {
		logg.Info("Object storage disabled, catalog import reads local files only")
	}

	catalogs := catalog.NewService(db, store, cfg.Storage.Bucket, cfg.Catalog.ObjectName, cfg.Catalog.CacheTTL, logg)

	return &runtime{
		cfg:      cfg,
		logger:   logg,
		db:       db,
		store:    store,
		catalogs: catalogs,
	}, nil
}

func (r *runtime) integrity() *integrity.Service {
	return integrity.NewService(r.db, r.catalogs, r.store, r.cfg.Storage.Bucket, r.cfg.Catalog.ObjectName, r.logger)
}
