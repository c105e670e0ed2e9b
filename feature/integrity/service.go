package integrity

import (
	"context"
	"errors"

	"bunker/core/storage"
	"bunker/feature/catalog"
	catalogmodels "bunker/feature/catalog/models"
	"bunker/feature/integrity/checks"
	roommodels "bunker/feature/room/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Catalog supplies the catalog snapshot to check.
type Catalog interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// Service handles integrity checks.
type Service struct {
	db       *gorm.DB
	catalogs Catalog
	client   storage.Client
	bucket   string
	document string
	logger   *zap.Logger
}

// NewService creates a new integrity service. client may be nil.
func NewService(db *gorm.DB, catalogs Catalog, client storage.Client, bucket, document string, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		catalogs: catalogs,
		client:   client,
		bucket:   bucket,
		document: document,
		logger:   logger,
	}
}

// Models returns every table the server owns.
func Models() []any {
	return append(catalogmodels.All(), roommodels.All()...)
}

// CheckCatalog reports the room parameters the current catalog cannot serve.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	snap, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckCatalog(snap), nil
}

// CheckSchema compares the live tables to the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, Models()...)
}

// CheckStorage checks the catalog bucket layout.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.document)
}

// FixStorage creates the missing folders.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger, missing)
}

// Report is the combined result of every check. A failed check carries its
// error instead of a result.
type Report struct {
	Catalog      *checks.CatalogReport `json:"catalog,omitempty"`
	CatalogError string                `json:"catalog_error,omitempty"`
	Schema       *checks.SchemaReport  `json:"schema,omitempty"`
	SchemaError  string                `json:"schema_error,omitempty"`
	Storage      *checks.StorageReport `json:"storage,omitempty"`
	StorageError string                `json:"storage_error,omitempty"`
}

// Healthy reports whether every check ran and passed.
func (r *Report) Healthy() bool {
	if r.Catalog == nil || !r.Catalog.Matched {
		return false
	}
	if r.Schema == nil || !r.Schema.Matched {
		return false
	}
	// Storage is optional; a disabled store is not a failure.
	if r.StorageError != "" && r.StorageError != ErrStorageDisabled.Error() {
		return false
	}
	return r.Storage == nil || len(r.Storage.MissingFolders) == 0
}

// RunAll runs every check.
func (s *Service) RunAll(ctx context.Context) *Report {
	report := &Report{}

	if cat, err := s.CheckCatalog(ctx); err != nil {
		s.logger.Error("Catalog check failed", zap.Error(err))
		report.CatalogError = err.Error()
	} else {
		report.Catalog = cat
	}

	if schema, err := s.CheckSchema(); err != nil {
		s.logger.Error("Schema check failed", zap.Error(err))
		report.SchemaError = err.Error()
	} else {
		report.Schema = schema
	}

	if st, err := s.CheckStorage(ctx); err != nil {
		if !errors.Is(err, ErrStorageDisabled) {
			s.logger.Error("Storage check failed", zap.Error(err))
		}
		report.StorageError = err.Error()
	} else {
		report.Storage = st
	}

	return report
}
