package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bunker/core/errs"
	"bunker/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	documentPrefix = "catalog/"
	maxProblems    = 5
)

// Service reads catalogs and moves catalog documents in and out of object storage.
type Service struct {
	db         *gorm.DB
	client     storage.Client
	bucket     string
	objectName string
	cache      *Cache
	logger     *zap.Logger
}

// NewService creates a catalog service. client may be nil when object
// storage is not configured; imports from raw documents still work.
func NewService(db *gorm.DB, client storage.Client, bucket, objectName string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		client:     client,
		bucket:     bucket,
		objectName: objectName,
		cache:      NewCache(db, ttl),
		logger:     logger,
	}
}

// Snapshot returns the current catalog snapshot.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.cache.Get(ctx)
}

// Stats counts the current catalogs.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return Stats{}, err
	}
	return snap.Stats(), nil
}

// ImportDocument validates and imports a raw catalog document.
func (s *Service) ImportDocument(ctx context.Context, data []byte) (*ImportReport, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, errs.Validation("%v", err)
	}

	entries, problems := doc.Entries()
	if len(problems) > 0 {
		return nil, errs.Validation("%d invalid catalog entries: %s", len(problems), summarize(problems))
	}

	report, err := Import(ctx, s.db, entries)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	s.logger.Info("Catalog imported",
		zap.Int("traits_created", report.Traits.Created),
		zap.Int("traits_updated", report.Traits.Updated),
		zap.Int("shelters_created", report.Shelters.Created),
		zap.Int("catastrophes_created", report.Catastrophes.Created),
	)
	return report, nil
}

// ImportObject imports a catalog document from object storage. An empty
// name imports the configured default document.
func (s *Service) ImportObject(ctx context.Context, objectName string) (*ImportReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	if objectName == "" {
		objectName = s.objectName
	}

	data, err := storage.ReadObject(ctx, s.client, s.bucket, objectName)
	if err != nil {
		return nil, err
	}
	return s.ImportDocument(ctx, data)
}

// ExportObject writes the current catalogs to object storage.
func (s *Service) ExportObject(ctx context.Context, objectName string) error {
	if s.client == nil {
		return fmt.Errorf("object storage is not configured")
	}
	if objectName == "" {
		objectName = s.objectName
	}

	data, err := s.Export(ctx)
	if err != nil {
		return err
	}
	if err := storage.WriteObject(ctx, s.client, s.bucket, objectName, "application/json", data); err != nil {
		return err
	}

	s.logger.Info("Catalog exported", zap.String("object", objectName), zap.Int("bytes", len(data)))
	return nil
}

// Export renders the current catalogs as an indented document.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	snap, err := LoadSnapshot(ctx, s.db)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(DocumentFromSnapshot(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog document: %w", err)
	}
	return data, nil
}

// ListDocuments lists catalog documents in object storage.
func (s *Service) ListDocuments(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return storage.ListObjectNames(ctx, s.client, s.bucket, documentPrefix)
}

func summarize(problems []Problem) string {
	parts := make([]string, 0, maxProblems)
	for i, p := range problems {
		if i == maxProblems {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "; ")
}
