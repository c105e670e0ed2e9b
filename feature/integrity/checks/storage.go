package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"bunker/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders lists the folders that must exist in the bucket.
var RequiredFolders = []string{"catalog"}

// StorageReport describes the catalog bucket.
type StorageReport struct {
	Bucket          string   `json:"bucket"`
	MissingFolders  []string `json:"missing_folders"`
	Document        string   `json:"document"`
	DocumentPresent bool     `json:"document_present"`
}

// CheckStorage reports missing folders and whether the default catalog
// document is present.
func CheckStorage(ctx context.Context, client storage.Client, bucket, document string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &StorageReport{Bucket: bucket, MissingFolders: []string{}, Document: document}

	for _, folder := range RequiredFolders {
		opts := minio.ListObjectsOptions{
			Prefix:    folderPath(folder),
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}
		if !found {
			report.MissingFolders = append(report.MissingFolders, folder)
		}
	}

	opts := minio.ListObjectsOptions{Prefix: document, Recursive: false, MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err == nil && obj.Key == document {
			report.DocumentPresent = true
		}
		break
	}

	return report, nil
}

// FixStorage creates the missing folders.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folderPath(folder), bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}

func folderPath(folder string) string {
	if strings.HasSuffix(folder, "/") {
		return folder
	}
	return folder + "/"
}
