package checks

import (
	"context"
	"errors"
	"testing"

	"bunker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func prefix(p string) any {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == p })
}

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("All Present", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(true, nil)
		client.On("ListObjects", ctx, "bucket", prefix("catalog/")).Return(objects(minio.ObjectInfo{Key: "catalog/"}))
		client.On("ListObjects", ctx, "bucket", prefix("catalog/catalog.json")).Return(objects(minio.ObjectInfo{Key: "catalog/catalog.json"}))

		report, err := CheckStorage(ctx, client, "bucket", "catalog/catalog.json")
		require.NoError(t, err)
		assert.Empty(t, report.MissingFolders)
		assert.True(t, report.DocumentPresent)
		client.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(true, nil)
		client.On("ListObjects", ctx, "bucket", mock.Anything).Return(objects())

		report, err := CheckStorage(ctx, client, "bucket", "catalog/catalog.json")
		require.NoError(t, err)
		assert.Equal(t, []string{"catalog"}, report.MissingFolders)
		assert.False(t, report.DocumentPresent)
	})

	t.Run("Prefix Match Is Not The Document", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(true, nil)
		client.On("ListObjects", ctx, "bucket", prefix("catalog/")).Return(objects(minio.ObjectInfo{Key: "catalog/"}))
		client.On("ListObjects", ctx, "bucket", prefix("catalog/catalog.json")).Return(objects(minio.ObjectInfo{Key: "catalog/catalog.json.bak"}))

		report, err := CheckStorage(ctx, client, "bucket", "catalog/catalog.json")
		require.NoError(t, err)
		assert.False(t, report.DocumentPresent)
	})

	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(false, nil)

		_, err := CheckStorage(ctx, client, "bucket", "catalog/catalog.json")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(false, errors.New("connection refused"))

		_, err := CheckStorage(ctx, client, "bucket", "catalog/catalog.json")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestFixStorage(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("Creates Placeholders", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "bucket", "catalog/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		require.NoError(t, FixStorage(ctx, client, "bucket", logger, []string{"catalog"}))
		client.AssertExpectations(t)
	})

	t.Run("Put Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "bucket", "catalog/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, errors.New("denied"))

		assert.Error(t, FixStorage(ctx, client, "bucket", logger, []string{"catalog"}))
	})
}
