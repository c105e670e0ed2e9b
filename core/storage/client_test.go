package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"bunker/core/storage"
	"bunker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "bunker",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bunker").Return(false, nil)

		_, err := storage.ReadObject(ctx, client, "bunker", "catalog/catalog.json")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Reads Content", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bunker").Return(true, nil)
		client.On("GetObject", mock.Anything, "bunker", "catalog/catalog.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`{"traits":[]}`))), nil)

		data, err := storage.ReadObject(ctx, client, "bunker", "catalog/catalog.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"traits":[]}`, string(data))
	})
}

func TestWriteObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bunker").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "bunker", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "bunker", "catalog/out.json", mock.Anything, int64(2), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := storage.WriteObject(context.Background(), client, "bunker", "catalog/out.json", "application/json", []byte("{}"))
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestListObjectNames(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "catalog/"}
	ch <- minio.ObjectInfo{Key: "catalog/v1.json"}
	ch <- minio.ObjectInfo{Key: "catalog/v2.json"}
	close(ch)
	client.On("ListObjects", mock.Anything, "bunker", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	names, err := storage.ListObjectNames(context.Background(), client, "bunker", "catalog/")
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog/v1.json", "catalog/v2.json"}, names)
}
