package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bunker/core/middleware/auth"
	"bunker/core/storage/mocks"
	"bunker/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, client *mocks.Client) *fiber.App {
	t.Helper()
	db := newTestDB(t)
	catalogs := catalog.NewService(db, nil, "", "", 0, zap.NewNop())

	var svc *Service
	if client != nil {
		svc = NewService(db, catalogs, client, "bunker", "catalog/catalog.json", zap.NewNop())
	} else {
		svc = NewService(db, catalogs, nil, "bunker", "catalog/catalog.json", zap.NewNop())
	}

	feature := NewFeature(svc, auth.New(auth.Config{ApiKey: "secret"}))
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set(auth.Header, "secret")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandlers(t *testing.T) {
	app := setupTestApp(t, nil)

	t.Run("Requires API Key", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil), 2000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Catalog", func(t *testing.T) {
		status, body := get(t, app, "/integrity/catalog")
		assert.Equal(t, 200, status)
		assert.Equal(t, false, body["matched"])
		assert.Len(t, body["severity_gaps"], 5)
	})

	t.Run("Schema", func(t *testing.T) {
		status, body := get(t, app, "/integrity/schema")
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["matched"])
	})

	t.Run("Storage Disabled", func(t *testing.T) {
		status, body := get(t, app, "/integrity/storage")
		assert.Equal(t, 503, status)
		assert.Equal(t, ErrStorageDisabled.Error(), body["error"])
	})

	t.Run("All", func(t *testing.T) {
		status, body := get(t, app, "/integrity")
		assert.Equal(t, 200, status)
		assert.Contains(t, body, "catalog")
		assert.Contains(t, body, "schema")
	})
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bunker").Return(true, nil)
	client.On("ListObjects", mock.Anything, "bunker", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "bunker", "catalog/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	app := setupTestApp(t, client)

	status, body := get(t, app, "/integrity/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])

	status, body = get(t, app, "/integrity/storage?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])
	client.AssertCalled(t, "PutObject", mock.Anything, "bunker", "catalog/", mock.Anything, int64(0), mock.Anything)
}
