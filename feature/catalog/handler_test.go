package catalog_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bunker/core/middleware/auth"
	"bunker/core/storage/mocks"
	"bunker/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogHandler(t *testing.T) {
	db := newTestDB(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bunker").Return(true, nil)
	client.On("GetObject", mock.Anything, "bunker", "catalog/catalog.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(validDocument))), nil)
	client.On("GetObject", mock.Anything, "bunker", "catalog/broken.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"shelters":[{"size":9,"difficulty":1,"description":"x"}]}`)), nil)

	svc := catalog.NewService(db, client, "bunker", "catalog/catalog.json", time.Hour, zap.NewNop())
	feature := catalog.NewFeature(svc, auth.New(auth.Config{ApiKey: "secret"}))
	assert.Equal(t, "catalog", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	t.Run("Rejects missing API key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalog/stats", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Imports default document", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/catalog/import", nil)
		req.Header.Set(auth.Header, "secret")
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var report catalog.ImportReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 2, report.Traits.Created)
	})

	t.Run("Rejects invalid document", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/catalog/import", strings.NewReader(`{"object":"catalog/broken.json"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(auth.Header, "secret")
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "bad_request", body["kind"])
	})

	t.Run("Stats", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalog/stats", nil)
		req.Header.Set(auth.Header, "secret")
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var stats catalog.Stats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, 1, stats.ActionCards)
		assert.Equal(t, 1, stats.Traits["profession"])
	})
}
