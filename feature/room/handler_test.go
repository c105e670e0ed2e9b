package room

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	feature := NewFeature(svc, "https://bunker.example/")
	assert.Equal(t, "room", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestRoomHandlers(t *testing.T) {
	app, svc := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/rooms", CreateRequest{PlayersCount: 4, Difficulty: 3, Balance: 3, Severity: 2})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	code := body["code"].(string)
	assert.Len(t, body["players"], 4)
	assert.NotNil(t, body["shelter"])
	assert.NotNil(t, body["room_catastrophe"])

	t.Run("Create rejects bad parameters", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/rooms", CreateRequest{PlayersCount: 3, Difficulty: 3, Balance: 3, Severity: 2})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "bad_request", body["kind"])
		assert.NotEmpty(t, body["detail"])
	})

	t.Run("Get", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/rooms/"+code, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, code, body["code"])

		resp, body = doJSON(t, app, "GET", "/rooms/NOPE00", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "not_found", body["kind"])
	})

	var hostID float64
	t.Run("Join", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/rooms/"+code+"/join", DeviceRequest{DeviceID: "host"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["seat"])
		assert.Equal(t, true, body["is_host"])
		assert.NotEmpty(t, body["player_traits"])
		hostID = body["id"].(float64)

		resp, _ = doJSON(t, app, "POST", "/rooms/"+code+"/join", DeviceRequest{DeviceID: "guest"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, body = doJSON(t, app, "POST", "/rooms/"+code+"/join", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "bad_request", body["kind"])
	})

	t.Run("Join conflict names the other room", func(t *testing.T) {
		other := createRoom(t, svc, 4)
		resp, body := doJSON(t, app, "POST", "/rooms/"+other.Code+"/join", DeviceRequest{DeviceID: "host"})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "conflict", body["kind"])
		assert.Equal(t, code, body["room_code"])
	})

	t.Run("Start", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/rooms/"+code+"/start", DeviceRequest{DeviceID: "guest"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "forbidden", body["kind"])

		resp, _ = doJSON(t, app, "POST", "/rooms/"+code+"/start", DeviceRequest{DeviceID: "host"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, body = doJSON(t, app, "POST", "/players/by-device", DeviceRequest{DeviceID: "guest"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, code, body["room"])

		resp, body = doJSON(t, app, "POST", "/players/by-device", DeviceRequest{DeviceID: "nobody"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, body["room"])
	})

	t.Run("Nickname", func(t *testing.T) {
		resp, body := doJSON(t, app, "PATCH", "/rooms/"+code+"/player", NicknameRequest{DeviceID: "host", Nickname: "Boss"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Boss", body["nickname"])
	})

	t.Run("Reveal", func(t *testing.T) {
		player, err := svc.GetPlayer(t.Context(), uint(hostID))
		require.NoError(t, err)
		path := fmt.Sprintf("/players/%d/traits/%d/reveal", player.ID, player.Traits[0].ID)

		resp, body := doJSON(t, app, "POST", path, DeviceRequest{DeviceID: "guest"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		resp, body = doJSON(t, app, "POST", path, DeviceRequest{DeviceID: "host"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["is_revealed"])
		assert.Nil(t, body["already_revealed"])

		resp, body = doJSON(t, app, "POST", path, DeviceRequest{DeviceID: "host"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Trait already revealed", body["detail"])

		resp, _ = doJSON(t, app, "POST", "/players/abc/traits/1/reveal", DeviceRequest{DeviceID: "host"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Cards", func(t *testing.T) {
		player, err := svc.GetPlayer(t.Context(), uint(hostID))
		require.NoError(t, err)

		path := fmt.Sprintf("/action-cards/%d/use", player.ActionCard.ID)
		resp, body := doJSON(t, app, "POST", path, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", body["status"])

		resp, body = doJSON(t, app, "POST", path, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "already_in_effect", body["kind"])

		resp, _ = doJSON(t, app, "POST", "/reaction-cards/99999/use", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Get player", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", fmt.Sprintf("/players/%d", uint(hostID)), nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "host", body["device_id"])

		resp, _ = doJSON(t, app, "GET", "/players/0", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("QR", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/rooms/"+code+"/qr", nil)
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		png, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

		resp, _ = doJSON(t, app, "GET", "/rooms/NOPE00/qr", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Restart", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/rooms/"+code+"/restart", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["is_playing"])

		room, err := svc.Get(t.Context(), code)
		require.NoError(t, err)
		assert.True(t, room.Players[0].BoundTo("host"))
		assert.True(t, room.Players[1].BoundTo("guest"))
	})

	t.Run("Leave", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/rooms/"+code+"/leave", DeviceRequest{DeviceID: "guest"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["room_deleted"])

		resp, body = doJSON(t, app, "POST", "/rooms/"+code+"/leave", DeviceRequest{DeviceID: "host"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["room_deleted"])

		_, err := svc.Get(t.Context(), code)
		assert.Error(t, err)
	})
}

func TestJoinURL(t *testing.T) {
	h := NewHandler(nil, "https://bunker.example/")
	assert.Equal(t, "https://bunker.example/join/ABC234", h.JoinURL("ABC234"))
}
