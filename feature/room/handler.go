package room

import (
	"fmt"
	"strings"

	"bunker/core/errs"
	"bunker/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 256

// Handler handles HTTP requests for rooms and players.
type Handler struct {
	service   *Service
	publicURL string
}

// NewHandler creates a new HTTP handler. publicURL is the base of the join
// links encoded in QR codes.
func NewHandler(service *Service, publicURL string) *Handler {
	return &Handler{service: service, publicURL: strings.TrimRight(publicURL, "/")}
}

// RegisterRoutes registers the room, player and card routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	rooms := app.Group("/rooms")
	rooms.Post("/", h.HandleCreate)
	rooms.Get("/:code", h.HandleGet)
	rooms.Post("/:code/join", h.HandleJoin)
	rooms.Post("/:code/start", h.HandleStart)
	rooms.Post("/:code/restart", h.HandleRestart)
	rooms.Post("/:code/leave", h.HandleLeave)
	rooms.Patch("/:code/player", h.HandleUpdateNickname)
	rooms.Get("/:code/qr", h.HandleQR)

	players := app.Group("/players")
	players.Post("/by-device", h.HandleFindByDevice)
	players.Get("/:id", h.HandleGetPlayer)
	players.Post("/:id/traits/:traitId/reveal", h.HandleRevealTrait)

	app.Post("/action-cards/:id/use", h.HandleUseActionCard)
	app.Post("/reaction-cards/:id/use", h.HandleUseReactionCard)
}

// DeviceRequest carries the caller's device identifier.
type DeviceRequest struct {
	DeviceID string `json:"device_id"`
}

// NicknameRequest sets the caller's nickname.
type NicknameRequest struct {
	DeviceID string `json:"device_id"`
	Nickname string `json:"nickname"`
}

// reject logs a failed request and writes its rejection body.
func reject(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := errs.Status(errs.KindOf(err))
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(errs.Body(err))
}

func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errs.Validation("invalid request body")
	}
	return nil
}

func paramID(c *fiber.Ctx, key string) (uint, error) {
	id, err := c.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, errs.Validation("invalid %s", key)
	}
	return uint(id), nil
}

// HandleCreate creates a room and draws its content.
// @Summary Create Room
// @Description Create a room with pre-drawn seats, traits, cards, shelter and catastrophe.
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Room parameters"
// @Success 201 {object} models.Room "Created room"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rooms [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CreateRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Room create rejected", err)
	}

	room, err := h.service.Create(c.Context(), req)
	if err != nil {
		return reject(c, l, "Room create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

// HandleGet returns a room.
// @Summary Get Room
// @Tags rooms
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} models.Room "Room"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /rooms/{code} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	room, err := h.service.Get(c.Context(), c.Params("code"))
	if err != nil {
		return reject(c, l, "Room read failed", err)
	}
	return c.JSON(room)
}

// HandleJoin binds the device to a seat.
// @Summary Join Room
// @Description Claim the lowest free seat. Joining again with the same device returns the same seat.
// @Tags rooms
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body DeviceRequest true "Device"
// @Success 200 {object} models.Player "Seat"
// @Failure 400 {object} map[string]string "device_id required"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 409 {object} map[string]string "Room full or device seated elsewhere"
// @Router /rooms/{code}/join [post]
func (h *Handler) HandleJoin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DeviceRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Join rejected", err)
	}

	player, err := h.service.Join(c.Context(), c.Params("code"), req.DeviceID)
	if err != nil {
		return reject(c, l, "Join rejected", err)
	}
	return c.JSON(player)
}

// HandleStart starts the game.
// @Summary Start Game
// @Tags rooms
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body DeviceRequest true "Host device"
// @Success 200 {object} map[string]string "Game started"
// @Failure 403 {object} map[string]string "Not the host"
// @Failure 404 {object} map[string]string "Room or player not found"
// @Router /rooms/{code}/start [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DeviceRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Start rejected", err)
	}

	if err := h.service.Start(c.Context(), c.Params("code"), req.DeviceID); err != nil {
		return reject(c, l, "Start rejected", err)
	}
	return c.JSON(fiber.Map{"detail": "Game started."})
}

// HandleRestart redraws the room keeping seat bindings.
// @Summary Restart Game
// @Tags rooms
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} models.Room "Restarted room"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rooms/{code}/restart [post]
func (h *Handler) HandleRestart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	room, err := h.service.Restart(c.Context(), c.Params("code"))
	if err != nil {
		return reject(c, l, "Restart failed", err)
	}
	return c.JSON(room)
}

// HandleLeave frees the device's seat.
// @Summary Leave Room
// @Tags rooms
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body DeviceRequest true "Device"
// @Success 200 {object} LeaveResult "Left"
// @Failure 404 {object} map[string]string "Room or player not found"
// @Router /rooms/{code}/leave [post]
func (h *Handler) HandleLeave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DeviceRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Leave rejected", err)
	}

	result, err := h.service.Leave(c.Context(), c.Params("code"), req.DeviceID)
	if err != nil {
		return reject(c, l, "Leave rejected", err)
	}
	return c.JSON(result)
}

// HandleUpdateNickname sets the caller's nickname.
// @Summary Update Nickname
// @Tags players
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body NicknameRequest true "Nickname"
// @Success 200 {object} models.Player "Player"
// @Failure 400 {object} map[string]string "Invalid nickname"
// @Failure 404 {object} map[string]string "Room or player not found"
// @Router /rooms/{code}/player [patch]
func (h *Handler) HandleUpdateNickname(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req NicknameRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Nickname rejected", err)
	}

	player, err := h.service.UpdateNickname(c.Context(), c.Params("code"), req.DeviceID, req.Nickname)
	if err != nil {
		return reject(c, l, "Nickname rejected", err)
	}
	return c.JSON(player)
}

// HandleQR renders a QR code of the room's join link.
// @Summary Room QR Code
// @Tags rooms
// @Produce png
// @Param code path string true "Room code"
// @Success 200 {file} binary "PNG image"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /rooms/{code}/qr [get]
func (h *Handler) HandleQR(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	code := NormalizeCode(c.Params("code"))

	ok, err := h.service.Exists(c.Context(), code)
	if err != nil {
		return reject(c, l, "QR lookup failed", err)
	}
	if !ok {
		return reject(c, l, "QR lookup failed", errs.NotFound("room %s not found", code))
	}

	png, err := qrcode.Encode(h.JoinURL(code), qrcode.Medium, qrSize)
	if err != nil {
		return reject(c, l, "QR encoding failed", err)
	}

	c.Type("png")
	return c.Send(png)
}

// JoinURL is the link players open to join a room.
func (h *Handler) JoinURL(code string) string {
	return fmt.Sprintf("%s/join/%s", h.publicURL, code)
}

// HandleGetPlayer returns a player.
// @Summary Get Player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player "Player"
// @Failure 404 {object} map[string]string "Player not found"
// @Router /players/{id} [get]
func (h *Handler) HandleGetPlayer(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := paramID(c, "id")
	if err != nil {
		return reject(c, l, "Player read rejected", err)
	}

	player, err := h.service.GetPlayer(c.Context(), id)
	if err != nil {
		return reject(c, l, "Player read failed", err)
	}
	return c.JSON(player)
}

// HandleRevealTrait reveals one of the caller's traits.
// @Summary Reveal Trait
// @Description Reveal a trait. Revealing an already revealed trait succeeds with a notice.
// @Tags players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param traitId path int true "Trait ID"
// @Param request body DeviceRequest true "Owner device"
// @Success 200 {object} RevealResult "Revealed"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Player or trait not found"
// @Router /players/{id}/traits/{traitId}/reveal [post]
func (h *Handler) HandleRevealTrait(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	playerID, err := paramID(c, "id")
	if err != nil {
		return reject(c, l, "Reveal rejected", err)
	}
	traitID, err := paramID(c, "traitId")
	if err != nil {
		return reject(c, l, "Reveal rejected", err)
	}
	var req DeviceRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Reveal rejected", err)
	}

	result, err := h.service.RevealTrait(c.Context(), playerID, traitID, req.DeviceID)
	if err != nil {
		return reject(c, l, "Reveal rejected", err)
	}
	if result.AlreadyRevealed {
		return c.JSON(fiber.Map{
			"detail":           "Trait already revealed",
			"trait_id":         result.TraitID,
			"is_revealed":      true,
			"already_revealed": true,
		})
	}
	return c.JSON(result)
}

// HandleFindByDevice returns the playing room a device is seated in.
// @Summary Find Room By Device
// @Tags players
// @Accept json
// @Produce json
// @Param request body DeviceRequest true "Device"
// @Success 200 {object} map[string]string "Room code or null"
// @Router /players/by-device [post]
func (h *Handler) HandleFindByDevice(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DeviceRequest
	if err := parseBody(c, &req); err != nil {
		return reject(c, l, "Device lookup rejected", err)
	}

	code, err := h.service.FindRoomByDevice(c.Context(), req.DeviceID)
	if err != nil {
		return reject(c, l, "Device lookup failed", err)
	}
	return c.JSON(fiber.Map{"room": code})
}

// HandleUseActionCard consumes an action card.
// @Summary Use Action Card
// @Tags cards
// @Produce json
// @Param id path int true "Assigned action card ID"
// @Success 200 {object} map[string]string "ok"
// @Failure 400 {object} map[string]string "Card already used"
// @Failure 404 {object} map[string]string "Card not found"
// @Router /action-cards/{id}/use [post]
func (h *Handler) HandleUseActionCard(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := paramID(c, "id")
	if err != nil {
		return reject(c, l, "Action card rejected", err)
	}
	if err := h.service.UseActionCard(c.Context(), id); err != nil {
		return reject(c, l, "Action card rejected", err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleUseReactionCard consumes a reaction card.
// @Summary Use Reaction Card
// @Tags cards
// @Produce json
// @Param id path int true "Assigned reaction card ID"
// @Success 200 {object} map[string]string "ok"
// @Failure 400 {object} map[string]string "Card already used"
// @Failure 404 {object} map[string]string "Card not found"
// @Router /reaction-cards/{id}/use [post]
func (h *Handler) HandleUseReactionCard(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := paramID(c, "id")
	if err != nil {
		return reject(c, l, "Reaction card rejected", err)
	}
	if err := h.service.UseReactionCard(c.Context(), id); err != nil {
		return reject(c, l, "Reaction card rejected", err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
