package catalog

import (
	"bunker/core/errs"
	"bunker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog administration.
type Handler struct {
	service *Service
	guard   fiber.Handler
}

// NewHandler creates a new HTTP handler. guard protects every route.
func NewHandler(service *Service, guard fiber.Handler) *Handler {
	if guard == nil {
		guard = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &Handler{service: service, guard: guard}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog", h.guard)
	group.Post("/import", h.HandleImport)
	group.Get("/stats", h.HandleStats)
}

// ImportRequest names the object to import. An empty body imports the default document.
type ImportRequest struct {
	Object string `json:"object"`
}

// HandleImport imports a catalog document from object storage.
// @Summary Import Catalog
// @Description Upsert trait, card, shelter and catastrophe catalogs from a JSON document in object storage.
// @Tags catalog
// @Accept json
// @Produce json
// @Param X-API-Key header string false "Admin API key"
// @Param request body ImportRequest false "Object to import"
// @Success 200 {object} ImportReport "Import report"
// @Failure 400 {object} map[string]string "Invalid catalog document"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ImportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errs.Body(errs.Validation("invalid request body")))
		}
	}

	report, err := h.service.ImportObject(c.Context(), req.Object)
	if err != nil {
		if errs.KindOf(err) == errs.KindValidation {
			l.Warn("Catalog import rejected", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(errs.Body(err))
		}
		l.Error("Catalog import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleStats returns catalog entry counts.
// @Summary Catalog Stats
// @Description Count catalog entries per trait category and per catalog.
// @Tags catalog
// @Produce json
// @Param X-API-Key header string false "Admin API key"
// @Success 200 {object} Stats "Catalog counts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats(c.Context())
	if err != nil {
		l.Error("Catalog stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stats)
}
