package room

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the room feature around an existing service.
func NewFeature(svc *Service, publicURL string) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc, publicURL)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "room"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
