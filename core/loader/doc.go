// Package loader provides the plugin-like feature loading system.
//
// Each feature (room, catalog, integrity) implements the Feature interface and
// registers its own routes when loaded.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. Register adds a feature and
// LoadAll loads the enabled ones in registration order.
package loader
