package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required for catalog and integrity routes.
	ApiKey string `mapstructure:"api_key" default:""`
	// PublicURL is the externally reachable base URL used in join links.
	PublicURL string `mapstructure:"public_url" default:""`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// AdminProtected reports whether admin routes require an API key.
func (c Config) AdminProtected() bool {
	return c.ApiKey != ""
}
