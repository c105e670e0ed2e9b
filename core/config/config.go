package config

import (
	"reflect"
	"strings"
	"time"

	"bunker/core/database"
	"bunker/core/logger"
	"bunker/core/server"
	"bunker/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the catalog object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Catalog holds configuration for content catalogs.
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Game holds configuration for room sessions.
	Game GameConfig `mapstructure:"game"`
}

// CatalogConfig configures catalog caching and import.
type CatalogConfig struct {
	// ObjectName is the catalog document imported by default.
	ObjectName string `mapstructure:"object_name" default:"catalog/catalog.json"`
	// CacheTTL is how long a loaded catalog snapshot is reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"5m"`
}

// GameConfig configures room sessions.
type GameConfig struct {
	// StaleAfter is the idle time after which a room is evicted.
	StaleAfter time.Duration `mapstructure:"stale_after" default:"168h"`
	// CodeAttempts bounds room code generation retries on collision.
	CodeAttempts int `mapstructure:"code_attempts" default:"10"`
	// Seed fixes the content draw random source; 0 picks a random seed.
	Seed uint64 `mapstructure:"seed" default:"0"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. GAME_STALE_AFTER -> game.stale_after)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
