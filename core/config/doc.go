// Package config provides configuration management for the bunker server.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field in `default` struct
// tags and are registered by reflection, so every key can be overridden from
// the environment (SECTION_KEY, e.g. GAME_STALE_AFTER=72h).
//
// # Configuration Structure
//
//   - Server: HTTP port, admin API key, public URL
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the catalog bucket
//   - Log: logging level and format
//   - Catalog: default catalog object and snapshot cache TTL
//   - Game: stale room window, room code retries, draw seed
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
