package cmd

import (
	"fmt"

	"bunker/core/config"
	"bunker/core/database"
	"bunker/core/logger"
	"bunker/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		tables := integrity.Models()
		if err := database.Migrate(db, tables...); err != nil {
			return err
		}

		logg.Info("Schema migrated", zap.Int("tables", len(tables)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
