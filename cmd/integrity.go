package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool
var jsonFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that the catalog, schema and storage can serve room draws",
	Long: `Runs every integrity check. A catalog gap means some room parameters
would fail to draw with ContentUnavailable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		logg := rt.logger
		svc := rt.integrity()
		ctx := cmd.Context()
		startTime := time.Now()

		report := svc.RunAll(ctx)

		if report.Catalog != nil {
			if report.Catalog.Matched {
				logg.Info("Catalog covers every room configuration.")
			}
			for _, gap := range report.Catalog.ShelterGaps {
				logg.Warn("No shelter", zap.Int("size", gap.Size), zap.Int("difficulty", gap.Difficulty))
			}
			if len(report.Catalog.SeverityGaps) > 0 {
				logg.Warn("No catastrophe", zap.Ints("severities", report.Catalog.SeverityGaps))
			}
			for _, w := range report.Catalog.Warnings {
				logg.Warn("Catalog warning", zap.String("warning", w))
			}
		}

		if report.Schema != nil {
			if report.Schema.Matched {
				logg.Info("Schema matches the models.")
			}
			for table, tbl := range report.Schema.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Schema.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}

		if report.Storage != nil {
			missing := report.Storage.MissingFolders
			if len(missing) == 0 {
				logg.Info("Storage structure is intact.")
			} else if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStorage(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix storage: %w", err)
				}
				logg.Info("Storage fixed successfully.")
			} else {
				logg.Warn("Missing folders detected", zap.Strings("missing", missing))
				logg.Info("Run with --fix to create missing folders.")
			}
			if !report.Storage.DocumentPresent {
				logg.Warn("Default catalog document not found", zap.String("document", report.Storage.Document))
			}
		}

		for name, msg := range map[string]string{"catalog": report.CatalogError, "schema": report.SchemaError, "storage": report.StorageError} {
			if msg != "" {
				logg.Warn("Check did not run", zap.String("check", name), zap.String("reason", msg))
			}
		}

		if jsonFlag {
			filename := fmt.Sprintf("integrity_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		logg.Info("Integrity check completed",
			zap.Bool("healthy", report.Healthy()),
			zap.Duration("execution_time", time.Since(startTime)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)

	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing storage folders")
	integrityCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save the full report as JSON")
}
