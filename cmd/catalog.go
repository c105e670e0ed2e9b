package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogFile string

// catalogCmd groups catalog administration commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Import, export and inspect content catalogs",
}

// catalogImportCmd represents the catalog import command
var catalogImportCmd = &cobra.Command{
	Use:   "import [object]",
	Short: "Import a catalog document",
	Long: `Upserts traits, cards, shelters and catastrophes from a JSON catalog document.
The document is read from --file when given, otherwise from object storage
(defaulting to catalog.object_name).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if catalogFile != "" {
			data, err := os.ReadFile(catalogFile)
			if err != nil {
				return fmt.Errorf("failed to read catalog file: %w", err)
			}
			report, err := rt.catalogs.ImportDocument(ctx, data)
			if err != nil {
				return err
			}
			rt.logger.Info("Catalog imported", zap.String("file", catalogFile), zap.Any("report", report))
			return nil
		}

		object := ""
		if len(args) == 1 {
			object = args[0]
		}
		report, err := rt.catalogs.ImportObject(ctx, object)
		if err != nil {
			return err
		}
		rt.logger.Info("Catalog imported", zap.Any("report", report))
		return nil
	},
}

// catalogExportCmd represents the catalog export command
var catalogExportCmd = &cobra.Command{
	Use:   "export [object]",
	Short: "Export the catalog as a JSON document",
	Long:  `Writes the current catalog to --file when given, otherwise to object storage.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if catalogFile != "" {
			data, err := rt.catalogs.Export(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(catalogFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write catalog file: %w", err)
			}
			rt.logger.Info("Catalog exported", zap.String("file", catalogFile))
			return nil
		}

		object := ""
		if len(args) == 1 {
			object = args[0]
		}
		return rt.catalogs.ExportObject(ctx, object)
	},
}

// catalogListCmd represents the catalog list command
var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog documents in object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}

		names, err := rt.catalogs.ListDocuments(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

// catalogStatsCmd represents the catalog stats command
var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog entry counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}

		stats, err := rt.catalogs.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("\n=== Catalog ===")
		for category, n := range stats.Traits {
			fmt.Printf("Traits (%s): %d\n", category, n)
		}
		fmt.Printf("Action Cards: %d\n", stats.ActionCards)
		fmt.Printf("Reaction Cards: %d\n", stats.ReactionCards)
		fmt.Printf("Shelters: %d\n", stats.Shelters)
		fmt.Printf("Catastrophes: %d\n", stats.Catastrophes)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd, catalogExportCmd, catalogListCmd, catalogStatsCmd)

	catalogImportCmd.Flags().StringVar(&catalogFile, "file", "", "Read the document from a local file")
	catalogExportCmd.Flags().StringVar(&catalogFile, "file", "", "Write the document to a local file")
}
