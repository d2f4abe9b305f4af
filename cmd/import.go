package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/importer"
)

var importTabs bool

var importCmd = &cobra.Command{
	Use:   "import <export file>",
	Short: "Bulk-import an Open Food Facts export into the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		store, err := initStoreOnly(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		f, err := os.Open(path)
		if err != nil {
			return eris.Wrapf(err, "open export %s", path)
		}
		defer f.Close()

		delimiter := ','
		if importTabs || strings.EqualFold(filepath.Ext(path), ".tsv") {
			delimiter = '\t'
		}

		imported, err := importer.ImportCatalog(ctx, store, f, importer.CatalogOptions{
			Delimiter: delimiter,
			BatchSize: cfg.Import.BatchSize,
		})
		if err != nil {
			return err
		}

		zap.L().Info("import finished", zap.String("file", path), zap.Int("imported", imported))
		cmd.Printf("imported %d products from %s\n", imported, path)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importTabs, "tabs", false, "treat the export as tab-delimited")
	rootCmd.AddCommand(importCmd)
}
