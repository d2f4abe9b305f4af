package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "boycott-evil",
	Short: "Check whether a product's brand belongs to a boycotted company",
	Long:  "Resolves barcodes and free-text names to canonical companies and classifies them against boycotted and recommended company datasets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
