package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog and dataset counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		count, err := env.Store.Count(ctx)
		if err != nil {
			return err
		}
		boycotted, recommended, aliases := env.Library.Counts()

		cmd.Printf("products:    %d\n", count)
		cmd.Printf("boycotted:   %d\n", boycotted)
		cmd.Printf("recommended: %d\n", recommended)
		cmd.Printf("aliases:     %d\n", aliases)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
