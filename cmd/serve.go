package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfaustino/boycott-evil/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolution API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		srv := server.New(cfg.Server, cfg.Search, server.Deps{
			Store:   env.Store,
			Library: env.Library,
			Barcode: env.Barcode,
			Name:    env.Name,
			Engine:  env.Engine,
		})
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
