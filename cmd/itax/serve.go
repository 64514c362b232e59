package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itax/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var maxBody int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Long: `Serve every calculator as a JSON endpoint under /api, plus /healthz.

The listen address comes from --addr, server.address in the settings file or
ITAX_SERVER_ADDRESS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := server.NewHandler(a.logger, maxBody, version)
			return server.Run(ctx, a.settings.Server.Address, h, a.logger)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodySize, "largest accepted request body in bytes")
	_ = a.v.BindPFlag("server.address", cmd.Flags().Lookup("addr"))
	return cmd
}
