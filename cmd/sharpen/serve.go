package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagnosis API over HTTP",
		Long: `Starts an HTTP server with:

  POST /api/diagnose   diagnose a prompt and suggest questions
  POST /api/tokens     count tokens in a text
  POST /api/refine     rewrite a prompt with answers
  GET  /api/providers  list LLM providers and whether they're configured
  GET  /api/styles     list rewriting styles
  GET  /health
  GET  /metrics        Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			if addr == "" {
				addr = e.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{
				Config:     e.cfg,
				Counter:    e.counter,
				NewRefiner: e.newRefiner,
				Styles:     e.styles,
				Logger:     e.logger,
			})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, "+config.DefaultAddr+")")

	return cmd
}
