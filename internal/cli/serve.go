package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagmatch/internal/api"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes validate, order, match and transform over HTTP with JSON
request and response bodies. The server stops gracefully on SIGINT or
SIGTERM.

Endpoints:
  GET  /health
  POST /validate
  POST /order?mode=topo|bfs|dfs&start=a,b
  POST /match                 {"pattern": ..., "target": ...}
  POST /transform?break_cycles=true&reduce=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			start := time.Now()
			if err := api.New(runner, c.Logger, cfg).ListenAndServe(ctx); err != nil {
				return err
			}
			logSince(c.Logger, start, "Server stopped", "addr", cfg.Addr)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}
