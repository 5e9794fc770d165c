package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wallcheck/pkg/cache"
	"github.com/matzehuels/wallcheck/pkg/pipeline"
	"github.com/matzehuels/wallcheck/pkg/server"
)

// serverKeyPrefix keeps server cache entries apart from CLI entries in a
// shared backend.
const serverKeyPrefix = "server:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Serve runs the HTTP API until interrupted:

  GET  /healthz
  POST /v1/analyze        body: exchange string or {"blueprint": "..."}
  GET  /v1/reports
  GET  /v1/reports/{id}

Cache and store backends come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			catalog, err := cfg.Catalog()
			if err != nil {
				return err
			}

			runner, err := c.newServerRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(server.Config{
				Runner:     runner,
				Catalog:    catalog,
				Logger:     c.Logger,
				Order:      cfg.Analysis.Order,
				Directions: cfg.Analysis.DirectionEncoding,
				MaxArea:    cfg.Analysis.MaxArea,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")

	return cmd
}

// newServerRunner is newRunner with cache keys scoped to the server.
func (c *CLI) newServerRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, serverKeyPrefix)
	return runner, nil
}
