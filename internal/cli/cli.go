// Package cli implements the wallcheck command-line interface.
//
// This package provides commands for analyzing blueprints, converting
// between exchange strings and JSON, browsing stored reports, serving the
// HTTP API and managing the cache. The CLI is built using cobra and logs
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Report the entities a bug can reach from outside the walls
//   - encode: Convert blueprint JSON to an exchange string and back
//   - recipes: Inspect the recipes reference table
//   - history: List and show stored reports
//   - serve: Run the HTTP API
//   - cache: Manage the report and download cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every pipeline stage through the observability hooks.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/wallcheck/pkg/buildinfo"
	"github.com/matzehuels/wallcheck/pkg/cache"
	"github.com/matzehuels/wallcheck/pkg/config"
	"github.com/matzehuels/wallcheck/pkg/observability"
	"github.com/matzehuels/wallcheck/pkg/pipeline"
	"github.com/matzehuels/wallcheck/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "wallcheck"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Wallcheck finds the entities a bug can reach through your walls",
		Long:          `Wallcheck flood-fills a blueprint from outside its perimeter and reports every entity that is not enclosed by walls.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetAnalysisHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.recipesCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Loaded configuration", "path", c.configPath, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the configured cache and store.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	copts := cfg.CacheOptions()
	if noCache {
		copts.Backend = cache.BackendNone
	}
	ch, err := cache.Open(ctx, copts)
	if err != nil {
		return nil, err
	}

	st, err := c.openStore(ctx)
	if err != nil {
		ch.Close()
		return nil, err
	}

	runner := pipeline.NewRunner(ch, nil, st, c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, cfg.StoreOptions())
}

// =============================================================================
// Terminal
// =============================================================================

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
