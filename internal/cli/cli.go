// Package cli implements the dagmatch command-line interface.
//
// Every analysis command reads graphs in the node-link JSON format from a
// file argument, or from stdin when the argument is "-", and runs them
// through a [pipeline.Runner] so results are cached and limited the same
// way as in the HTTP API.
//
// # Commands
//
//   - validate: report cycles, orphans and dangling references
//   - order: topological, breadth-first or depth-first post-order
//   - match: find a pattern graph inside a target graph
//   - transform: break cycles and remove transitive edges
//   - serve: run the HTTP API
//   - cache: manage the result cache
//
// # Output
//
// Results are printed for humans by default. --json switches every analysis
// command to machine output on stdout. Logs go to stderr; --verbose enables
// debug logging.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagmatch/internal/config"
	"github.com/matzehuels/dagmatch/pkg/buildinfo"
	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
	"github.com/matzehuels/dagmatch/pkg/graph"
	"github.com/matzehuels/dagmatch/pkg/observability"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

const appName = "dagmatch"

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

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
	noCache    bool
	jsonOut    bool
	verbose    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dagmatch validates, orders and searches directed graphs",
		Long: `dagmatch checks directed graphs for cycles, orphans and dangling edges,
orders them topologically or by traversal, finds pattern graphs inside
larger ones and simplifies them by breaking cycles and removing
transitive edges.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dagmatch/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")
	flags.BoolVar(&c.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.matchCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose and loads the configuration.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetAnalysisHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "backend", cfg.Cache.Backend, "path", c.configPath)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The caller closes it.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cch, err := c.Config.OpenCache(ctx, c.noCache)
	if err != nil {
		// An unreachable cache only costs recomputation.
		c.Logger.Warn("cache unavailable, continuing without it", "err", err)
		cch = nil
	}
	return c.Config.NewRunner(cch, c.Logger), nil
}

// =============================================================================
// Input / Output
// =============================================================================

// readGraphArg reads a graph from path, or from stdin when path is "-".
func readGraphArg(cmd *cobra.Command, path string) (graph.Graph, error) {
	if path == "-" {
		return graph.ReadGraph(cmd.InOrStdin())
	}
	return graph.ReadGraphFile(path)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode output")
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
