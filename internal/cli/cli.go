// Package cli implements the forcegraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/payload"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "forcegraph"

	// defaultAddr is where serve listens unless --addr is given.
	defaultAddr = "127.0.0.1:8080"
)

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
		Use:          appName,
		Short:        "Forcegraph models interactive force-directed diagrams",
		Long:         `Forcegraph loads node and edge data into a diagram model, clusters it, derives force-layout parameters and renders it as DOT, SVG or JSON frames.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML file with diagram options")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options and Payloads
// =============================================================================

// options returns the diagram options from --config, or the defaults.
func (c *CLI) options() (config.Options, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	opts, err := config.Load(c.configPath)
	if err != nil {
		return config.Options{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return opts, nil
}

// open reads a payload file and builds a diagram from it. Options embedded in
// the payload win over --config.
func (c *CLI) open(path string, options ...diagram.Option) (*diagram.Diagram, payload.Report, error) {
	opts, err := c.options()
	if err != nil {
		return nil, payload.Report{}, err
	}
	p, err := payload.ReadFile(path)
	if err != nil {
		return nil, payload.Report{}, err
	}

	prog := newProgress(c.Logger)
	options = append([]diagram.Option{diagram.WithLogger(c.Logger)}, options...)
	d, rep, err := payload.Open(p, opts, options...)
	if err != nil {
		return nil, payload.Report{}, err
	}
	prog.done("Loaded " + path)
	for _, r := range rep.Rejected {
		c.Logger.Warn("element rejected", "kind", r.Kind, "index", r.Index, "id", r.ID, "code", r.Code)
	}
	return d, rep, nil
}

// cluster applies the --cluster-key and --cluster flags to a loaded diagram.
// An empty key keeps the one from the options.
func (c *CLI) cluster(d *diagram.Diagram, key string, on bool) error {
	if key != "" && key != d.Options().ClusterKey {
		if err := d.SetClusterKey(key); err != nil {
			return err
		}
	}
	if on && !d.Clustered() {
		d.EnableClustering(true)
	}
	return nil
}

// =============================================================================
// Render Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/forcegraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
