// Package cli implements the orbit command-line interface.
//
// # Commands
//
// The main commands are:
//   - layout: Lay out a whole mindmap on concentric rings
//   - focus: Re-center the subtree of one node around its current position
//   - serve: Run the HTTP layout API
//   - config: Create and inspect the config file
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Without it the
// level comes from the config file. Loggers are also passed through
// context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/buildinfo"
	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/config"
	"github.com/matzehuels/orbit/pkg/layout/circular"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels for New.
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

	// Config is loaded before every command runs.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
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

// SetVerbose forces debug logging regardless of the configured level.
func (c *CLI) SetVerbose(v bool) {
	c.verbose = v
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Orbit arranges mindmaps on concentric rings",
		Long:          `Orbit is a CLI tool and HTTP service that computes radial layouts for mindmaps: roots on an inner ring, every generation on the next ring out, each subtree inside its own angular sector.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/orbit/orbit.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.focusCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level. An explicit
// --config path must exist; the default path is optional.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		var path string
		if path, err = config.DefaultPath(); err != nil {
			cfg, err = config.Default(), nil
		} else {
			cfg, err = config.LoadOrDefault(path)
		}
	}
	if err != nil {
		return err
	}
	c.Config = cfg

	level := LogDebug
	if !c.verbose {
		if level, err = log.ParseLevel(cfg.Log.Level); err != nil {
			level = LogInfo
		}
	}
	c.SetLogLevel(level)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.Config.Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// openCache opens the configured cache backend, falling back to the file
// cache in the user cache directory.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.URI != "" {
		return cache.Open(ctx, c.Config.Cache.URI)
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, dir)
}

// =============================================================================
// Parameter Flags
// =============================================================================

// floatParams maps flag names to the float fields of circular.Params.
var floatParams = []struct {
	name  string
	usage string
	field func(*circular.Params) *float64
}{
	{"inner-radius", "radius of the root ring", func(p *circular.Params) *float64 { return &p.InnerRadius }},
	{"level-spacing", "radial distance between generations", func(p *circular.Params) *float64 { return &p.LevelSpacing }},
	{"start-angle", "angle of the first root in degrees, 0 points up", func(p *circular.Params) *float64 { return &p.StartAngle }},
	{"min-sector-angle", "smallest child sector in focus mode (degrees)", func(p *circular.Params) *float64 { return &p.MinSectorAngle }},
	{"node-width", "node width used for collision tests", func(p *circular.Params) *float64 { return &p.NodeWidth }},
	{"node-height", "node height used for collision tests", func(p *circular.Params) *float64 { return &p.NodeHeight }},
	{"min-node-spacing", "smallest gap between node borders", func(p *circular.Params) *float64 { return &p.MinNodeSpacing }},
}

// addParamFlags registers layout parameter flags writing into p.
func addParamFlags(cmd *cobra.Command, p *circular.Params) {
	*p = circular.DefaultParams()
	for _, f := range floatParams {
		ptr := f.field(p)
		cmd.Flags().Float64Var(ptr, f.name, *ptr, f.usage)
	}
	cmd.Flags().BoolVar(&p.Clockwise, "clockwise", p.Clockwise, "lay out roots and children clockwise")
}

// mergeParams overrides base with every parameter flag set on cmd.
func mergeParams(cmd *cobra.Command, base, flags circular.Params) circular.Params {
	for _, f := range floatParams {
		if cmd.Flags().Changed(f.name) {
			*f.field(&base) = *f.field(&flags)
		}
	}
	if cmd.Flags().Changed("clockwise") {
		base.Clockwise = flags.Clockwise
	}
	return base
}
