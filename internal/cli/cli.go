package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/buildinfo"
	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/config"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/observability"
	"github.com/matzehuels/pipecanvas/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pipecanvas"
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

	// ConfigPath overrides the settings file location.
	ConfigPath string
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
		Short:        "Pipecanvas is an interactive editor for data pipeline diagrams",
		Long:         `Pipecanvas runs the interaction engine of a pipeline diagram canvas. It replays scripted gestures, exports diagrams, shows them in the terminal and connects them to a pipeline server.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "settings file (default $XDG_CONFIG_HOME/pipecanvas/config.toml)")

	root.AddCommand(c.replayCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// loadConfig reads the settings file and applies its log level unless
// --verbose already lowered it.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && lvl < c.Logger.GetLevel() {
		c.Logger.SetLevel(lvl)
	}
	return cfg, nil
}

// newEngine builds an engine from the canvas settings. Text is measured
// with the Go font when it can be loaded.
func (c *CLI) newEngine(cfg config.Canvas, surface render.Surface, out bridge.Sender) *canvas.Engine {
	opts := canvas.Options{
		Surface:      surface,
		Sender:       out,
		Logger:       c.Logger.WithPrefix("canvas"),
		DoubleClick:  cfg.DoubleClick.D(),
		TooltipDelay: cfg.TooltipDelay.D(),
		ArrowLength:  cfg.ArrowLength,
		Label:        geometry.LabelOptions{MinWidth: cfg.LabelMinWidth, Padding: cfg.LabelPadding},
		Width:        cfg.Width,
		Height:       cfg.Height,
	}
	if m, err := render.NewTextMetrics(cfg.FontSize, cfg.NodeWidth, cfg.TextPadding); err == nil {
		opts.Sizer = m
		opts.Measurer = m
	} else {
		c.Logger.Warn("falling back to fixed-width text metrics", "err", err)
	}
	return canvas.New(opts)
}

// registerHooks routes engine and bridge events to the debug log.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger.WithPrefix("hooks")}
	observability.SetCanvasHooks(h)
	observability.SetBridgeHooks(h)
}
