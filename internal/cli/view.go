package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/render"
	"github.com/matzehuels/pipecanvas/pkg/scenario"
)

// viewOpts holds the flags of the view command.
type viewOpts struct {
	connect bool
	setup   bool
}

// viewCommand creates the view command, an interactive terminal canvas.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [scenario]",
		Short: "Edit a diagram interactively in the terminal",
		Long: `View opens the canvas in the terminal. Drag nodes with the mouse, hold
shift to draw a connection, hold ctrl (or alt) to multi-select, and drag on
empty space to select with a marquee.

Without --connect the notifications stay local and are shown in the status
line. With --connect the canvas talks to the configured bridge transport.`,
		Example: `  pipecanvas view testdata/drag.hcl
  pipecanvas view --connect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runView(ctx, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.connect, "connect", false, "attach to the configured bridge transport")
	cmd.Flags().BoolVar(&opts.setup, "setup-only", false, "only build the scenario's initial diagram")

	return cmd
}

func (c *CLI) runView(ctx context.Context, path string, opts viewOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.registerHooks()

	scene := render.NewScene()
	out := &bridge.Recorder{}
	var sender bridge.Sender = out
	var inbound <-chan bridge.Inbound

	if opts.connect {
		l, err := c.connect(ctx, cfg.Bridge)
		if err != nil {
			return err
		}
		defer l.Close()
		sender = bridge.Tee(out, l)
		inbound = l.Inbound()
	}

	e := c.newEngine(cfg.Canvas, scene, sender)
	if path != "" {
		if err := c.loadInto(e, path, opts.setup); err != nil {
			return err
		}
	}

	p := tea.NewProgram(NewCanvasModel(e, scene, out, inbound),
		tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	printStats(e.Store().NodeCount(), e.Store().EdgeCount(), e.Mode().String())
	printDetail("%d notifications", len(out.Messages()))
	return nil
}

// loadInto applies a scenario to e, or only its setup when setupOnly is set.
func (c *CLI) loadInto(e *canvas.Engine, path string, setupOnly bool) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if setupOnly {
		s.Script = nil
	}
	return scenario.Play(e, s)
}
