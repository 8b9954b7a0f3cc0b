package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/config"
	"github.com/matzehuels/pipecanvas/pkg/graph"
	"github.com/matzehuels/pipecanvas/pkg/render"
	"github.com/matzehuels/pipecanvas/pkg/scenario"
)

// replayOpts holds the flags of the replay command.
type replayOpts struct {
	snapshot string
	quiet    bool
}

// replayCommand creates the replay command for running scenario files.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay [scenario]",
		Short: "Play a scenario and print the notifications it produces",
		Long: `Replay loads an HCL scenario, builds its initial diagram and plays the
scripted gestures against a headless canvas. Every notification the canvas
would send to the server is printed in order.`,
		Example: `  pipecanvas replay testdata/drag.hcl
  pipecanvas replay testdata/layout.hcl --snapshot out.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runReplay(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "write the final diagram as JSON to this file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print the summary")

	return cmd
}

func (c *CLI) runReplay(ctx context.Context, path string, opts replayOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.registerHooks()

	run, err := c.play(ctx, cfg.Canvas, path)
	if err != nil {
		return err
	}

	msgs := run.out.Messages()
	if !opts.quiet {
		for _, msg := range msgs {
			printNotification(msg)
		}
	}
	printSuccess("Replayed %s", StyleHighlight.Render(path))
	printStats(run.engine.Store().NodeCount(), run.engine.Store().EdgeCount(), run.engine.Mode().String())
	printDetail("%d notifications", len(msgs))

	if opts.snapshot != "" {
		if err := writeSnapshot(run.engine.Store(), opts.snapshot); err != nil {
			return err
		}
		printFile(opts.snapshot)
	}
	return nil
}

// playback is the result of playing a scenario headlessly.
type playback struct {
	engine *canvas.Engine
	scene  *render.Scene
	out    *bridge.Recorder
}

// play loads the scenario at path and runs it on a fresh engine drawing into
// an in-memory scene.
func (c *CLI) play(ctx context.Context, cfg config.Canvas, path string) (*playback, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	run := &playback{scene: render.NewScene(), out: &bridge.Recorder{}}
	run.engine = c.newEngine(cfg, run.scene, run.out)
	if err := scenario.Play(run.engine, s); err != nil {
		return nil, err
	}
	run.engine.Tick(s.End)

	prog.done(fmt.Sprintf("Played %d setup pushes and %d script entries", len(s.Setup), len(s.Script)))
	return run, nil
}

func writeSnapshot(s *graph.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := graph.WriteSnapshot(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
