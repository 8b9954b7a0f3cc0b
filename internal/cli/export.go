package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipecanvas/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// exportOpts holds the flags of the export command.
type exportOpts struct {
	output   string
	format   string
	detailed bool
	unpinned bool
}

// exportCommand creates the export command. It plays a scenario and writes
// the resulting diagram through Graphviz.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [scenario]",
		Short: "Play a scenario and export the diagram as DOT or SVG",
		Example: `  pipecanvas export testdata/drag.hcl -o drag.svg
  pipecanvas export testdata/drag.hcl -f dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runExport(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: scenario name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg (default: from --output, else svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node descriptions")
	cmd.Flags().BoolVar(&opts.unpinned, "unpinned", false, "let Graphviz place the nodes")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, path string, opts exportOpts) error {
	format, err := exportFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.registerHooks()

	run, err := c.play(ctx, cfg.Canvas, path)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(run.scene, nodelink.Options{Detailed: opts.detailed, Unpinned: opts.unpinned})
	data := []byte(dot)
	if format == formatSVG {
		prog := newProgress(loggerFromContext(ctx))
		err := spin(ctx, os.Stderr, "Rendering SVG", func() error {
			var err error
			data, err = nodelink.RenderSVG(ctx, dot)
			return err
		})
		if err != nil {
			return err
		}
		prog.done("Rendered SVG")
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Exported %s", StyleHighlight.Render(path))
	printFile(output)
	return nil
}

// exportFormat resolves the output format from the flag or the output
// file extension.
func exportFormat(flag, output string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch f {
	case "", formatSVG:
		return formatSVG, nil
	case formatDOT, "gv":
		return formatDOT, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use dot or svg)", f)
	}
}
