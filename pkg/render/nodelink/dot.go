package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pipecanvas/pkg/render"
)

// pointsPerInch converts model units (points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Detailed adds the node description under the name.
	Detailed bool
	// Unpinned omits pos attributes so Graphviz lays the diagram out freely.
	Unpinned bool
}

// ToDOT converts the nodes and edges currently drawn on a scene to Graphviz
// DOT. Overlays (preview line, ghost, marquee) are not exported.
func ToDOT(s *render.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontsize=9, arrowsize=0.5];\n")
	buf.WriteString("\n")

	height := s.Height
	for _, n := range s.Nodes() {
		if b := n.Bounds.MaxY(); b > height {
			height = b
		}
	}

	for _, n := range s.Nodes() {
		attrs := nodeAttrs(n, fmtLabel(n, opts.Detailed))
		if !opts.Unpinned {
			c := n.Bounds.Center()
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(c.X), num(height-c.Y)))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges() {
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fmtLabel(n render.NodeView, detailed bool) string {
	if !detailed || n.Description == "" {
		return n.Name
	}
	return n.Name + "\n\n" + n.Description
}

func nodeAttrs(n render.NodeView, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", n.Fill),
		fmt.Sprintf("width=%s", num(n.Bounds.W/pointsPerInch)),
		fmt.Sprintf("height=%s", num(n.Bounds.H/pointsPerInch)),
	}
	if !n.Valid {
		attrs = append(attrs, "color=red", "penwidth=2")
	}
	return attrs
}

func edgeAttrs(e render.EdgeView) []string {
	attrs := []string{fmt.Sprintf("id=\"e%d\"", e.ID)}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if !e.Valid {
		attrs = append(attrs, "color=red", "style=dashed")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
