package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/render"
)

// Cell style keys. Node cells use their fill colour as key.
const (
	keyNone    = ""
	keyEdge    = "edge"
	keyActive  = "active"
	keyInvalid = "invalid"
	keyOverlay = "overlay"
	keyLabel   = "label"
)

var cellStyles = map[string]lipgloss.Style{
	keyEdge:    lipgloss.NewStyle().Foreground(colorGray),
	keyActive:  lipgloss.NewStyle().Foreground(colorCyan),
	keyInvalid: lipgloss.NewStyle().Foreground(colorRed),
	keyOverlay: lipgloss.NewStyle().Foreground(colorYellow),
	keyLabel:   lipgloss.NewStyle().Foreground(colorBlue),
}

// box drawing sets: plain, primary selection, multi-select member.
var (
	borderPlain    = [6]rune{'┌', '┐', '└', '┘', '─', '│'}
	borderPrimary  = [6]rune{'╔', '╗', '╚', '╝', '═', '║'}
	borderSelected = [6]rune{'┏', '┓', '┗', '┛', '━', '┃'}
	borderGhost    = [6]rune{':', ':', ':', ':', ':', ':'}
	borderMarquee  = [6]rune{'.', '.', '.', '.', '.', '.'}
)

// grid is a character raster of the canvas.
type grid struct {
	w, h   int
	runes  []rune
	styles []string
	scale  float64
}

func newGrid(w, h int, scale float64) *grid {
	g := &grid{w: w, h: h, runes: make([]rune, w*h), styles: make([]string, w*h), scale: scale}
	for i := range g.runes {
		g.runes[i] = ' '
	}
	return g
}

func (g *grid) set(x, y int, r rune, style string) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.runes[y*g.w+x] = r
	g.styles[y*g.w+x] = style
}

func (g *grid) text(x, y, width int, s, style string) {
	for i, r := range []rune(s) {
		if i >= width {
			return
		}
		g.set(x+i, y, r, style)
	}
}

// cell converts a model point to a cell.
func (g *grid) cell(p geometry.Point) (int, int) {
	return int(math.Floor(p.X * g.scale / cellWidth)), int(math.Floor(p.Y * g.scale / cellHeight))
}

// cellRect converts a model rectangle to inclusive cell bounds of at least
// two cells in each direction.
func (g *grid) cellRect(r geometry.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = g.cell(r.Origin())
	x1 = int(math.Ceil(r.MaxX()*g.scale/cellWidth)) - 1
	y1 = int(math.Ceil(r.MaxY()*g.scale/cellHeight)) - 1
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}

func (g *grid) frame(r geometry.Rect, border [6]rune, style string) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = g.cellRect(r)
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, border[4], style)
		g.set(x, y1, border[4], style)
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, border[5], style)
		g.set(x1, y, border[5], style)
	}
	g.set(x0, y0, border[0], style)
	g.set(x1, y0, border[1], style)
	g.set(x0, y1, border[2], style)
	g.set(x1, y1, border[3], style)
	return x0, y0, x1, y1
}

func (g *grid) fill(x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.set(x, y, ' ', keyNone)
		}
	}
}

// line rasterises a segment with Bresenham's algorithm. It returns the
// last cell before the end, where an arrow head sits clear of the target box.
func (g *grid) line(seg geometry.Segment, r rune, style string) (hx, hy int) {
	x0, y0 := g.cell(seg.Start())
	x1, y1 := g.cell(seg.End())
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	hx, hy = x0, y0
	for {
		g.set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return hx, hy
		}
		hx, hy = x0, y0
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// head is an arrow glyph placed after the node boxes are drawn.
type head struct {
	x, y  int
	r     rune
	style string
}

// arrowHead picks the glyph pointing along seg.
func arrowHead(seg geometry.Segment) rune {
	dx, dy := seg.X2-seg.X1, seg.Y2-seg.Y1
	if math.Abs(dx)*cellHeight >= math.Abs(dy)*cellWidth {
		if dx < 0 {
			return '◂'
		}
		return '▸'
	}
	if dy < 0 {
		return '▴'
	}
	return '▾'
}

func (g *grid) edge(e render.EdgeView) head {
	style := keyEdge
	switch {
	case !e.Valid:
		style = keyInvalid
	case e.Highlight:
		style = keyActive
	}
	hx, hy := g.line(e.Line, '·', style)
	if e.Label != "" {
		x, y := g.cell(geometry.Point{X: e.LabelBox.X, Y: e.LabelBox.Y})
		width := max(int(e.LabelBox.W*g.scale/cellWidth), 1)
		g.text(x, y, width, e.Label, keyLabel)
	}
	return head{x: hx, y: hy, r: arrowHead(e.Line), style: style}
}

func (g *grid) node(n render.NodeView) {
	border := borderPlain
	switch {
	case n.Primary:
		border = borderPrimary
	case n.Selected:
		border = borderSelected
	}
	style := n.Fill
	if !n.Valid {
		style = keyInvalid
	}
	x0, y0, x1, y1 := g.cellRect(n.Bounds)
	g.fill(x0, y0, x1, y1)
	g.frame(n.Bounds, border, style)

	name := n.Name
	if !n.Valid {
		name = "! " + name
	}
	g.text(x0+1, y0+1, x1-x0-1, name, style)
	if y1-y0 > 3 && n.Category != "" {
		g.text(x0+1, y1-1, x1-x0-1, strings.ToLower(n.Category), keyEdge)
	}
}

// paint draws the scene into a w×h character block.
func paint(s *render.Scene, w, h int) string {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	g := newGrid(max(w, 1), max(h, 1), scale)

	var heads []head
	for _, e := range s.Edges() {
		heads = append(heads, g.edge(e))
	}
	for _, n := range s.Nodes() {
		g.node(n)
	}
	for _, h := range heads {
		g.set(h.x, h.y, h.r, h.style)
	}
	if s.Preview != nil {
		g.line(*s.Preview, '*', keyOverlay)
	}
	if s.Ghost != nil {
		g.frame(*s.Ghost, borderGhost, keyOverlay)
	}
	if s.Marquee != nil {
		g.frame(*s.Marquee, borderMarquee, keyOverlay)
	}
	return g.String()
}

// String renders the grid row by row, styling runs of equal cells together.
func (g *grid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := g.runes[y*g.w : (y+1)*g.w]
		keys := g.styles[y*g.w : (y+1)*g.w]
		start := 0
		for x := 1; x <= g.w; x++ {
			if x < g.w && keys[x] == keys[start] {
				continue
			}
			b.WriteString(styleFor(keys[start]).Render(string(row[start:x])))
			start = x
		}
	}
	return b.String()
}

func styleFor(key string) lipgloss.Style {
	if key == keyNone {
		return lipgloss.NewStyle()
	}
	if s, ok := cellStyles[key]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(key))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
