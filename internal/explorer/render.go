package explorer

import (
	"strings"

	"memviz/internal/layout"
)

// Cell kinds, in paint order. Later kinds overwrite earlier ones so nodes
// and their labels stay readable on top of edge strokes.
type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindEdge
	kindArrow
	kindEdgeLabel
	kindNode
	kindNodeLabel
)

type cellGrid struct {
	w, h  int
	runes []rune
	kinds []cellKind
}

func newCellGrid(w, h int) *cellGrid {
	g := &cellGrid{
		w:     w,
		h:     h,
		runes: make([]rune, w*h),
		kinds: make([]cellKind, w*h),
	}
	for i := range g.runes {
		g.runes[i] = ' '
	}
	return g
}

// set writes a rune unless a higher-priority kind already owns the cell.
func (g *cellGrid) set(x, y int, r rune, kind cellKind) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	i := y*g.w + x
	if g.kinds[i] > kind {
		return
	}
	g.runes[i] = r
	g.kinds[i] = kind
}

// renderCanvas projects the laid-out scene through the current viewport onto
// the cell grid. Redraw happens on every event; the layout itself is never
// recomputed, only the visible window changes.
func (m model) renderCanvas() string {
	w, h := m.canvasSize()
	if w <= 0 || h <= 0 {
		return ""
	}
	grid := newCellGrid(w, h)

	for _, edge := range m.scene.Edges {
		m.strokeEdge(grid, edge)
	}
	for name, pos := range m.scene.Positions {
		m.drawNode(grid, name, pos)
	}

	return grid.styled()
}

func (m model) drawNode(grid *cellGrid, name string, pos layout.Point) {
	cx, cy := m.dataToCell(pos)
	cy -= canvasTop
	grid.set(cx, cy, '●', kindNode)
	if !m.showLabels {
		return
	}
	for i, r := range name {
		grid.set(cx+2+i, cy, r, kindNodeLabel)
	}
}

func (m model) strokeEdge(grid *cellGrid, edge layout.PlacedEdge) {
	if edge.From == edge.To {
		// Self-loop: nothing to stroke, the node glyph marks it.
		return
	}

	v := m.ctrl.View()
	x0, y0, x1, y1, ok := clipSegment(
		edge.From.X, edge.From.Y, edge.To.X, edge.To.Y,
		v.XMin, v.XMax, v.YMin, v.YMax,
	)
	if !ok {
		return
	}

	cx0, cy0 := m.dataToCell(layout.Point{X: x0, Y: y0})
	cx1, cy1 := m.dataToCell(layout.Point{X: x1, Y: y1})
	cy0 -= canvasTop
	cy1 -= canvasTop

	strokeLine(grid, cx0, cy0, cx1, cy1)

	// Arrowhead only when the true target endpoint is in view.
	if v.Contains(edge.To.X, edge.To.Y) {
		grid.set(cx1, cy1, arrowRune(cx1-cx0, cy1-cy0), kindArrow)
	}

	if m.showLabels && edge.RelType != "" {
		m.drawEdgeLabel(grid, edge)
	}
}

// drawEdgeLabel writes the relation type at the edge midpoint when the
// projected edge is long enough to carry it; dense zoomed-out views stay
// uncluttered.
func (m model) drawEdgeLabel(grid *cellGrid, edge layout.PlacedEdge) {
	fx, fy := m.dataToCell(edge.From)
	tx, ty := m.dataToCell(edge.To)
	length := abs(tx-fx) + abs(ty-fy)
	if length < len(edge.RelType)+2 {
		return
	}
	mx := (fx+tx)/2 - len(edge.RelType)/2
	my := (fy+ty)/2 - canvasTop
	for i, r := range edge.RelType {
		grid.set(mx+i, my, r, kindEdgeLabel)
	}
}

// strokeLine draws a Bresenham line between two cells.
func strokeLine(grid *cellGrid, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		grid.set(x0, y0, lineRune(dx, -dy), kindEdge)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case dx >= 2*dy:
		return '─'
	case dy >= 2*dx:
		return '│'
	default:
		return '·'
	}
}

func arrowRune(dx, dy int) rune {
	switch {
	case abs(dx) >= abs(dy) && dx >= 0:
		return '>'
	case abs(dx) >= abs(dy):
		return '<'
	case dy >= 0:
		return 'v'
	default:
		return '^'
	}
}

// clipSegment clips a segment to the rectangle with the Liang-Barsky
// algorithm. Deep zooms put endpoints far outside the window; clipping first
// keeps the stroke bounded by the canvas size.
func clipSegment(x0, y0, x1, y1, xmin, xmax, ymin, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	if !clip(-dx, x0-xmin) || !clip(dx, xmax-x0) ||
		!clip(-dy, y0-ymin) || !clip(dy, ymax-y0) {
		return 0, 0, 0, 0, false
	}

	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// styled renders the grid row by row, batching runs of the same cell kind
// into one style call each.
func (g *cellGrid) styled() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		row := g.runes[y*g.w : (y+1)*g.w]
		kinds := g.kinds[y*g.w : (y+1)*g.w]

		start := 0
		for x := 1; x <= g.w; x++ {
			if x < g.w && kinds[x] == kinds[start] {
				continue
			}
			run := string(row[start:x])
			switch kinds[start] {
			case kindEmpty:
				b.WriteString(run)
			case kindEdge:
				b.WriteString(edgeStyle.Render(run))
			case kindArrow:
				b.WriteString(edgeStyle.Render(run))
			case kindEdgeLabel:
				b.WriteString(edgeLabelStyle.Render(run))
			case kindNode:
				b.WriteString(nodeStyle.Render(run))
			case kindNodeLabel:
				b.WriteString(nodeLabelStyle.Render(run))
			}
			start = x
		}
		b.WriteByte('\n')
	}
	return b.String()
}
