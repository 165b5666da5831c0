package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	previewStyle = lipgloss.NewStyle().Faint(true)
	anchorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	// accentPalette colors node borders; index 0 is the terminal default.
	accentPalette = []lipgloss.Style{
		{},
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
	}
)

type cell struct {
	X, Y int
}

// renderCanvas rasterizes one buffer into terminal lines. Everything is
// projected through the viewport, so pan and zoom fall out of the same
// conversion the input side uses. Draw order: edges, nodes, anchors, then
// the preview line so an in-flight connection renders above all nodes.
func renderCanvas(buf *Buffer, width, height, selected int) []string {
	if width < 1 || height < 1 {
		return nil
	}
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	dim := make(map[cell]bool)
	accent := make(map[cell]bool)
	colored := make(map[cell]int)

	v := buf.viewport
	for _, e := range buf.diagram.Edges() {
		drawEdge(grid, v, e)
	}
	for _, n := range buf.diagram.Nodes() {
		drawNode(grid, colored, v, n, n.ID == selected, buf.diagram.Meta(n.ID))
	}
	for _, n := range buf.diagram.Nodes() {
		drawAnchors(grid, accent, v, n, buf.diagram.Meta(n.ID))
	}
	if pv := buf.interaction.Preview(); pv != nil {
		drawPreview(grid, dim, v, pv)
	}

	lines := make([]string, height)
	for y := range grid {
		var sb strings.Builder
		for x, r := range grid[y] {
			switch {
			case dim[cell{x, y}]:
				sb.WriteString(previewStyle.Render(string(r)))
			case accent[cell{x, y}]:
				sb.WriteString(anchorStyle.Render(string(r)))
			case colored[cell{x, y}] > 0:
				sb.WriteString(accentPalette[colored[cell{x, y}]].Render(string(r)))
			default:
				sb.WriteRune(r)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

func project(v *Viewport, p Point) cell {
	sx, sy := v.LocalToScreen(p)
	return cell{X: int(math.Round(sx)), Y: int(math.Round(sy / cellAspect))}
}

func put(grid [][]rune, x, y int, r rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

func putString(grid [][]rune, x, y int, s string) {
	for i, r := range []rune(s) {
		put(grid, x+i, y, r)
	}
}

func drawNode(grid [][]rune, colored map[cell]int, v *Viewport, n *Node, selected bool, meta *NodeMeta) {
	tl := project(v, Point{X: n.X, Y: n.Y})
	br := project(v, Point{X: n.X + n.Width, Y: n.Y + n.Height})
	w := br.X - tl.X
	h := br.Y - tl.Y
	if w < 2 || h < 2 {
		put(grid, tl.X, tl.Y, '▪')
		return
	}

	tint := 0
	if meta != nil && meta.Accent > 0 && meta.Accent < len(accentPalette) {
		tint = meta.Accent
	}
	border := func(x, y int, r rune) {
		put(grid, x, y, r)
		if tint > 0 {
			colored[cell{x, y}] = tint
		}
	}

	horiz, vert := '─', '│'
	corners := [4]rune{'┌', '┐', '└', '┘'}
	if selected {
		horiz, vert = '═', '║'
		corners = [4]rune{'╔', '╗', '╚', '╝'}
	}
	for x := tl.X + 1; x < br.X; x++ {
		border(x, tl.Y, horiz)
		border(x, br.Y, horiz)
	}
	for y := tl.Y + 1; y < br.Y; y++ {
		border(tl.X, y, vert)
		border(br.X, y, vert)
	}
	border(tl.X, tl.Y, corners[0])
	border(br.X, tl.Y, corners[1])
	border(tl.X, br.Y, corners[2])
	border(br.X, br.Y, corners[3])

	// Clear the interior so edges never bleed through a box.
	for y := tl.Y + 1; y < br.Y; y++ {
		for x := tl.X + 1; x < br.X; x++ {
			put(grid, x, y, ' ')
		}
	}
	inner := w - 2
	for i, line := range n.Lines {
		y := tl.Y + 1 + i
		if y >= br.Y {
			break
		}
		// Truncate on rune boundaries so multibyte labels never split.
		runes := []rune(line)
		if len(runes) > inner {
			runes = runes[:inner]
		}
		putString(grid, tl.X+1+(inner-len(runes))/2, y, string(runes))
	}
}

func drawAnchors(grid [][]rune, accent map[cell]bool, v *Viewport, n *Node, meta *NodeMeta) {
	for _, cp := range n.Anchors() {
		if cp == nil || !cp.Visible {
			continue
		}
		c := project(v, cp.LocalPosition())
		r := '●'
		if meta.AnchorAlpha < 0.5 {
			r = '∘'
		}
		put(grid, c.X, c.Y, r)
		accent[c] = true
	}
}

func drawEdge(grid [][]rune, v *Viewport, e *Edge) {
	a := project(v, e.Start)
	b := project(v, e.End)
	cells := lineCells(a, b)
	for i, c := range cells {
		if i == len(cells)-1 && e.ArrowTo {
			put(grid, c.X, c.Y, arrowRune(Angle(e.Start, e.End)))
			continue
		}
		put(grid, c.X, c.Y, lineRune(a, b))
	}
	if e.Label != "" {
		lp := project(v, EdgeLabelPos(e.Start, e.End))
		putString(grid, lp.X-len([]rune(e.Label))/2, lp.Y, e.Label)
	}
}

func drawPreview(grid [][]rune, dim map[cell]bool, v *Viewport, pv *PreviewLine) {
	a := project(v, pv.Start)
	b := project(v, pv.End)
	for _, c := range lineCells(a, b) {
		put(grid, c.X, c.Y, '·')
		dim[c] = true
	}
}

// lineCells walks a Bresenham line between two cells, inclusive.
func lineCells(a, b cell) []cell {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	var cells []cell
	for {
		cells = append(cells, cell{x, y})
		if x == b.X && y == b.Y {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func lineRune(a, b cell) rune {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	switch {
	case dy == 0 || dx > 3*dy:
		return '─'
	case dx == 0 || dy > 3*dx:
		return '│'
	case (b.X-a.X)*(b.Y-a.Y) > 0:
		return '╲'
	default:
		return '╱'
	}
}

func arrowRune(angle float64) rune {
	deg := angle * 180 / math.Pi
	switch {
	case deg >= -45 && deg < 45:
		return '▶'
	case deg >= 45 && deg < 135:
		return '▼'
	case deg >= -135 && deg < -45:
		return '▲'
	default:
		return '◀'
	}
}
