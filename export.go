package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// PNG export rasterizes the diagram in local space, one pixel per local
// unit. Endpoints, arrowheads, and label positions all come from the edge
// geometry engine so the raster output matches the terminal view.

const exportPadding = 40.0

func exportPNG(d *Diagram, filename string) error {
	if len(d.Nodes()) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY, maxX, maxY := diagramBounds(d)
	minX -= exportPadding
	minY -= exportPadding
	maxX += exportPadding
	maxY += exportPadding

	dc := gg.NewContext(int(maxX-minX), int(maxY-minY))
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, e := range d.Edges() {
		drawEdgePNG(dc, d, e, minX, minY)
	}
	for _, n := range d.Nodes() {
		drawNodePNG(dc, n, minX, minY)
	}

	return dc.SavePNG(filename)
}

func diagramBounds(d *Diagram) (minX, minY, maxX, maxY float64) {
	first := true
	extend := func(x, y float64) {
		if first {
			minX, minY, maxX, maxY = x, y, x, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, n := range d.Nodes() {
		extend(n.X, n.Y)
		extend(n.X+n.Width, n.Y+n.Height)
	}
	for _, e := range d.Edges() {
		extend(e.Start.X, e.Start.Y)
		extend(e.End.X, e.End.Y)
	}
	return
}

func drawNodePNG(dc *gg.Context, n *Node, minX, minY float64) {
	x := n.X - minX
	y := n.Y - minY

	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(x, y, n.Width, n.Height, 6)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(x, y, n.Width, n.Height, 6)
	dc.Stroke()

	lineHeight := 18.0
	startY := y + n.Height/2 - lineHeight*float64(len(n.Lines)-1)/2
	for i, line := range n.Lines {
		dc.DrawStringAnchored(line, x+n.Width/2, startY+float64(i)*lineHeight, 0.5, 0.3)
	}
}

func drawEdgePNG(dc *gg.Context, d *Diagram, e *Edge, minX, minY float64) {
	a, b := d.EdgeEndpoints(e)
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	dc.DrawLine(a.X-minX, a.Y-minY, b.X-minX, b.Y-minY)
	dc.Stroke()

	if e.ArrowTo {
		tri := ArrowheadPoints(b, Angle(a, b))
		dc.MoveTo(tri[0].X-minX, tri[0].Y-minY)
		dc.LineTo(tri[1].X-minX, tri[1].Y-minY)
		dc.LineTo(tri[2].X-minX, tri[2].Y-minY)
		dc.ClosePath()
		dc.Fill()
	}
	if e.Label != "" {
		lp := EdgeLabelPos(a, b)
		dc.DrawStringAnchored(e.Label, lp.X-minX, lp.Y-minY, 0.5, 0.5)
	}
}

// exportText writes the current terminal rendering to a file, with no
// selection highlight.
func (m *model) exportText(filename string) error {
	buf := m.currentBuffer()
	if buf == nil {
		return fmt.Errorf("no canvas available")
	}
	width, height := m.width, m.height-1
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range renderCanvas(buf, width, height, -1) {
		fmt.Fprintln(file, line)
	}
	return nil
}
