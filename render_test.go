package main

import (
	"strings"
	"testing"
)

func TestLineCellsInclusive(t *testing.T) {
	cells := lineCells(cell{0, 0}, cell{3, 0})
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	if cells[0] != (cell{0, 0}) || cells[3] != (cell{3, 0}) {
		t.Errorf("endpoints: got %v and %v", cells[0], cells[3])
	}
}

func TestLineCellsDegenerate(t *testing.T) {
	cells := lineCells(cell{5, 5}, cell{5, 5})
	if len(cells) != 1 || cells[0] != (cell{5, 5}) {
		t.Errorf("single-point line: got %v", cells)
	}
}

func TestArrowRuneByDirection(t *testing.T) {
	tests := []struct {
		a, b Point
		want rune
	}{
		{Point{0, 0}, Point{100, 0}, '▶'},
		{Point{100, 0}, Point{0, 0}, '◀'},
		{Point{0, 0}, Point{0, 100}, '▼'},
		{Point{0, 100}, Point{0, 0}, '▲'},
	}
	for _, tt := range tests {
		if got := arrowRune(Angle(tt.a, tt.b)); got != tt.want {
			t.Errorf("arrow %v -> %v: got %c, want %c", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRenderCanvasDrawsNodeBorder(t *testing.T) {
	buf := newBuffer("test", defaultConfig())
	n := buf.diagram.AddNode(10, 10, "hi")
	n.SetSize(80, 40)

	lines := renderCanvas(&buf, 120, 40, -1)
	if len(lines) != 40 {
		t.Fatalf("got %d lines, want 40", len(lines))
	}
	joined := strings.Join(lines, "\n")
	for _, r := range []string{"┌", "┘", "hi"} {
		if !strings.Contains(joined, r) {
			t.Errorf("rendered output missing %q", r)
		}
	}
}

func TestRenderCanvasDrawsPreviewAboveAll(t *testing.T) {
	buf := newBuffer("test", defaultConfig())
	n := buf.diagram.AddNode(0, 0, "a")
	n.SetSize(80, 40)
	buf.interaction.Begin(n.Anchor(SideRight))
	buf.interaction.PointerMove(Point{130, 20})

	lines := renderCanvas(&buf, 160, 40, -1)
	if !strings.Contains(strings.Join(lines, "\n"), "·") {
		t.Error("active session preview not rendered")
	}
}

func TestRenderCanvasEmptyViewport(t *testing.T) {
	buf := newBuffer("test", defaultConfig())
	if lines := renderCanvas(&buf, 0, 0, -1); lines != nil {
		t.Errorf("expected nil for a zero-sized viewport, got %d lines", len(lines))
	}
}

func TestNodeLabelTruncatesOnRuneBoundary(t *testing.T) {
	buf := newBuffer("test", defaultConfig())
	n := buf.diagram.AddNode(10, 10, strings.Repeat("ä", 45))
	n.SetSize(40, 24) // 38 interior cells per row

	joined := strings.Join(renderCanvas(&buf, 120, 40, -1), "\n")
	if !strings.Contains(joined, strings.Repeat("ä", 38)) {
		t.Error("truncated multibyte label not rendered intact")
	}
	if strings.ContainsRune(joined, '�') {
		t.Error("label truncation split a rune")
	}
}
