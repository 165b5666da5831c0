package main

import (
	"log"
	"math"
)

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Angle returns the direction from a to b in radians.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// EdgeEndpoints resolves both endpoints of an edge from its recorded sides.
// A node that has somehow lost its connection points degrades to its
// bounding-box center with a logged warning rather than failing the redraw.
func (d *Diagram) EdgeEndpoints(e *Edge) (Point, Point) {
	return d.endpointFor(e.FromID, e.FromSide), d.endpointFor(e.ToID, e.ToSide)
}

func (d *Diagram) endpointFor(nodeID int, side Side) Point {
	n := d.Node(nodeID)
	if n == nil {
		log.Printf("edge endpoint references missing node %d", nodeID)
		return Point{}
	}
	cp := n.Anchor(side)
	if cp == nil {
		log.Printf("node %d has no %s connection point, falling back to center", nodeID, side)
		return n.Center()
	}
	return cp.LocalPosition()
}

// RefreshEdge recomputes an edge's cached endpoints from live anchor
// positions. Required when the edge is created, when either endpoint node
// moves, and on explicit refresh after external layout changes. Zoom alone
// never requires it: both endpoints live in the same zoomable local space.
func (d *Diagram) RefreshEdge(e *Edge) {
	e.Start, e.End = d.EdgeEndpoints(e)
}

// RefreshEdgesFor recomputes every edge touching the node. Only the moved
// node's side of each edge actually changes; the far endpoint resolves to
// the same anchor position it had before.
func (d *Diagram) RefreshEdgesFor(nodeID int) {
	for _, e := range d.edges {
		if d.EdgeTouches(e, nodeID) {
			d.RefreshEdge(e)
		}
	}
}

// ArrowheadPoints returns the three corners of an isosceles arrowhead whose
// tip sits exactly at tip, pointing along angle. Fixed length and width.
func ArrowheadPoints(tip Point, angle float64) [3]Point {
	bx := tip.X - arrowLength*math.Cos(angle)
	by := tip.Y - arrowLength*math.Sin(angle)
	px := (arrowWidth / 2) * math.Cos(angle+math.Pi/2)
	py := (arrowWidth / 2) * math.Sin(angle+math.Pi/2)
	return [3]Point{
		tip,
		{X: bx + px, Y: by + py},
		{X: bx - px, Y: by - py},
	}
}

// EdgeLabelPos places a floating label at the segment midpoint, pushed off
// the line by a fixed perpendicular distance so it does not overlap it.
func EdgeLabelPos(a, b Point) Point {
	mid := Midpoint(a, b)
	ang := Angle(a, b)
	return Point{
		X: mid.X + edgeLabelGap*math.Cos(ang-math.Pi/2),
		Y: mid.Y + edgeLabelGap*math.Sin(ang-math.Pi/2),
	}
}
