package main

import "math"

// ConnectionPoint is a fixed anchor at the midpoint of one side of a node,
// the attachment target for edges. A node owns exactly four of them, one
// per side, held as typed references rather than discovered by scanning.
type ConnectionPoint struct {
	Side    Side
	OffsetX float64 // offset from the node origin, node-local space
	OffsetY float64

	// HitRadius is the tappable catchment area in screen units. It does not
	// affect the rendered dot. Both values it can take are process-wide
	// modes applied to every point of every node in lockstep.
	HitRadius float64

	Visible bool

	owner *Node
}

// Owner returns the node this connection point belongs to. Connection
// points are created with their node and destroyed with it.
func (cp *ConnectionPoint) Owner() *Node {
	return cp.owner
}

// LocalPosition resolves the anchor through its ancestor chain into diagram
// local space. Screen position additionally goes through the Viewport, so
// pan and zoom of the surface are reflected.
func (cp *ConnectionPoint) LocalPosition() Point {
	return Point{
		X: cp.owner.X + cp.OffsetX,
		Y: cp.owner.Y + cp.OffsetY,
	}
}

// ScreenPosition resolves the anchor all the way to screen space.
func (cp *ConnectionPoint) ScreenPosition(v *Viewport) (float64, float64) {
	return v.LocalToScreen(cp.LocalPosition())
}

// HitTest reports whether a screen-space pointer position falls inside the
// anchor's catchment circle.
func (cp *ConnectionPoint) HitTest(v *Viewport, sx, sy float64) bool {
	ax, ay := cp.ScreenPosition(v)
	return math.Hypot(sx-ax, sy-ay) <= cp.HitRadius
}

// newConnectionPoints builds the four side-midpoint anchors for a node.
// Anchors start hidden and at the normal radius.
func newConnectionPoints(n *Node) [4]*ConnectionPoint {
	pts := [4]*ConnectionPoint{
		{Side: SideTop, owner: n},
		{Side: SideRight, owner: n},
		{Side: SideBottom, owner: n},
		{Side: SideLeft, owner: n},
	}
	for _, cp := range pts {
		cp.HitRadius = anchorRadiusNormal
	}
	placeConnectionPoints(n, pts)
	return pts
}

// placeConnectionPoints pins each anchor to the midpoint of its side. Called
// on creation and again whenever the node is resized.
func placeConnectionPoints(n *Node, pts [4]*ConnectionPoint) {
	for _, cp := range pts {
		if cp == nil {
			continue
		}
		switch cp.Side {
		case SideTop:
			cp.OffsetX, cp.OffsetY = n.Width/2, 0
		case SideRight:
			cp.OffsetX, cp.OffsetY = n.Width, n.Height/2
		case SideBottom:
			cp.OffsetX, cp.OffsetY = n.Width/2, n.Height
		case SideLeft:
			cp.OffsetX, cp.OffsetY = 0, n.Height/2
		}
	}
}

// Anchor returns the node's connection point for a side, or nil when the
// node has lost it. Callers fall back to the node center in that case.
func (n *Node) Anchor(s Side) *ConnectionPoint {
	for _, cp := range n.anchors {
		if cp != nil && cp.Side == s {
			return cp
		}
	}
	return nil
}

// Anchors returns the node's four connection points in side order.
func (n *Node) Anchors() [4]*ConnectionPoint {
	return n.anchors
}

// SetAnchorsVisible drives the show/hide state of all four anchors. The
// caller owns the policy: anchors show while the node is hovered, pinned,
// or selected, so releasing hover must not hide anchors a pin still needs.
func (n *Node) SetAnchorsVisible(visible bool) {
	for _, cp := range n.anchors {
		if cp != nil {
			cp.Visible = visible
		}
	}
}

// AnchorAt returns the node's connection point whose catchment contains the
// screen position, or nil.
func (n *Node) AnchorAt(v *Viewport, sx, sy float64) *ConnectionPoint {
	for _, cp := range n.anchors {
		if cp != nil && cp.HitTest(v, sx, sy) {
			return cp
		}
	}
	return nil
}
