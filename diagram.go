package main

import (
	"log"
	"strings"
)

// Node is a labeled box on the canvas. Position and size are in diagram
// local space.
type Node struct {
	ID     int
	X      float64
	Y      float64
	Width  float64
	Height float64
	Lines  []string

	anchors [4]*ConnectionPoint
}

func (n *Node) Label() string {
	return strings.Join(n.Lines, "\n")
}

func (n *Node) SetLabel(text string) {
	n.Lines = strings.Split(text, "\n")
}

// Center returns the node's bounding-box center in local space.
func (n *Node) Center() Point {
	return Point{X: n.X + n.Width/2, Y: n.Y + n.Height/2}
}

// Contains reports whether a local-space point falls inside the node.
func (n *Node) Contains(p Point) bool {
	return p.X >= n.X && p.X < n.X+n.Width &&
		p.Y >= n.Y && p.Y < n.Y+n.Height
}

func (n *Node) SetSize(w, h float64) {
	if w < minNodeWidth {
		w = minNodeWidth
	}
	if h < minNodeHeight {
		h = minNodeHeight
	}
	n.Width = w
	n.Height = h
	placeConnectionPoints(n, n.anchors)
}

// Edge is a persistent connection between two nodes. Start and End are the
// last-computed endpoints in local space; the recorded sides are the source
// of truth and endpoints are recomputed from them on refresh.
type Edge struct {
	ID       int
	FromID   int
	ToID     int
	FromSide Side
	ToSide   Side
	Start    Point
	End      Point
	Label    string
	ArrowTo  bool
}

// NodeMeta is the typed side record hung off a node by stable ID, replacing
// ad hoc keyed metadata on scene objects.
type NodeMeta struct {
	Pinned      bool
	AnchorAlpha float64 // 0..1, animated by the tween scheduler
	Accent      int     // palette index for the terminal renderer
}

// Diagram is the scene: nodes, edges, and per-node metadata. All mutation
// happens synchronously inside event handlers on the host loop, so there is
// no locking.
type Diagram struct {
	nodes []*Node
	edges []*Edge
	meta  map[int]*NodeMeta

	// ArrowByDefault controls whether newly created edges get an arrowhead.
	ArrowByDefault bool

	// anchorRadius is the current blanket hit-radius mode, stamped onto
	// every new node's anchors so none can lag the rest.
	anchorRadius float64

	nextNodeID int
	nextEdgeID int

	hub    *Hub
	tweens *TweenScheduler
}

func NewDiagram(hub *Hub, tweens *TweenScheduler) *Diagram {
	return &Diagram{
		meta:           make(map[int]*NodeMeta),
		ArrowByDefault: true,
		anchorRadius:   anchorRadiusNormal,
		hub:            hub,
		tweens:         tweens,
	}
}

func (d *Diagram) Nodes() []*Node { return d.nodes }
func (d *Diagram) Edges() []*Edge { return d.edges }

func (d *Diagram) AddNode(x, y float64, label string) *Node {
	n := &Node{
		ID:     d.nextNodeID,
		X:      x,
		Y:      y,
		Width:  defaultNodeWidth,
		Height: defaultNodeHeight,
	}
	d.nextNodeID++
	n.SetLabel(label)
	n.anchors = newConnectionPoints(n)
	for _, cp := range n.anchors {
		cp.HitRadius = d.anchorRadius
	}
	d.nodes = append(d.nodes, n)
	d.meta[n.ID] = &NodeMeta{}
	d.hub.Publish(Event{Topic: "node.added", NodeID: n.ID})
	return n
}

func (d *Diagram) Node(id int) *Node {
	for _, n := range d.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (d *Diagram) Meta(id int) *NodeMeta {
	if m, ok := d.meta[id]; ok {
		return m
	}
	// Unknown IDs get a throwaway record so callers never nil-check.
	return &NodeMeta{}
}

func (d *Diagram) MoveNode(id int, x, y float64) {
	n := d.Node(id)
	if n == nil {
		return
	}
	n.X = x
	n.Y = y
	d.RefreshEdgesFor(id)
	d.hub.Publish(Event{Topic: "node.moved", NodeID: id})
}

// RemoveNode deletes a node, its connection points, every edge touching it,
// and any animation still targeting it. External deletion logic relies on
// EdgeTouches for the same dangling-edge sweep.
func (d *Diagram) RemoveNode(id int) {
	idx := -1
	for i, n := range d.nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	d.nodes = append(d.nodes[:idx], d.nodes[idx+1:]...)
	delete(d.meta, id)
	d.tweens.CancelOwner(id)

	kept := d.edges[:0]
	for _, e := range d.edges {
		if d.EdgeTouches(e, id) {
			d.hub.Publish(Event{Topic: "edge.removed", EdgeID: e.ID})
			continue
		}
		kept = append(kept, e)
	}
	d.edges = kept
	d.hub.Publish(Event{Topic: "node.removed", NodeID: id})
}

// EdgeTouches reports whether an edge has the node as either endpoint.
func (d *Diagram) EdgeTouches(e *Edge, nodeID int) bool {
	return e.FromID == nodeID || e.ToID == nodeID
}

// AddEdge materializes a persistent edge between two anchors. Source and
// target must belong to different nodes; the session state machine enforces
// that before calling here, and it is re-checked as a last line of defense.
func (d *Diagram) AddEdge(from, to *ConnectionPoint, label string) *Edge {
	if from == nil || to == nil {
		return nil
	}
	if from.Owner().ID == to.Owner().ID {
		log.Printf("rejecting self-connection on node %d", from.Owner().ID)
		return nil
	}
	e := &Edge{
		ID:       d.nextEdgeID,
		FromID:   from.Owner().ID,
		ToID:     to.Owner().ID,
		FromSide: from.Side,
		ToSide:   to.Side,
		Label:    label,
		ArrowTo:  d.ArrowByDefault,
	}
	d.nextEdgeID++
	d.edges = append(d.edges, e)
	d.RefreshEdge(e)
	d.hub.Publish(Event{Topic: "edge.created", EdgeID: e.ID})
	return e
}

func (d *Diagram) Edge(id int) *Edge {
	for _, e := range d.edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (d *Diagram) RemoveEdge(id int) {
	for i, e := range d.edges {
		if e.ID == id {
			d.edges = append(d.edges[:i], d.edges[i+1:]...)
			d.hub.Publish(Event{Topic: "edge.removed", EdgeID: id})
			return
		}
	}
}

// NodeAt returns the topmost node containing the local-space point, or nil.
// Later nodes render above earlier ones, so scan back to front.
func (d *Diagram) NodeAt(p Point) *Node {
	for i := len(d.nodes) - 1; i >= 0; i-- {
		if d.nodes[i].Contains(p) {
			return d.nodes[i]
		}
	}
	return nil
}

// AnchorAt returns the first visible-for-hit-testing anchor whose catchment
// contains the screen position, together with its owner.
func (d *Diagram) AnchorAt(v *Viewport, sx, sy float64) *ConnectionPoint {
	for i := len(d.nodes) - 1; i >= 0; i-- {
		if cp := d.nodes[i].AnchorAt(v, sx, sy); cp != nil {
			return cp
		}
	}
	return nil
}

// SetAllAnchorRadius applies one hit radius to every connection point of
// every node. The radius is a blanket mode, never a per-node setting, and
// reapplying the same value is a no-op by construction. The mode is
// remembered so nodes added later come up with the same radius.
func (d *Diagram) SetAllAnchorRadius(r float64) {
	d.anchorRadius = r
	for _, n := range d.nodes {
		for _, cp := range n.anchors {
			if cp != nil {
				cp.HitRadius = r
			}
		}
	}
}
