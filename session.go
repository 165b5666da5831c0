package main

import "log"

type SessionState int

const (
	SessionIdle SessionState = iota
	SessionCreating
)

// PreviewLine is the transient line shown while a connection is being
// created, running from the source anchor to the live pointer position. It
// is non-interactive and rendered above all nodes, partially transparent.
type PreviewLine struct {
	Start Point
	End   Point
}

// Interaction owns the single in-flight edge-creation session for one
// canvas. Constructed once per canvas and injected into collaborators, so
// independent canvases (and tests) never share session state.
type Interaction struct {
	d   *Diagram
	hub *Hub

	state     SessionState
	fromNode  *Node
	fromPoint *ConnectionPoint
	preview   *PreviewLine
}

func NewInteraction(d *Diagram, hub *Hub) *Interaction {
	return &Interaction{d: d, hub: hub}
}

func (it *Interaction) State() SessionState { return it.state }
func (it *Interaction) Active() bool        { return it.state == SessionCreating }

// Preview returns the live preview line, or nil when no session is active.
func (it *Interaction) Preview() *PreviewLine { return it.preview }

// Source returns the anchor the active session started from.
func (it *Interaction) Source() *ConnectionPoint { return it.fromPoint }

// Begin starts a session from an anchor. A pointerdown on a connection
// point while a session is already active is never a second start; the
// router interprets it as complete-or-cancel before calling here.
func (it *Interaction) Begin(cp *ConnectionPoint) {
	if it.state != SessionIdle {
		log.Printf("ignoring session start while one is active")
		return
	}
	if cp == nil || cp.Owner() == nil {
		return
	}
	anchor := cp.LocalPosition()
	it.state = SessionCreating
	it.fromNode = cp.Owner()
	it.fromPoint = cp
	it.preview = &PreviewLine{Start: anchor, End: anchor}
	it.hub.Publish(Event{Topic: "session.started", NodeID: it.fromNode.ID, Detail: cp.Side.String()})
}

// PointerMove redraws the preview's free end at a local-space position.
// Nothing else about the preview changes. The caller converts from screen
// space per move; converted points are never cached across pan/zoom.
func (it *Interaction) PointerMove(local Point) {
	if it.state != SessionCreating || it.preview == nil {
		return
	}
	it.preview.End = local
}

// CompleteAt ends the session at a target anchor. A target on the session's
// own source node is a silent cancellation (self-loops are rejected), not a
// user-visible error. Returns the created edge, or nil on any cancellation.
func (it *Interaction) CompleteAt(cp *ConnectionPoint) *Edge {
	if it.state != SessionCreating {
		log.Printf("completion invoked with no active session")
		return nil
	}
	if it.fromPoint == nil {
		// Unreachable through the state machine, checked anyway.
		log.Printf("active session has no recorded source, aborting")
		it.Cancel("missing source")
		return nil
	}
	if cp == nil || cp.Owner() == nil {
		it.Cancel("no target")
		return nil
	}
	if cp.Owner().ID == it.fromNode.ID {
		it.Cancel("self connection")
		return nil
	}

	from := it.fromPoint
	it.discard()
	edge := it.d.AddEdge(from, cp, "")
	if edge != nil {
		it.hub.Publish(Event{Topic: "session.completed", EdgeID: edge.ID})
	}
	return edge
}

// Cancel tears the session down without creating anything: background
// click, Escape, self-loop, or disposal of the source node.
func (it *Interaction) Cancel(reason string) {
	if it.state != SessionCreating {
		return
	}
	it.discard()
	it.hub.Publish(Event{Topic: "session.cancelled", Detail: reason})
}

// NodeRemoved is the disposal hook: destroying the source node mid-session
// cancels the session instead of leaving it pointing at a dead anchor.
func (it *Interaction) NodeRemoved(nodeID int) {
	if it.state == SessionCreating && it.fromNode != nil && it.fromNode.ID == nodeID {
		it.Cancel("source node removed")
	}
}

// discard drops the preview and returns to Idle.
func (it *Interaction) discard() {
	it.state = SessionIdle
	it.fromNode = nil
	it.fromPoint = nil
	it.preview = nil
}
