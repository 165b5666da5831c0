package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// The stage input router: every pointer and key event for the canvas comes
// through here and is dispatched to the session state machine, selection,
// and node-drag handling. It also owns the blanket anchor-radius policy.

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	buf := m.currentBuffer()
	if buf == nil {
		return m, nil
	}
	sx, sy := float64(msg.X), float64(msg.Y)*cellAspect
	m.pointerX, m.pointerY = sx, sy

	var cmd tea.Cmd
	switch msg.Action {
	case tea.MouseActionMotion:
		cmd = m.pointerMove(buf, sx, sy)

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			buf.viewport.ZoomAt(sx, sy, 1.1)
		case tea.MouseButtonWheelDown:
			buf.viewport.ZoomAt(sx, sy, 1/1.1)
		case tea.MouseButtonLeft:
			m.pointerDown(buf, sx, sy)
		}

	case tea.MouseActionRelease:
		m.dragNode = -1
	}
	return m, cmd
}

// pointerMove forwards motion to the active session (converting to local
// space fresh each move), drives node dragging, and tracks hover.
func (m *model) pointerMove(buf *Buffer, sx, sy float64) tea.Cmd {
	local := buf.viewport.ScreenToLocal(sx, sy)

	if buf.interaction.Active() {
		buf.interaction.PointerMove(local)
		return nil
	}

	if m.dragNode >= 0 {
		buf.diagram.MoveNode(m.dragNode, local.X-m.dragOffX, local.Y-m.dragOffY)
		return nil
	}

	return m.updateHover(buf, local)
}

// pointerDown arbitrates a press: anchors first, then node bodies, then the
// background. While a session is active a connection-point press is only
// ever "complete" or "cancel", never a second start.
func (m *model) pointerDown(buf *Buffer, sx, sy float64) {
	cp := buf.diagram.AnchorAt(buf.viewport, sx, sy)

	if buf.interaction.Active() {
		if cp != nil {
			buf.interaction.CompleteAt(cp)
		} else {
			buf.interaction.Cancel("background")
		}
		m.applySessionRadius(buf)
		m.refreshAnchorVisibility(buf)
		return
	}

	if cp != nil {
		buf.interaction.Begin(cp)
		m.applySessionRadius(buf)
		return
	}

	local := buf.viewport.ScreenToLocal(sx, sy)
	if n := buf.diagram.NodeAt(local); n != nil {
		m.selectNode(buf, n.ID)
		m.dragNode = n.ID
		m.dragOffX = local.X - n.X
		m.dragOffY = local.Y - n.Y
		return
	}

	// Background press while idle clears selection, never errors.
	m.clearSelection(buf)
}

// handleEscape cancels an active session, otherwise clears selection.
func (m *model) handleEscape() {
	buf := m.currentBuffer()
	if buf == nil {
		return
	}
	if buf.interaction.Active() {
		buf.interaction.Cancel("escape")
		m.applySessionRadius(buf)
		m.refreshAnchorVisibility(buf)
		return
	}
	m.clearSelection(buf)
}

// applySessionRadius toggles every node's anchor catchment between normal
// and expanded in lockstep, driven solely by whether a session is active.
// Reapplying the same mode leaves the radii untouched.
func (m *model) applySessionRadius(buf *Buffer) {
	r := anchorRadiusNormal
	if buf.interaction.Active() {
		r = anchorRadiusExpanded
	}
	buf.diagram.SetAllAnchorRadius(r)
}

func (m *model) selectNode(buf *Buffer, id int) {
	if m.selectedNode == id {
		return
	}
	m.selectedNode = id
	buf.hub.Publish(Event{Topic: "node.selected", NodeID: id})
	m.refreshAnchorVisibility(buf)
}

func (m *model) clearSelection(buf *Buffer) {
	m.selectedNode = -1
	buf.hub.Publish(Event{Topic: "selection.cleared"})
	m.refreshAnchorVisibility(buf)
}

// updateHover retargets the hovered node and starts anchor fades through
// the tween scheduler. Returns a tick command while any tween runs.
func (m *model) updateHover(buf *Buffer, local Point) tea.Cmd {
	var overID = -1
	if n := buf.diagram.NodeAt(local); n != nil {
		overID = n.ID
	}
	if overID == m.hoverNode {
		return nil
	}
	prev := m.hoverNode
	m.hoverNode = overID
	m.refreshAnchorVisibility(buf)

	if overID >= 0 {
		meta := buf.diagram.Meta(overID)
		buf.tweens.Start(overID, 150*time.Millisecond, func(t float64) {
			meta.AnchorAlpha = t
		})
	}
	if prev >= 0 && buf.diagram.Node(prev) != nil {
		meta := buf.diagram.Meta(prev)
		from := meta.AnchorAlpha
		buf.tweens.Start(prev, 150*time.Millisecond, func(t float64) {
			meta.AnchorAlpha = from * (1 - t)
		})
	}
	return m.tickCmd(buf)
}

// refreshAnchorVisibility applies the visibility policy. Anchors show while
// the node is hovered, pinned, or selected; a logical OR, so losing hover
// alone cannot hide anchors a pin or selection still requires.
func (m *model) refreshAnchorVisibility(buf *Buffer) {
	hoverShows := m.config == nil || m.config.AnchorsOnHover
	for _, n := range buf.diagram.Nodes() {
		visible := (hoverShows && n.ID == m.hoverNode) ||
			n.ID == m.selectedNode ||
			buf.diagram.Meta(n.ID).Pinned
		n.SetAnchorsVisible(visible)
	}
}
