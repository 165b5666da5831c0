package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

// Side identifies which edge of a node a connection point sits on.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Anchor hit radii, in screen units. The radius is a process-wide mode:
// every connection point on every node carries the same value at any instant.
const (
	anchorRadiusNormal   = 5.0
	anchorRadiusExpanded = 10.0
)

const (
	defaultNodeWidth  = 200.0
	defaultNodeHeight = 100.0
	minNodeWidth      = 40.0
	minNodeHeight     = 24.0
)

// Arrowhead dimensions and edge label offset, in local units.
const (
	arrowLength  = 12.0
	arrowWidth   = 8.0
	edgeLabelGap = 8.0
)

const (
	minZoom = 0.25
	maxZoom = 4.0
)

// Terminal cells are roughly twice as tall as wide. Screen space is kept
// square (1 unit = 1 cell width); pointer rows and rendered rows are
// converted through this aspect so geometry stays undistorted.
const cellAspect = 2.0
