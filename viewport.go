package main

// Point is a position in diagram local space.
type Point struct {
	X, Y float64
}

// Viewport converts between screen space (terminal cells, as reported by
// pointer events) and the drawing surface's local space, which carries the
// surface's own pan offset and zoom scale.
//
// Conversions are snapshots. A converted point does not survive a later pan
// or zoom change, so consumers must recompute from live anchor and pointer
// positions instead of caching converted coordinates.
type Viewport struct {
	OffsetX float64 // local coordinate visible at the screen origin
	OffsetY float64
	Scale   float64
}

func NewViewport() *Viewport {
	return &Viewport{Scale: 1.0}
}

func (v *Viewport) ScreenToLocal(sx, sy float64) Point {
	return Point{
		X: sx/v.Scale + v.OffsetX,
		Y: sy/v.Scale + v.OffsetY,
	}
}

func (v *Viewport) LocalToScreen(p Point) (float64, float64) {
	return (p.X - v.OffsetX) * v.Scale, (p.Y - v.OffsetY) * v.Scale
}

// PanBy shifts the viewport by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.OffsetX += dx / v.Scale
	v.OffsetY += dy / v.Scale
}

// ZoomAt scales the viewport by factor while keeping the local point under
// the given screen position fixed, so zooming follows the pointer.
func (v *Viewport) ZoomAt(sx, sy, factor float64) {
	next := clampFloat(v.Scale*factor, minZoom, maxZoom)
	if next == v.Scale {
		return
	}
	pivot := v.ScreenToLocal(sx, sy)
	v.Scale = next
	v.OffsetX = pivot.X - sx/v.Scale
	v.OffsetY = pivot.Y - sy/v.Scale
}

func (v *Viewport) Reset() {
	v.OffsetX = 0
	v.OffsetY = 0
	v.Scale = 1.0
}
