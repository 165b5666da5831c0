package main

import "testing"

func testDiagram() *Diagram {
	return NewDiagram(NewHub(), NewTweenScheduler())
}

func TestConnectionPointsAtSideMidpoints(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a") // default 200x100

	tests := []struct {
		side Side
		x, y float64
	}{
		{SideTop, 100, 0},
		{SideRight, 200, 50},
		{SideBottom, 100, 100},
		{SideLeft, 0, 50},
	}
	for _, tt := range tests {
		cp := n.Anchor(tt.side)
		if cp == nil {
			t.Fatalf("missing %s anchor", tt.side)
		}
		p := cp.LocalPosition()
		if p.X != tt.x || p.Y != tt.y {
			t.Errorf("%s anchor: got (%v,%v), want (%v,%v)", tt.side, p.X, p.Y, tt.x, tt.y)
		}
	}
}

func TestAnchorsFollowNodeMove(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	d.MoveNode(n.ID, 50, 30)
	p := n.Anchor(SideRight).LocalPosition()
	if p.X != 250 || p.Y != 80 {
		t.Errorf("right anchor after move: got (%v,%v), want (250,80)", p.X, p.Y)
	}
}

func TestAnchorsFollowResize(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	n.SetSize(100, 60)
	p := n.Anchor(SideBottom).LocalPosition()
	if p.X != 50 || p.Y != 60 {
		t.Errorf("bottom anchor after resize: got (%v,%v), want (50,60)", p.X, p.Y)
	}
}

func TestAnchorScreenPositionUnderPanZoom(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	v := &Viewport{OffsetX: 100, OffsetY: 0, Scale: 2}
	sx, sy := n.Anchor(SideRight).ScreenPosition(v)
	if sx != 200 || sy != 100 {
		t.Errorf("screen position: got (%v,%v), want (200,100)", sx, sy)
	}
}

func TestAnchorHitTestRespectsRadius(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	v := NewViewport()
	cp := n.Anchor(SideRight) // at (200,50), radius 5

	if !cp.HitTest(v, 203, 52) {
		t.Error("expected hit just inside normal radius")
	}
	if cp.HitTest(v, 208, 50) {
		t.Error("expected miss outside normal radius")
	}

	d.SetAllAnchorRadius(anchorRadiusExpanded)
	if !cp.HitTest(v, 208, 50) {
		t.Error("expected hit inside expanded radius")
	}
}

func TestAnchorOwner(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	for _, cp := range n.Anchors() {
		if cp.Owner() != n {
			t.Errorf("%s anchor has wrong owner", cp.Side)
		}
	}
}

func TestSetAllAnchorRadiusIsUniform(t *testing.T) {
	d := testDiagram()
	d.AddNode(0, 0, "a")
	d.AddNode(400, 0, "b")
	d.AddNode(0, 300, "c")

	d.SetAllAnchorRadius(anchorRadiusExpanded)
	for _, n := range d.Nodes() {
		for _, cp := range n.Anchors() {
			if cp.HitRadius != anchorRadiusExpanded {
				t.Fatalf("node %d %s anchor: got radius %v, want %v",
					n.ID, cp.Side, cp.HitRadius, anchorRadiusExpanded)
			}
		}
	}

	// Reapplying the same value must not drift.
	d.SetAllAnchorRadius(anchorRadiusExpanded)
	for _, n := range d.Nodes() {
		for _, cp := range n.Anchors() {
			if cp.HitRadius != anchorRadiusExpanded {
				t.Fatal("radius drifted on reapplication")
			}
		}
	}
}

func TestLostAnchorsAreNonFatal(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	n.anchors = [4]*ConnectionPoint{}

	if cp := n.Anchor(SideRight); cp != nil {
		t.Errorf("Anchor on an anchorless node: got %v, want nil", cp)
	}
	if cp := n.AnchorAt(NewViewport(), 200, 50); cp != nil {
		t.Errorf("AnchorAt on an anchorless node: got %v, want nil", cp)
	}
	n.SetAnchorsVisible(true)
	n.SetSize(300, 200)
	d.SetAllAnchorRadius(anchorRadiusExpanded)
}

func TestNewNodeInheritsBlanketRadius(t *testing.T) {
	d := testDiagram()
	d.AddNode(0, 0, "a")
	d.SetAllAnchorRadius(anchorRadiusExpanded)

	late := d.AddNode(400, 0, "b")
	for _, cp := range late.Anchors() {
		if cp.HitRadius != anchorRadiusExpanded {
			t.Fatalf("%s anchor on late node: got radius %v, want %v",
				cp.Side, cp.HitRadius, anchorRadiusExpanded)
		}
	}

	d.SetAllAnchorRadius(anchorRadiusNormal)
	for _, cp := range d.AddNode(0, 300, "c").Anchors() {
		if cp.HitRadius != anchorRadiusNormal {
			t.Fatal("late node did not inherit the restored radius")
		}
	}
}
