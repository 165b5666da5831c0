package main

import (
	"testing"
	"time"
)

func TestTweenRunsToCompletion(t *testing.T) {
	s := NewTweenScheduler()
	var value float64
	s.Start(1, 100*time.Millisecond, func(p float64) { value = p })

	if value != 0 {
		t.Errorf("initial update: got %v, want 0", value)
	}
	s.Step(50 * time.Millisecond)
	if value != 0.5 {
		t.Errorf("halfway: got %v, want 0.5", value)
	}
	s.Step(50 * time.Millisecond)
	if value != 1 {
		t.Errorf("finished: got %v, want 1", value)
	}
	if s.Active() {
		t.Error("scheduler still active after the tween finished")
	}
}

func TestCancelledTweenStopsUpdating(t *testing.T) {
	s := NewTweenScheduler()
	var value float64
	h := s.Start(1, 100*time.Millisecond, func(p float64) { value = p })

	s.Step(25 * time.Millisecond)
	h.Cancel()
	before := value
	s.Step(75 * time.Millisecond)

	if value != before {
		t.Errorf("cancelled tween kept updating: %v -> %v", before, value)
	}
	// Double cancel must be harmless.
	h.Cancel()
}

func TestCancelOwnerDropsAllItsTweens(t *testing.T) {
	s := NewTweenScheduler()
	var a, b float64
	s.Start(7, time.Second, func(p float64) { a = p })
	s.Start(7, time.Second, func(p float64) { a = p })
	s.Start(8, time.Second, func(p float64) { b = p })

	s.CancelOwner(7)
	s.Step(500 * time.Millisecond)

	if a != 0 {
		t.Errorf("disposed owner's tween still ran: %v", a)
	}
	if b != 0.5 {
		t.Errorf("unrelated tween affected: got %v, want 0.5", b)
	}
}

// Removing a node mid-animation must leave no callback that can touch it.
func TestNodeRemovalCancelsItsTweens(t *testing.T) {
	d := testDiagram()
	n := d.AddNode(0, 0, "a")
	meta := d.Meta(n.ID)

	d.tweens.Start(n.ID, time.Second, func(p float64) { meta.AnchorAlpha = p })
	d.RemoveNode(n.ID)
	d.tweens.Step(time.Second)

	if meta.AnchorAlpha != 0 {
		t.Error("stale animation mutated a disposed node's metadata")
	}
	if d.tweens.Active() {
		t.Error("scheduler still holds tweens for the removed node")
	}
}

func TestZeroDurationTweenFiresOnce(t *testing.T) {
	s := NewTweenScheduler()
	var value float64
	h := s.Start(1, 0, func(p float64) { value = p })
	if value != 1 {
		t.Errorf("got %v, want 1", value)
	}
	if s.Active() {
		t.Error("zero-duration tween left scheduled")
	}
	h.Cancel()
}
