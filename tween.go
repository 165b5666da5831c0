package main

import "time"

// TweenHandle cancels a running tween. Every started tween hands one back
// so a disposed node can never be mutated by a stale animation callback.
type TweenHandle struct {
	id int
	s  *TweenScheduler
}

func (h *TweenHandle) Cancel() {
	if h == nil || h.s == nil {
		return
	}
	delete(h.s.tweens, h.id)
	h.s = nil
}

type tween struct {
	id       int
	owner    int // node ID the tween targets, -1 for none
	elapsed  time.Duration
	duration time.Duration
	update   func(t float64) // t advances 0..1
}

// TweenScheduler steps per-frame effects (anchor fades, selection pulses)
// from host-loop tick messages instead of self-rescheduling closures.
type TweenScheduler struct {
	nextID int
	tweens map[int]*tween
}

func NewTweenScheduler() *TweenScheduler {
	return &TweenScheduler{tweens: make(map[int]*tween)}
}

// Start begins a tween bound to a node ID (-1 for unowned effects). The
// update callback receives linear progress in [0,1] and fires immediately
// with 0 so the first frame reflects the starting state.
func (s *TweenScheduler) Start(owner int, d time.Duration, update func(t float64)) *TweenHandle {
	if d <= 0 {
		update(1)
		return &TweenHandle{}
	}
	tw := &tween{id: s.nextID, owner: owner, duration: d, update: update}
	s.nextID++
	s.tweens[tw.id] = tw
	update(0)
	return &TweenHandle{id: tw.id, s: s}
}

// Step advances all tweens by dt, firing updates and dropping any that
// finished.
func (s *TweenScheduler) Step(dt time.Duration) {
	for id, tw := range s.tweens {
		tw.elapsed += dt
		if tw.elapsed >= tw.duration {
			delete(s.tweens, id)
			tw.update(1)
			continue
		}
		tw.update(float64(tw.elapsed) / float64(tw.duration))
	}
}

// CancelOwner drops every tween bound to a node, called on node disposal.
func (s *TweenScheduler) CancelOwner(owner int) {
	for id, tw := range s.tweens {
		if tw.owner == owner {
			delete(s.tweens, id)
		}
	}
}

func (s *TweenScheduler) Active() bool {
	return len(s.tweens) > 0
}
