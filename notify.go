package main

// Event is a named state-change notification consumed by presentation
// collaborators (status bar, panels). In-process only.
type Event struct {
	Topic  string
	NodeID int
	EdgeID int
	Detail string
}

// Hub is a process-wide publish/subscribe channel for state-change
// notifications. Delivery is synchronous on the event-handling context, so
// subscribers run inline and no locking is involved.
type Hub struct {
	subs map[string][]func(Event)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string][]func(Event))}
}

func (h *Hub) Subscribe(topic string, fn func(Event)) {
	h.subs[topic] = append(h.subs[topic], fn)
}

func (h *Hub) Publish(ev Event) {
	for _, fn := range h.subs[ev.Topic] {
		fn(ev)
	}
}
