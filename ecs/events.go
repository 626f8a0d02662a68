package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventQueue collects events published by systems during a tick and
// delivers them to subscribers when the scheduler flushes at tick end.
type EventQueue struct {
	items []Event
	subs  []func(Event)
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Subscribe registers a callback invoked for every event at flush time.
func (q *EventQueue) Subscribe(fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	q.subs = append(q.subs, fn)
}

// Drain returns all pending events and clears the queue without
// notifying subscribers. Useful in tests and tools.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil || len(q.items) == 0 {
		return
	}
	items := q.items
	q.items = nil
	for _, evt := range items {
		for _, fn := range q.subs {
			fn(evt)
		}
	}
}
