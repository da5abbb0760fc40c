package ecs

// Event is a generic world event payload.
type Event struct {
	Type string
	Data any
}

const EventAIStateChanged = "ai_state_changed"

// AIStateChanged is pushed by the AI system whenever a controller changes
// state.
type AIStateChanged struct {
	Entity   Entity
	From     string
	To       string
	Distance float64
}

// EventQueue is a FIFO queue cleared at the end of every world update.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
