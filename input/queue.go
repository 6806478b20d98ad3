package input

import "github.com/jakecoffman/cp"

// Button identifies a pointer button using the DOM numbering.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// EventKind identifies pointer event types.
type EventKind string

const (
	PointerDown      EventKind = "pointerdown"
	PointerUp        EventKind = "pointerup"
	PointerUpOutside EventKind = "pointerupoutside"
	PointerMove      EventKind = "pointermove"
)

// Event is a pointer event. Pos is in the coordinate space of whoever
// pushed it; the poller pushes screen coordinates.
type Event struct {
	Kind   EventKind
	Button Button
	Pos    cp.Vector
}

// Queue is a simple FIFO queue.
type Queue struct {
	items []Event
}

// Push adds an event.
func (q *Queue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
