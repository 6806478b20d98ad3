package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

var pollButtons = []struct {
	button Button
	mouse  ebiten.MouseButton
}{
	{ButtonPrimary, ebiten.MouseButtonLeft},
	{ButtonSecondary, ebiten.MouseButtonRight},
}

// Frame is the raw pointer state sampled once per update.
type Frame struct {
	X, Y    int
	Pressed map[Button]bool
}

// Poller turns per-frame pointer state into events on a Queue.
type Poller struct {
	Queue *Queue
	// Inside reports whether a release happened over the target; releases
	// elsewhere are pushed as PointerUpOutside. Nil means always inside.
	Inside func(pos cp.Vector) bool

	started bool
	prevX   int
	prevY   int
	prev    map[Button]bool
}

func NewPoller(q *Queue) *Poller {
	return &Poller{Queue: q, prev: make(map[Button]bool)}
}

// Poll samples ebiten's cursor and mouse buttons.
func (p *Poller) Poll() {
	x, y := ebiten.CursorPosition()
	frame := Frame{X: x, Y: y, Pressed: make(map[Button]bool, len(pollButtons))}
	for _, b := range pollButtons {
		frame.Pressed[b.button] = ebiten.IsMouseButtonPressed(b.mouse)
	}
	p.Update(frame)
}

// Update diffs frame against the previous one. Moves are pushed before
// button changes so presses act on the new position.
func (p *Poller) Update(frame Frame) {
	if p.prev == nil {
		p.prev = make(map[Button]bool)
	}
	pos := cp.Vector{X: float64(frame.X), Y: float64(frame.Y)}
	if !p.started || frame.X != p.prevX || frame.Y != p.prevY {
		p.started = true
		p.prevX, p.prevY = frame.X, frame.Y
		p.Queue.Push(Event{Kind: PointerMove, Pos: pos})
	}
	for _, b := range pollButtons {
		pressed := frame.Pressed[b.button]
		was := p.prev[b.button]
		switch {
		case pressed && !was:
			p.Queue.Push(Event{Kind: PointerDown, Button: b.button, Pos: pos})
		case !pressed && was:
			kind := PointerUp
			if p.Inside != nil && !p.Inside(pos) {
				kind = PointerUpOutside
			}
			p.Queue.Push(Event{Kind: kind, Button: b.button, Pos: pos})
		}
		p.prev[b.button] = pressed
	}
}
