package blueprint

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"sort"

	"github.com/milk9111/tilepaint/grid"
)

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrOccupied    = errors.New("cell already has a tile")
	ErrNoTile      = errors.New("no tile at cell")
)

// DefaultUndoLimit caps the number of strokes kept for Undo.
const DefaultUndoLimit = 100

// Tile is a ground tile placed on the blueprint.
type Tile struct {
	Name string
	Cell grid.Cell
}

// Blueprint is the authoritative tile map. A cell holds at most one tile.
type Blueprint struct {
	tiles  map[string]Tile
	bounds image.Rectangle

	undoStack []stroke
	maxUndo   int
	pending   stroke
	depth     int
}

// stroke records the tile each cell held before the first change made to
// it, so undoing restores the state from before the stroke began.
type stroke map[grid.Cell]*Tile

type Option func(*Blueprint)

// WithBounds restricts tiles to 0 <= x < width, 0 <= y < height.
func WithBounds(width, height int) Option {
	return func(b *Blueprint) {
		b.bounds = image.Rect(0, 0, width, height)
	}
}

func WithUndoLimit(n int) Option {
	return func(b *Blueprint) {
		b.maxUndo = n
	}
}

func New(opts ...Option) *Blueprint {
	b := &Blueprint{
		tiles:   make(map[string]Tile),
		maxUndo: DefaultUndoLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bounds returns the allowed area; the zero rectangle means unbounded.
func (b *Blueprint) Bounds() image.Rectangle {
	return b.bounds
}

// InBounds reports whether c may hold a tile.
func (b *Blueprint) InBounds(c grid.Cell) bool {
	if b.bounds.Empty() {
		return true
	}
	return image.Pt(c.X, c.Y).In(b.bounds)
}

// TileAt returns the name of the tile at c.
func (b *Blueprint) TileAt(c grid.Cell) (string, bool) {
	t, ok := b.tiles[c.Key()]
	return t.Name, ok
}

// CreateTile places a tile at an empty cell.
func (b *Blueprint) CreateTile(name string, c grid.Cell) error {
	if !b.InBounds(c) {
		return fmt.Errorf("blueprint: create %s at %s: %w", name, c.Key(), ErrOutOfBounds)
	}
	if prev, ok := b.tiles[c.Key()]; ok {
		return fmt.Errorf("blueprint: create %s at %s (has %s): %w", name, c.Key(), prev.Name, ErrOccupied)
	}
	b.record(c)
	b.tiles[c.Key()] = Tile{Name: name, Cell: c}
	b.flush()
	return nil
}

// RemoveTile deletes the tile at c.
func (b *Blueprint) RemoveTile(c grid.Cell) error {
	if !b.InBounds(c) {
		return fmt.Errorf("blueprint: remove at %s: %w", c.Key(), ErrOutOfBounds)
	}
	if _, ok := b.tiles[c.Key()]; !ok {
		return fmt.Errorf("blueprint: remove at %s: %w", c.Key(), ErrNoTile)
	}
	b.record(c)
	delete(b.tiles, c.Key())
	b.flush()
	return nil
}

func (b *Blueprint) Len() int {
	return len(b.tiles)
}

// All yields every tile, ordered by row then column.
func (b *Blueprint) All() iter.Seq2[grid.Cell, string] {
	return func(yield func(grid.Cell, string) bool) {
		for _, t := range b.Tiles() {
			if !yield(t.Cell, t.Name) {
				return
			}
		}
	}
}

// Tiles returns a copy of all tiles ordered by row then column.
func (b *Blueprint) Tiles() []Tile {
	out := make([]Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}

// BeginStroke groups the following changes into one undo step until the
// matching EndStroke. Strokes nest.
func (b *Blueprint) BeginStroke() {
	if b.depth == 0 {
		b.pending = make(stroke)
	}
	b.depth++
}

func (b *Blueprint) EndStroke() {
	if b.depth == 0 {
		return
	}
	b.depth--
	if b.depth == 0 {
		b.push(b.pending)
		b.pending = nil
	}
}

// Undo reverts the most recent stroke and reports whether there was one.
// It does nothing while a stroke is open.
func (b *Blueprint) Undo() bool {
	if b.depth > 0 || len(b.undoStack) == 0 {
		return false
	}
	idx := len(b.undoStack) - 1
	last := b.undoStack[idx]
	b.undoStack = b.undoStack[:idx]
	for c, prev := range last {
		if prev == nil {
			delete(b.tiles, c.Key())
			continue
		}
		b.tiles[c.Key()] = *prev
	}
	return true
}

func (b *Blueprint) UndoDepth() int {
	return len(b.undoStack)
}

// record remembers the tile at c the first time c changes in the current
// stroke. Changes made outside a stroke get a stroke of their own.
func (b *Blueprint) record(c grid.Cell) {
	if b.pending == nil {
		b.pending = make(stroke)
	}
	if _, seen := b.pending[c]; seen {
		return
	}
	if t, ok := b.tiles[c.Key()]; ok {
		prev := t
		b.pending[c] = &prev
		return
	}
	b.pending[c] = nil
}

func (b *Blueprint) flush() {
	if b.depth > 0 {
		return
	}
	b.push(b.pending)
	b.pending = nil
}

func (b *Blueprint) push(s stroke) {
	if len(s) == 0 || b.maxUndo <= 0 {
		return
	}
	if len(b.undoStack) >= b.maxUndo {
		b.undoStack = b.undoStack[1:]
	}
	b.undoStack = append(b.undoStack, s)
}
