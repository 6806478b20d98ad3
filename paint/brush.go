package paint

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/input"
	"github.com/milk9111/tilepaint/tiles"
)

// Brush is the paint tool's state: what it paints, where, how big, and
// which buttons are down.
type Brush struct {
	Tile   tiles.Type
	Size   *Size
	Anchor cp.Vector

	primaryHeld   bool
	secondaryHeld bool
}

// Cells returns the footprint at the current anchor and size. It is
// computed fresh on every call so a resize applies to the next commit.
func (b *Brush) Cells() []grid.Cell {
	return grid.FootprintCells(b.Anchor, b.Size.Get())
}

func (b *Brush) HitArea() cp.BB {
	return grid.HitArea(b.Anchor, b.Size.Get())
}

func (b *Brush) Holding(button input.Button) bool {
	switch button {
	case input.ButtonPrimary:
		return b.primaryHeld
	case input.ButtonSecondary:
		return b.secondaryHeld
	default:
		return false
	}
}

func (b *Brush) anyHeld() bool {
	return b.primaryHeld || b.secondaryHeld
}

func (b *Brush) setHeld(button input.Button, held bool) {
	switch button {
	case input.ButtonPrimary:
		b.primaryHeld = held
	case input.ButtonSecondary:
		b.secondaryHeld = held
	}
}
