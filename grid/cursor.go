package grid

import "github.com/jakecoffman/cp"

// Cursor is the grid position under the pointer. One Cursor is shared by the
// host and every tool it activates.
type Cursor struct {
	cell Cell
	pos  cp.Vector
}

func NewCursor() *Cursor {
	return &Cursor{}
}

// Cell returns the current cursor cell.
func (c *Cursor) Cell() Cell {
	if c == nil {
		return Cell{}
	}
	return c.cell
}

// Position returns the last world position passed to Move.
func (c *Cursor) Position() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return c.pos
}

func (c *Cursor) Set(cell Cell) {
	if c == nil {
		return
	}
	c.cell = cell
	c.pos = CellCenter(cell)
}

// Move records a world position and reports whether the cursor cell changed.
func (c *Cursor) Move(pos cp.Vector) bool {
	if c == nil {
		return false
	}
	c.pos = pos
	cell := ToGridCell(pos)
	if cell == c.cell {
		return false
	}
	c.cell = cell
	return true
}
