package grid

import (
	"math"
	"strconv"

	"github.com/jakecoffman/cp"
)

// CellSize is the width and height of one grid cell in pixels.
const CellSize = 32

// Cell is a discrete grid coordinate.
type Cell struct {
	X, Y int
}

// Key returns the "x,y" form used for membership lookups.
func (c Cell) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// FootprintOffsets returns the size*size offsets covered by a brush, relative
// to its anchor, in row-major order. Offsets are symmetric about the anchor,
// so even sizes produce half-cell offsets.
func FootprintOffsets(size int) []cp.Vector {
	if size < 1 {
		return nil
	}
	offset := float64(size)/2 - 0.5
	out := make([]cp.Vector, size*size)
	for i := range out {
		out[i] = cp.Vector{
			X: float64(i%size) - offset,
			Y: float64(i/size) - offset,
		}
	}
	return out
}

// ToGridCell returns the cell enclosing a world position.
func ToGridCell(pos cp.Vector) Cell {
	return Cell{
		X: int(math.Floor(pos.X / CellSize)),
		Y: int(math.Floor(pos.Y / CellSize)),
	}
}

// CellCenter returns the world position of the center of c.
func CellCenter(c Cell) cp.Vector {
	return cp.Vector{
		X: (float64(c.X) + 0.5) * CellSize,
		Y: (float64(c.Y) + 0.5) * CellSize,
	}
}

// AnchorFor returns the brush anchor for a cursor cell. Odd sizes center on
// the cursor cell, even sizes on its top-left corner, so every footprint
// cell lands on a whole grid cell.
func AnchorFor(cursor Cell, size int) cp.Vector {
	if size%2 == 1 {
		return CellCenter(cursor)
	}
	return cp.Vector{X: float64(cursor.X) * CellSize, Y: float64(cursor.Y) * CellSize}
}

// FootprintCells returns the cells covered by a brush of the given size at
// anchor, in the same order as FootprintOffsets.
func FootprintCells(anchor cp.Vector, size int) []Cell {
	offsets := FootprintOffsets(size)
	cells := make([]Cell, len(offsets))
	base := anchor.Mult(1.0 / CellSize)
	for i, o := range offsets {
		cells[i] = Cell{
			X: int(math.Floor(base.X + o.X)),
			Y: int(math.Floor(base.Y + o.Y)),
		}
	}
	return cells
}

// HitArea returns the pointer hit-test region of a brush: a square of
// size*CellSize pixels centered on anchor.
func HitArea(anchor cp.Vector, size int) cp.BB {
	half := float64(size) * CellSize / 2
	return cp.BB{
		L: anchor.X - half,
		B: anchor.Y - half,
		R: anchor.X + half,
		T: anchor.Y + half,
	}
}
