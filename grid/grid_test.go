package grid

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFootprintOffsets(t *testing.T) {
	for size := 1; size <= 20; size++ {
		offsets := FootprintOffsets(size)
		require.Len(t, offsets, size*size, "size %d", size)

		var sum cp.Vector
		seen := make(map[cp.Vector]struct{}, len(offsets))
		for _, o := range offsets {
			sum = sum.Add(o)
			seen[o] = struct{}{}
		}
		require.Len(t, seen, size*size, "size %d has duplicate offsets", size)
		for _, o := range offsets {
			_, ok := seen[o.Neg()]
			assert.True(t, ok, "size %d: missing mirror of %v", size, o)
		}
		assert.Equal(t, cp.Vector{}, sum, "size %d not symmetric", size)
		assert.Equal(t, offsets, FootprintOffsets(size), "size %d ordering changed", size)
	}
}

func TestFootprintOffsetsOrder(t *testing.T) {
	cases := []struct {
		name string
		size int
		want []cp.Vector
	}{
		{"one", 1, []cp.Vector{{X: 0, Y: 0}}},
		{"two", 2, []cp.Vector{
			{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5},
			{X: -0.5, Y: 0.5}, {X: 0.5, Y: 0.5},
		}},
		{"three_first_row", 3, []cp.Vector{
			{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
			{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
			{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FootprintOffsets(c.size))
		})
	}
	assert.Nil(t, FootprintOffsets(0))
}

func TestToGridCell(t *testing.T) {
	cases := []struct {
		pos  cp.Vector
		want Cell
	}{
		{cp.Vector{X: 0, Y: 0}, Cell{0, 0}},
		{cp.Vector{X: 31.9, Y: 31.9}, Cell{0, 0}},
		{cp.Vector{X: 32, Y: 64}, Cell{1, 2}},
		{cp.Vector{X: -0.1, Y: -33}, Cell{-1, -2}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToGridCell(c.pos), "pos %v", c.pos)
	}
}

func TestFootprintCellsFollowCursor(t *testing.T) {
	cursor := Cell{X: 4, Y: -2}
	for size := 1; size <= 20; size++ {
		cells := FootprintCells(AnchorFor(cursor, size), size)
		require.Len(t, cells, size*size)

		unique := make(map[string]struct{}, len(cells))
		minX, minY := cells[0].X, cells[0].Y
		maxX, maxY := minX, minY
		for _, c := range cells {
			unique[c.Key()] = struct{}{}
			minX, maxX = min(minX, c.X), max(maxX, c.X)
			minY, maxY = min(minY, c.Y), max(maxY, c.Y)
		}
		assert.Len(t, unique, size*size, "size %d has duplicate cells", size)
		assert.Equal(t, size-1, maxX-minX)
		assert.Equal(t, size-1, maxY-minY)
		assert.Contains(t, unique, cursor.Key(), "size %d does not cover the cursor", size)
	}
}

func TestFootprintCellsSizeTwo(t *testing.T) {
	got := FootprintCells(AnchorFor(Cell{}, 2), 2)
	assert.Equal(t, []Cell{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}}, got)
}

func TestHitArea(t *testing.T) {
	anchor := AnchorFor(Cell{X: 2, Y: 2}, 3)
	bb := HitArea(anchor, 3)
	assert.InDelta(t, 3*CellSize, bb.R-bb.L, 1e-9)
	assert.InDelta(t, 3*CellSize, bb.T-bb.B, 1e-9)
	assert.True(t, bb.ContainsVect(anchor))
	assert.True(t, bb.ContainsVect(CellCenter(Cell{X: 1, Y: 3})))
	assert.False(t, bb.ContainsVect(CellCenter(Cell{X: 4, Y: 2})))
}

func TestCellKey(t *testing.T) {
	assert.Equal(t, "3,-7", Cell{X: 3, Y: -7}.Key())
}

func TestCursorMove(t *testing.T) {
	c := NewCursor()
	assert.False(t, c.Move(cp.Vector{X: 5, Y: 5}))
	assert.True(t, c.Move(cp.Vector{X: 40, Y: 5}))
	assert.Equal(t, Cell{X: 1, Y: 0}, c.Cell())
	assert.False(t, c.Move(cp.Vector{X: 50, Y: 20}))
	assert.Equal(t, cp.Vector{X: 50, Y: 20}, c.Position())

	c.Set(Cell{X: -1, Y: 2})
	assert.Equal(t, Cell{X: -1, Y: 2}, c.Cell())
	assert.Equal(t, CellCenter(Cell{X: -1, Y: 2}), c.Position())
}
