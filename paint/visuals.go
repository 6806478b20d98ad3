package paint

import (
	"iter"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/grid"
)

// Document is the blueprint the tool paints into.
type Document interface {
	TileAt(c grid.Cell) (name string, ok bool)
	CreateTile(name string, c grid.Cell) error
	RemoveTile(c grid.Cell) error
}

// Stroker is implemented by documents that group the changes made between
// a button press and its release, for example into one undo step.
type Stroker interface {
	BeginStroke()
	EndStroke()
}

// Bounded is implemented by documents with a limited area. Cells outside
// it are skipped by commits instead of failing them.
type Bounded interface {
	InBounds(c grid.Cell) bool
}

// Renderer draws tiles, ghosts and the icon preview.
type Renderer interface {
	CreateVisual(name string, pos cp.Vector) Visual
	DestroyVisual(v Visual)
	SetEntitiesTransparent(enabled bool)
	CreateIconVisual(item string) Visual
}

// Visual is a handle to something the renderer draws.
type Visual interface {
	SetPosition(x, y float64)
	SetAlpha(a float32)
	SetVisible(visible bool)
}

// TileVisuals tracks the visual drawn for each committed tile, keyed by
// cell. It outlives individual tools.
type TileVisuals struct {
	renderer Renderer
	byKey    map[string]Visual
}

func NewTileVisuals(r Renderer) *TileVisuals {
	return &TileVisuals{renderer: r, byKey: make(map[string]Visual)}
}

// Put draws name at c, replacing whatever was drawn there.
func (tv *TileVisuals) Put(name string, c grid.Cell) {
	tv.Remove(c)
	center := grid.CellCenter(c)
	tv.byKey[c.Key()] = tv.renderer.CreateVisual(name, center)
}

// Remove destroys the visual at c and reports whether there was one.
func (tv *TileVisuals) Remove(c grid.Cell) bool {
	v, ok := tv.byKey[c.Key()]
	if !ok {
		return false
	}
	tv.renderer.DestroyVisual(v)
	delete(tv.byKey, c.Key())
	return true
}

func (tv *TileVisuals) Has(c grid.Cell) bool {
	_, ok := tv.byKey[c.Key()]
	return ok
}

func (tv *TileVisuals) Len() int {
	return len(tv.byKey)
}

// Sync redraws every tile from tiles, dropping visuals for cells that are
// no longer present. Used after the document changes behind the tool's
// back, such as an undo.
func (tv *TileVisuals) Sync(tiles iter.Seq2[grid.Cell, string]) {
	for key, v := range tv.byKey {
		tv.renderer.DestroyVisual(v)
		delete(tv.byKey, key)
	}
	for c, name := range tiles {
		tv.Put(name, c)
	}
}
