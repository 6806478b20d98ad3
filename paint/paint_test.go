package paint

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/blueprint"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/input"
	"github.com/milk9111/tilepaint/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisual struct {
	name    string
	icon    bool
	x, y    float64
	alpha   float32
	visible bool
}

func (v *fakeVisual) SetPosition(x, y float64) { v.x, v.y = x, y }
func (v *fakeVisual) SetAlpha(a float32)       { v.alpha = a }
func (v *fakeVisual) SetVisible(visible bool)  { v.visible = visible }

type fakeRenderer struct {
	live        map[*fakeVisual]bool
	transparent bool
	destroyed   int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{live: make(map[*fakeVisual]bool)}
}

func (r *fakeRenderer) CreateVisual(name string, pos cp.Vector) Visual {
	v := &fakeVisual{name: name, x: pos.X, y: pos.Y, alpha: 1, visible: true}
	r.live[v] = true
	return v
}

func (r *fakeRenderer) CreateIconVisual(item string) Visual {
	v := &fakeVisual{name: item, icon: true, alpha: 1, visible: true}
	r.live[v] = true
	return v
}

func (r *fakeRenderer) DestroyVisual(v Visual) {
	fv := v.(*fakeVisual)
	if !r.live[fv] {
		panic("visual destroyed twice")
	}
	delete(r.live, fv)
	r.destroyed++
}

func (r *fakeRenderer) SetEntitiesTransparent(enabled bool) {
	r.transparent = enabled
}

// ghosts returns the live non-icon visuals not tracked by tv.
func (r *fakeRenderer) ghosts(tv *TileVisuals) []*fakeVisual {
	tracked := make(map[Visual]bool)
	for _, v := range tv.byKey {
		tracked[v] = true
	}
	var out []*fakeVisual
	for v := range r.live {
		if !v.icon && !tracked[v] {
			out = append(out, v)
		}
	}
	return out
}

func (r *fakeRenderer) icons() []*fakeVisual {
	var out []*fakeVisual
	for v := range r.live {
		if v.icon {
			out = append(out, v)
		}
	}
	return out
}

type harness struct {
	env      Env
	doc      *blueprint.Blueprint
	renderer *fakeRenderer
	hub      *input.Hub
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	catalog, err := tiles.LoadCatalog(tiles.DefaultCatalog)
	require.NoError(t, err)
	doc := blueprint.New()
	r := newFakeRenderer()
	hub := input.NewHub()
	return &harness{
		env: Env{
			Document: doc,
			Renderer: r,
			Catalog:  catalog,
			Tiles:    NewTileVisuals(r),
			Cursor:   grid.NewCursor(),
			Pointer:  hub,
			Size:     NewSize(DefaultSize),
		},
		doc:      doc,
		renderer: r,
		hub:      hub,
	}
}

func (h *harness) activate(t *testing.T, name string) *Tool {
	t.Helper()
	tool, err := Activate(h.env, name)
	require.NoError(t, err)
	t.Cleanup(tool.Close)
	return tool
}

func moveTo(t *testing.T, tool *Tool, c grid.Cell) {
	t.Helper()
	require.NoError(t, tool.OnCursorMove(grid.CellCenter(c)))
}

func TestSizeClamps(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	for range 30 {
		tool.IncreaseSize()
	}
	assert.Equal(t, MaxSize, tool.Size())
	assert.False(t, tool.IncreaseSize())

	for range 30 {
		tool.DecreaseSize()
	}
	assert.Equal(t, MinSize, tool.Size())
	assert.False(t, tool.DecreaseSize())

	assert.Equal(t, 1, NewSize(0).Get())
	assert.Equal(t, MaxSize, NewSize(99).Get())
}

func TestSizeChangeRebuildsGhost(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")
	require.Len(t, h.renderer.ghosts(h.env.Tiles), 4)

	require.True(t, tool.IncreaseSize())
	ghosts := h.renderer.ghosts(h.env.Tiles)
	require.Len(t, ghosts, 9)
	for _, g := range ghosts {
		assert.Equal(t, DefaultGhostAlpha, g.alpha)
		assert.True(t, g.visible)
		assert.Equal(t, "concrete", g.name)
	}

	require.True(t, tool.DecreaseSize())
	require.True(t, tool.DecreaseSize())
	assert.Len(t, h.renderer.ghosts(h.env.Tiles), 1)
	assert.Len(t, tool.Cells(), 1)
}

func TestGhostSitsOnFootprintCells(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	for _, size := range []int{2, 3} {
		for tool.Size() < size {
			tool.IncreaseSize()
		}
		moveTo(t, tool, grid.Cell{X: 5, Y: 7})

		want := make(map[grid.Cell]bool)
		for _, c := range tool.Cells() {
			want[c] = true
		}
		require.Contains(t, want, grid.Cell{X: 5, Y: 7})
		for _, g := range h.renderer.ghosts(h.env.Tiles) {
			c := grid.ToGridCell(cp.Vector{X: g.x, Y: g.y})
			assert.True(t, want[c], "size %d: ghost at %v outside footprint", size, c)
			assert.Equal(t, grid.CellCenter(c), cp.Vector{X: g.x, Y: g.y})
		}
	}
}

func TestPaintOverwritesExistingTile(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.doc.CreateTile("landfill", grid.Cell{X: 0, Y: 0}))
	h.env.Tiles.Put("landfill", grid.Cell{X: 0, Y: 0})

	tool := h.activate(t, "concrete")
	require.NoError(t, tool.OnPointerDown(input.ButtonPrimary))
	tool.OnPointerUp(input.ButtonPrimary)

	name, ok := h.doc.TileAt(grid.Cell{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, "concrete", name)
	assert.Equal(t, 4, h.doc.Len())
	assert.Equal(t, 4, h.env.Tiles.Len())
}

func TestEraseIsIdempotent(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	require.NoError(t, tool.CommitPaint())
	require.Equal(t, 4, h.doc.Len())

	require.NoError(t, tool.CommitErase())
	assert.Equal(t, 0, h.doc.Len())
	assert.Equal(t, 0, h.env.Tiles.Len())

	require.NoError(t, tool.CommitErase())
	assert.Equal(t, 0, h.doc.Len())
}

func TestPaintIsIdempotent(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	require.NoError(t, tool.CommitPaint())
	require.NoError(t, tool.CommitPaint())
	assert.Equal(t, 4, h.doc.Len())
	assert.Equal(t, 4, h.env.Tiles.Len())
}

func TestDragPaint(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	require.NoError(t, tool.HandleEvent(input.Event{Kind: input.PointerMove, Pos: grid.CellCenter(grid.Cell{})}))
	require.NoError(t, tool.HandleEvent(input.Event{Kind: input.PointerDown, Button: input.ButtonPrimary, Pos: tool.Anchor()}))
	assert.Equal(t, StatePainting, tool.State())
	assert.Equal(t, 4, h.doc.Len())

	moveTo(t, tool, grid.Cell{X: 1, Y: 0})
	moveTo(t, tool, grid.Cell{X: 2, Y: 0})
	require.NoError(t, tool.HandleEvent(input.Event{Kind: input.PointerUp, Button: input.ButtonPrimary}))

	assert.Equal(t, StateHover, tool.State())
	assert.Equal(t, 8, h.doc.Len())
	assert.Equal(t, 8, h.env.Tiles.Len())
	for x := -1; x <= 2; x++ {
		for y := -1; y <= 0; y++ {
			name, ok := h.doc.TileAt(grid.Cell{X: x, Y: y})
			assert.True(t, ok, "cell %d,%d", x, y)
			assert.Equal(t, "concrete", name)
		}
	}

	// Moving with no button held paints nothing.
	moveTo(t, tool, grid.Cell{X: 10, Y: 10})
	assert.Equal(t, 8, h.doc.Len())
}

func TestDragIsOneUndoStep(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	require.NoError(t, tool.OnPointerDown(input.ButtonPrimary))
	moveTo(t, tool, grid.Cell{X: 1, Y: 0})
	moveTo(t, tool, grid.Cell{X: 2, Y: 0})
	tool.OnPointerUpOutside(input.ButtonPrimary)

	require.Equal(t, 1, h.doc.UndoDepth())
	require.True(t, h.doc.Undo())
	assert.Equal(t, 0, h.doc.Len())

	h.env.Tiles.Sync(h.doc.All())
	assert.Equal(t, 0, h.env.Tiles.Len())
}

func TestEraseRunsBeforePaint(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	require.NoError(t, tool.OnPointerDown(input.ButtonPrimary))
	require.NoError(t, tool.OnPointerDown(input.ButtonSecondary))
	assert.Equal(t, StatePaintErase, tool.State())

	moveTo(t, tool, grid.Cell{X: 1, Y: 0})
	for _, c := range tool.Cells() {
		name, ok := h.doc.TileAt(c)
		assert.True(t, ok, "cell %v erased after paint", c)
		assert.Equal(t, "concrete", name)
	}
	// Column x=-1 was painted by the press and then left behind; the
	// secondary press erased it before the move.
	_, ok := h.doc.TileAt(grid.Cell{X: -1, Y: 0})
	assert.False(t, ok)

	tool.OnPointerUp(input.ButtonPrimary)
	assert.Equal(t, StateErasing, tool.State())
	moveTo(t, tool, grid.Cell{X: 1, Y: 0})
	for _, c := range tool.Cells() {
		_, ok := h.doc.TileAt(c)
		assert.False(t, ok)
	}
}

func TestPointerDownOutsideHitAreaIgnored(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")

	far := grid.CellCenter(grid.Cell{X: 20, Y: 20})
	require.NoError(t, tool.HandleEvent(input.Event{Kind: input.PointerDown, Button: input.ButtonPrimary, Pos: far}))
	assert.Equal(t, StateHover, tool.State())
	assert.Equal(t, 0, h.doc.Len())

	require.NoError(t, tool.HandleEvent(input.Event{Kind: input.PointerDown, Button: input.ButtonMiddle, Pos: tool.Anchor()}))
	assert.Equal(t, StateHover, tool.State())
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name    string
		tile    string
		rotated bool
		want    string
	}{
		{name: "left to right", tile: "hazard-concrete-left", rotated: true, want: "hazard-concrete-right"},
		{name: "right to left", tile: "hazard-concrete-right", rotated: true, want: "hazard-concrete-left"},
		{name: "refined", tile: "refined-hazard-concrete-left", rotated: true, want: "refined-hazard-concrete-right"},
		{name: "plain tile", tile: "concrete", rotated: false, want: "concrete"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			tool := h.activate(t, tc.tile)

			assert.Equal(t, tc.rotated, tool.Rotate())
			assert.Equal(t, tc.want, tool.Tile().Name)
			for _, g := range h.renderer.ghosts(h.env.Tiles) {
				assert.Equal(t, tc.want, g.name)
			}

			require.NoError(t, tool.CommitPaint())
			name, ok := h.doc.TileAt(tool.Cells()[0])
			require.True(t, ok)
			assert.Equal(t, tc.want, name)
		})
	}
}

func TestRotateTwiceRestoresTile(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "hazard-concrete-left")
	require.True(t, tool.Rotate())
	require.True(t, tool.Rotate())
	assert.Equal(t, "hazard-concrete-left", tool.Tile().Name)
}

func TestActivateUnknownTile(t *testing.T) {
	h := newHarness(t)
	_, err := Activate(h.env, "lava")
	require.ErrorIs(t, err, tiles.ErrUnknownTile)
	assert.Equal(t, 0, h.hub.Len())
	assert.Empty(t, h.renderer.live)
	assert.False(t, h.renderer.transparent)
}

func TestActivateMissingDocument(t *testing.T) {
	h := newHarness(t)
	h.env.Document = nil
	_, err := Activate(h.env, "concrete")
	require.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestCloseRestoresEverything(t *testing.T) {
	h := newHarness(t)
	before := h.hub.Len()

	tool, err := Activate(h.env, "concrete")
	require.NoError(t, err)
	assert.True(t, h.renderer.transparent)
	assert.Equal(t, before+1, h.hub.Len())
	require.Len(t, h.renderer.icons(), 1)

	for x := 1; x <= 3; x++ {
		c := grid.Cell{X: x}
		h.hub.Move(grid.CellCenter(c))
		moveTo(t, tool, c)
	}
	assert.Equal(t, before+1, h.hub.Len())
	assert.Zero(t, h.doc.Len())

	require.NoError(t, tool.OnPointerDown(input.ButtonPrimary))
	tool.Close()

	assert.Equal(t, before, h.hub.Len())
	assert.False(t, h.renderer.transparent)
	assert.Empty(t, h.renderer.icons())
	assert.Empty(t, h.renderer.ghosts(h.env.Tiles))
	assert.Equal(t, StateIdle, tool.State())
	assert.True(t, tool.Closed())
	// Committed tiles outlive the tool.
	assert.Equal(t, 4, h.doc.Len())
	assert.Equal(t, 4, h.env.Tiles.Len())
	// The open stroke was closed.
	assert.Equal(t, 1, h.doc.UndoDepth())

	destroyed := h.renderer.destroyed
	tool.Close()
	assert.Equal(t, before, h.hub.Len())
	assert.Equal(t, destroyed, h.renderer.destroyed)

	require.NoError(t, tool.OnCursorMove(grid.CellCenter(grid.Cell{X: 4})))
	require.NoError(t, tool.OnPointerDown(input.ButtonPrimary))
	assert.False(t, tool.IncreaseSize())
	assert.Equal(t, 4, h.doc.Len())
}

func TestIconFollowsPointer(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "stone-path")
	icons := h.renderer.icons()
	require.Len(t, icons, 1)
	icon := icons[0]
	assert.Equal(t, "stone-brick", icon.name)
	assert.False(t, icon.visible)

	h.hub.Move(cp.Vector{X: 100, Y: 50})
	assert.Equal(t, 116.0, icon.x)
	assert.Equal(t, 66.0, icon.y)

	tool.Hide()
	assert.True(t, icon.visible)
	assert.False(t, h.renderer.transparent)
	for _, g := range h.renderer.ghosts(h.env.Tiles) {
		assert.False(t, g.visible)
	}
	assert.False(t, tool.Contains(tool.Anchor()))

	// Resizing while hidden keeps the new ghost hidden.
	require.True(t, tool.IncreaseSize())
	for _, g := range h.renderer.ghosts(h.env.Tiles) {
		assert.False(t, g.visible)
	}

	tool.Show()
	assert.False(t, icon.visible)
	assert.True(t, h.renderer.transparent)
	for _, g := range h.renderer.ghosts(h.env.Tiles) {
		assert.True(t, g.visible)
	}
	assert.True(t, tool.Contains(tool.Anchor()))
}

func TestZeroIconOffset(t *testing.T) {
	h := newHarness(t)
	h.env.IconOffset = &cp.Vector{}
	h.activate(t, "concrete")
	icon := h.renderer.icons()[0]

	h.hub.Move(cp.Vector{X: 100, Y: 50})
	assert.Equal(t, 100.0, icon.x)
	assert.Equal(t, 50.0, icon.y)
}

func TestHiddenBrushDoesNotPaint(t *testing.T) {
	h := newHarness(t)
	tool := h.activate(t, "concrete")
	require.NoError(t, tool.OnPointerDown(input.ButtonPrimary))
	require.Equal(t, 4, h.doc.Len())

	tool.Hide()
	moveTo(t, tool, grid.Cell{X: 5})
	moveTo(t, tool, grid.Cell{X: 9})
	assert.Equal(t, 4, h.doc.Len())
	assert.Equal(t, grid.Cell{X: 9}, h.env.Cursor.Cell())

	tool.Show()
	moveTo(t, tool, grid.Cell{X: 12})
	assert.Equal(t, 8, h.doc.Len())
	_, ok := h.doc.TileAt(grid.Cell{X: 12})
	assert.True(t, ok)
	_, ok = h.doc.TileAt(grid.Cell{X: 5})
	assert.False(t, ok)
}

func TestSizeSharedAcrossActivations(t *testing.T) {
	h := newHarness(t)
	first, err := Activate(h.env, "concrete")
	require.NoError(t, err)
	first.IncreaseSize()
	first.IncreaseSize()
	first.Close()

	second := h.activate(t, "landfill")
	assert.Equal(t, 4, second.Size())
	assert.Len(t, second.Cells(), 16)
}

func TestCursorSharedAcrossActivations(t *testing.T) {
	h := newHarness(t)
	first, err := Activate(h.env, "concrete")
	require.NoError(t, err)
	moveTo(t, first, grid.Cell{X: 3, Y: 4})
	first.Close()

	second := h.activate(t, "landfill")
	assert.Contains(t, second.Cells(), grid.Cell{X: 3, Y: 4})
}

type failingDoc struct {
	*blueprint.Blueprint
	err error
}

func (d failingDoc) CreateTile(string, grid.Cell) error {
	return d.err
}

func TestDocumentErrorsPassThrough(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("boom")
	h.env.Document = failingDoc{Blueprint: h.doc, err: boom}
	tool := h.activate(t, "concrete")

	err := tool.OnPointerDown(input.ButtonPrimary)
	assert.Same(t, boom, err)
	assert.Equal(t, 0, h.env.Tiles.Len())
}

func TestPaintClipsToDocumentBounds(t *testing.T) {
	h := newHarness(t)
	h.doc = blueprint.New(blueprint.WithBounds(4, 4))
	h.env.Document = h.doc
	tool := h.activate(t, "concrete")

	// Size 2 at cell 0,0 reaches into row and column -1.
	require.NoError(t, tool.CommitPaint())
	assert.Equal(t, 1, h.doc.Len())
	assert.Equal(t, 1, h.env.Tiles.Len())
	_, ok := h.doc.TileAt(grid.Cell{X: 0, Y: 0})
	assert.True(t, ok)

	require.NoError(t, tool.CommitErase())
	assert.Equal(t, 0, h.doc.Len())

	// Entirely outside: nothing to do.
	moveTo(t, tool, grid.Cell{X: 10, Y: 10})
	require.NoError(t, tool.CommitPaint())
	assert.Equal(t, 0, h.doc.Len())
}

func TestOutOfBoundsErrorPassesThrough(t *testing.T) {
	h := newHarness(t)
	// Hide InBounds so the document itself rejects the edit.
	h.env.Document = struct{ Document }{blueprint.New(blueprint.WithBounds(4, 4))}
	tool := h.activate(t, "concrete")

	err := tool.CommitPaint()
	require.ErrorIs(t, err, blueprint.ErrOutOfBounds)
	assert.Equal(t, 0, h.env.Tiles.Len())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "PaintErase", StatePaintErase.String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestSetLoggerNilIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, logger())
}
