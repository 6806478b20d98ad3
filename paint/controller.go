package paint

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/input"
	"github.com/milk9111/tilepaint/tiles"
)

// State is the controller's interaction state, derived from the hold flags.
type State int

const (
	StateIdle State = iota
	StateHover
	StatePainting
	StateErasing
	StatePaintErase
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateHover:
		return "Hover"
	case StatePainting:
		return "Painting"
	case StateErasing:
		return "Erasing"
	case StatePaintErase:
		return "PaintErase"
	default:
		return "Unknown"
	}
}

// Controller is the paint tool state machine. Primary drags paint, secondary
// drags erase; with both held every step erases first and then paints, so
// freshly painted tiles survive.
//
// A Controller is driven from a single goroutine.
type Controller struct {
	brush    Brush
	doc      Document
	renderer Renderer
	tiles    *TileVisuals
	cursor   *grid.Cursor
	catalog  *tiles.Catalog

	ghost      []Visual
	ghostAlpha float32
	hidden     bool
	closed     bool
}

func (c *Controller) State() State {
	switch {
	case c.closed:
		return StateIdle
	case c.brush.primaryHeld && c.brush.secondaryHeld:
		return StatePaintErase
	case c.brush.primaryHeld:
		return StatePainting
	case c.brush.secondaryHeld:
		return StateErasing
	default:
		return StateHover
	}
}

// Brush returns a copy of the current brush state.
func (c *Controller) Brush() Brush {
	return c.brush
}

func (c *Controller) Tile() tiles.Type {
	return c.brush.Tile
}

func (c *Controller) Size() int {
	return c.brush.Size.Get()
}

// Anchor returns the world position of the brush center.
func (c *Controller) Anchor() cp.Vector {
	return c.brush.Anchor
}

// Cells returns the cells currently under the brush.
func (c *Controller) Cells() []grid.Cell {
	return c.brush.Cells()
}

// HitArea returns the region that accepts pointer presses. It always
// matches the drawn brush.
func (c *Controller) HitArea() cp.BB {
	return c.brush.HitArea()
}

// Contains reports whether pos (world coordinates) is over the brush.
func (c *Controller) Contains(pos cp.Vector) bool {
	if c.closed || c.hidden {
		return false
	}
	return c.brush.HitArea().ContainsVect(pos)
}

// OnPointerDown starts painting (primary) or erasing (secondary) and applies
// it once, so a click without movement still paints.
func (c *Controller) OnPointerDown(button input.Button) error {
	if c.closed {
		return nil
	}
	switch button {
	case input.ButtonPrimary, input.ButtonSecondary:
	default:
		return nil
	}
	if !c.brush.anyHeld() {
		c.beginStroke()
	}
	c.brush.setHeld(button, true)
	if button == input.ButtonPrimary {
		return c.CommitPaint()
	}
	return c.CommitErase()
}

// OnPointerUp ends the hold of button.
func (c *Controller) OnPointerUp(button input.Button) {
	if !c.brush.Holding(button) {
		return
	}
	c.brush.setHeld(button, false)
	if !c.brush.anyHeld() {
		c.endStroke()
	}
}

// OnPointerUpOutside is OnPointerUp for releases off the brush; it still ends
// the hold so the brush cannot get stuck painting.
func (c *Controller) OnPointerUpOutside(button input.Button) {
	c.OnPointerUp(button)
}

// OnCursorMove moves the brush under pos (world coordinates), then erases
// and paints at the new footprint for whichever buttons are held. A hidden
// brush follows the cursor without committing.
func (c *Controller) OnCursorMove(pos cp.Vector) error {
	if c.closed {
		return nil
	}
	c.cursor.Move(pos)
	c.reposition()
	if c.hidden {
		return nil
	}
	if c.brush.secondaryHeld {
		if err := c.CommitErase(); err != nil {
			return err
		}
	}
	if c.brush.primaryHeld {
		return c.CommitPaint()
	}
	return nil
}

// HandleEvent dispatches a pointer event in world coordinates. Presses
// outside the hit area are ignored.
func (c *Controller) HandleEvent(ev input.Event) error {
	switch ev.Kind {
	case input.PointerMove:
		return c.OnCursorMove(ev.Pos)
	case input.PointerDown:
		if !c.Contains(ev.Pos) {
			return nil
		}
		return c.OnPointerDown(ev.Button)
	case input.PointerUp:
		c.OnPointerUp(ev.Button)
	case input.PointerUpOutside:
		c.OnPointerUpOutside(ev.Button)
	}
	return nil
}

// IncreaseSize grows the brush by one cell, up to MaxSize.
func (c *Controller) IncreaseSize() bool {
	if c.closed || !c.brush.Size.Increase() {
		return false
	}
	c.resized()
	return true
}

// DecreaseSize shrinks the brush by one cell, down to MinSize.
func (c *Controller) DecreaseSize() bool {
	if c.closed || !c.brush.Size.Decrease() {
		return false
	}
	c.resized()
	return true
}

func (c *Controller) resized() {
	c.reposition()
	c.redraw()
	logger().WithField("size", c.brush.Size.Get()).Debug("paint: brush resized")
}

// Rotate swaps an oriented tile for its mirror image. Tiles without an
// orientation are left alone and Rotate returns false.
func (c *Controller) Rotate() bool {
	if c.closed {
		return false
	}
	flipped, ok := c.catalog.Flipped(c.brush.Tile)
	if !ok {
		return false
	}
	c.brush.Tile = flipped
	c.redraw()
	return true
}

// CommitPaint writes the brush tile into every footprint cell. An existing
// tile is removed first, so a cell never holds more than one tile. Cells
// outside a Bounded document are skipped.
func (c *Controller) CommitPaint() error {
	name := c.brush.Tile.Name
	for _, cell := range c.footprint() {
		if _, ok := c.doc.TileAt(cell); ok {
			if err := c.doc.RemoveTile(cell); err != nil {
				return err
			}
			c.tiles.Remove(cell)
		}
		if err := c.doc.CreateTile(name, cell); err != nil {
			return err
		}
		c.tiles.Put(name, cell)
	}
	return nil
}

// CommitErase removes every tile under the brush. Empty cells are skipped.
func (c *Controller) CommitErase() error {
	for _, cell := range c.footprint() {
		if _, ok := c.doc.TileAt(cell); !ok {
			continue
		}
		if err := c.doc.RemoveTile(cell); err != nil {
			return err
		}
		c.tiles.Remove(cell)
	}
	return nil
}

// footprint returns the brush cells the document can hold.
func (c *Controller) footprint() []grid.Cell {
	cells := c.brush.Cells()
	b, ok := c.doc.(Bounded)
	if !ok {
		return cells
	}
	out := cells[:0]
	for _, cell := range cells {
		if b.InBounds(cell) {
			out = append(out, cell)
		}
	}
	return out
}

// reposition re-anchors the brush on the shared cursor at the current size.
func (c *Controller) reposition() {
	size := c.brush.Size.Get()
	c.brush.Anchor = grid.AnchorFor(c.cursor.Cell(), size)
	offsets := grid.FootprintOffsets(size)
	if len(offsets) != len(c.ghost) {
		return
	}
	for i, o := range offsets {
		p := c.ghostPosition(o)
		c.ghost[i].SetPosition(p.X, p.Y)
	}
}

// redraw rebuilds the ghost, one visual per footprint offset.
func (c *Controller) redraw() {
	c.clearGhost()
	offsets := grid.FootprintOffsets(c.brush.Size.Get())
	c.ghost = make([]Visual, 0, len(offsets))
	for _, o := range offsets {
		v := c.renderer.CreateVisual(c.brush.Tile.Name, c.ghostPosition(o))
		v.SetAlpha(c.ghostAlpha)
		v.SetVisible(!c.hidden)
		c.ghost = append(c.ghost, v)
	}
}

func (c *Controller) ghostPosition(offset cp.Vector) cp.Vector {
	return c.brush.Anchor.Add(offset.Mult(grid.CellSize))
}

func (c *Controller) clearGhost() {
	for _, v := range c.ghost {
		c.renderer.DestroyVisual(v)
	}
	c.ghost = nil
}

func (c *Controller) setGhostVisible(visible bool) {
	for _, v := range c.ghost {
		v.SetVisible(visible)
	}
}

func (c *Controller) beginStroke() {
	if s, ok := c.doc.(Stroker); ok {
		s.BeginStroke()
	}
}

func (c *Controller) endStroke() {
	if s, ok := c.doc.(Stroker); ok {
		s.EndStroke()
	}
}

// release drops both holds, closing an open stroke.
func (c *Controller) release() {
	if !c.brush.anyHeld() {
		return
	}
	c.brush.primaryHeld = false
	c.brush.secondaryHeld = false
	c.endStroke()
}
