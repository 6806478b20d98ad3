package paint

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/input"
	"github.com/milk9111/tilepaint/tiles"
	"github.com/sirupsen/logrus"
)

var ErrMissingCollaborator = errors.New("paint: missing collaborator")

const (
	DefaultGhostAlpha float32 = 0.5
	// DefaultIconOffset keeps the icon preview clear of the pointer.
	DefaultIconOffset = 16
)

// Env is what the host shares with every paint tool it activates.
type Env struct {
	Document Document
	Renderer Renderer
	Catalog  *tiles.Catalog
	// Tiles holds the visuals of committed tiles. Defaults to a new
	// registry on Renderer.
	Tiles   *TileVisuals
	Cursor  *grid.Cursor
	Pointer *input.Hub
	// Size is the brush size shared across activations.
	Size *Size

	GhostAlpha float32
	// IconOffset places the icon relative to the pointer. Nil means
	// DefaultIconOffset on both axes.
	IconOffset *cp.Vector
}

// Tool is an active paint tool. Close tears it down.
type Tool struct {
	*Controller

	icon       Visual
	sub        *input.Subscription
	iconOffset cp.Vector
	pointer    *input.Hub
}

// Activate creates a paint tool for tileName at the shared cursor: it dims
// the other entities, attaches the icon preview to the pointer, and draws
// the ghost.
func Activate(env Env, tileName string) (*Tool, error) {
	if env.Document == nil || env.Renderer == nil {
		return nil, ErrMissingCollaborator
	}
	tile, err := env.Catalog.Lookup(tileName)
	if err != nil {
		return nil, fmt.Errorf("paint: activate: %w", err)
	}
	if env.Tiles == nil {
		env.Tiles = NewTileVisuals(env.Renderer)
	}
	if env.Cursor == nil {
		env.Cursor = grid.NewCursor()
	}
	if env.Size == nil {
		env.Size = NewSize(DefaultSize)
	}
	if env.GhostAlpha == 0 {
		env.GhostAlpha = DefaultGhostAlpha
	}
	iconOffset := cp.Vector{X: DefaultIconOffset, Y: DefaultIconOffset}
	if env.IconOffset != nil {
		iconOffset = *env.IconOffset
	}

	c := &Controller{
		brush:      Brush{Tile: tile, Size: env.Size},
		doc:        env.Document,
		renderer:   env.Renderer,
		tiles:      env.Tiles,
		cursor:     env.Cursor,
		catalog:    env.Catalog,
		ghostAlpha: env.GhostAlpha,
	}
	t := &Tool{
		Controller: c,
		iconOffset: iconOffset,
		pointer:    env.Pointer,
	}

	env.Renderer.SetEntitiesTransparent(true)

	t.icon = env.Renderer.CreateIconVisual(tile.Item)
	t.icon.SetVisible(false)
	t.sub = env.Pointer.Subscribe(t.moveIcon)
	t.moveIcon(env.Pointer.Position())

	c.reposition()
	c.redraw()

	logger().WithFields(logrus.Fields{
		"tile": tile.Name,
		"size": env.Size.Get(),
	}).Debug("paint: tool activated")
	return t, nil
}

func (t *Tool) moveIcon(pos cp.Vector) {
	if t.icon == nil {
		return
	}
	p := pos.Add(t.iconOffset)
	t.icon.SetPosition(p.X, p.Y)
}

// Hide hides the brush while the pointer is off the canvas: opacity is
// restored and the icon preview follows the pointer instead.
func (t *Tool) Hide() {
	if t.closed || t.hidden {
		return
	}
	t.hidden = true
	t.setGhostVisible(false)
	t.renderer.SetEntitiesTransparent(false)
	t.moveIcon(t.pointer.Position())
	t.icon.SetVisible(true)
}

// Show reverses Hide.
func (t *Tool) Show() {
	if t.closed || !t.hidden {
		return
	}
	t.hidden = false
	t.setGhostVisible(true)
	t.renderer.SetEntitiesTransparent(true)
	t.icon.SetVisible(false)
}

func (t *Tool) Hidden() bool {
	return t.hidden
}

// Closed reports whether Close has run.
func (t *Tool) Closed() bool {
	return t.closed
}

// Close restores entity opacity, releases held buttons, removes the ghost,
// detaches the pointer listener and frees the icon. It may be called more
// than once.
func (t *Tool) Close() {
	if t == nil || t.closed {
		return
	}
	t.release()
	t.closed = true
	t.renderer.SetEntitiesTransparent(false)
	t.clearGhost()
	t.sub.Close()
	if t.icon != nil {
		t.renderer.DestroyVisual(t.icon)
		t.icon = nil
	}
	logger().WithField("tile", t.brush.Tile.Name).Debug("paint: tool closed")
}
