package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/blueprint"
	"github.com/milk9111/tilepaint/config"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/input"
	"github.com/milk9111/tilepaint/paint"
	"github.com/milk9111/tilepaint/render"
	"github.com/milk9111/tilepaint/tiles"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

// Editor is the ebiten game hosting the paint tool.
type Editor struct {
	cfg *config.Config
	log logrus.FieldLogger

	ui      *ebitenui.UI
	toolBar *ToolBar
	palette *Palette

	catalog  *tiles.Catalog
	watcher  *tiles.Watcher
	doc      *blueprint.Blueprint
	images   *render.Images
	renderer *render.Renderer
	camera   *render.Camera

	queue  *input.Queue
	poller *input.Poller
	hub    *input.Hub

	env  paint.Env
	tool *paint.Tool

	clipboard bool
	panning   bool
	panX      int
	panY      int
}

func NewEditor(cfg *config.Config, catalog *tiles.Catalog, log logrus.FieldLogger) (*Editor, error) {
	images := render.NewImages(catalog)
	renderer, err := render.NewRenderer(images)
	if err != nil {
		return nil, err
	}
	renderer.DimAlpha = cfg.Visuals.DimAlpha
	for _, e := range cfg.Entities {
		var c color.Color = colornames.Steelblue
		if e.Color != nil && e.Color.Color != nil {
			c = e.Color.Color
		}
		renderer.AddEntity(render.Entity{Name: e.Name, Cell: grid.Cell{X: e.X, Y: e.Y}, W: e.W, H: e.H, Color: c})
	}

	doc := blueprint.New(
		blueprint.WithBounds(cfg.Blueprint.Width, cfg.Blueprint.Height),
		blueprint.WithUndoLimit(cfg.Blueprint.UndoLimit),
	)

	g := &Editor{
		cfg:      cfg,
		log:      log,
		catalog:  catalog,
		doc:      doc,
		images:   images,
		renderer: renderer,
		camera:   render.NewCamera(),
		queue:    &input.Queue{},
		hub:      input.NewHub(),
	}
	g.poller = input.NewPoller(g.queue)
	g.poller.Inside = func(pos cp.Vector) bool {
		return g.tool != nil && g.tool.Contains(g.camera.ScreenToWorld(pos))
	}

	cursor := grid.NewCursor()
	cursor.Set(grid.Cell{X: cfg.Blueprint.Width / 2, Y: cfg.Blueprint.Height / 2})
	g.env = paint.Env{
		Document:   doc,
		Renderer:   renderer,
		Catalog:    catalog,
		Tiles:      paint.NewTileVisuals(renderer),
		Cursor:     cursor,
		Pointer:    g.hub,
		Size:       paint.NewSize(cfg.Brush.Size),
		GhostAlpha: cfg.Visuals.GhostAlpha,
		IconOffset: &cp.Vector{X: cfg.Visuals.IconOffset, Y: cfg.Visuals.IconOffset},
	}

	// Center the view on the cursor.
	center := grid.CellCenter(cursor.Cell())
	g.camera.OffsetX = float64(cfg.Window.Width)/2 - center.X
	g.camera.OffsetY = float64(cfg.Window.Height)/2 - center.Y

	if err := g.buildUI(cfg.Brush.Tile); err != nil {
		return nil, err
	}
	if err := g.selectTile(cfg.Brush.Tile); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Editor) buildUI(selected string) error {
	ui, toolBar, palette, err := BuildEditorUI(g.catalog.Types(), selected, UICallbacks{
		OnTileSelected: func(name string) {
			if err := g.selectTile(name); err != nil {
				g.log.WithError(err).Warn("editor: select tile")
			}
		},
		OnDecrease: g.decreaseSize,
		OnIncrease: g.increaseSize,
		OnRotate:   g.rotate,
		OnUndo:     g.undo,
	})
	if err != nil {
		return err
	}
	g.ui = ui
	g.toolBar = toolBar
	g.palette = palette
	g.toolBar.SetSize(g.env.Size.Get())
	return nil
}

// selectTile swaps the active tool for one painting name. The old tool is
// closed first so it cannot undo the new tool's transparency.
func (g *Editor) selectTile(name string) error {
	prev := ""
	if g.tool != nil {
		prev = g.tool.Tile().Name
		if prev == name {
			return nil
		}
		g.tool.Close()
		g.tool = nil
	}
	tool, err := paint.Activate(g.env, name)
	if err != nil {
		if prev != "" {
			g.tool, _ = paint.Activate(g.env, prev)
		}
		return err
	}
	g.tool = tool
	if ebuiinput.UIHovered {
		tool.Hide()
	}
	g.palette.SetSelected(name)
	g.toolBar.SetRotatable(tool.Tile().Orientable())
	g.log.WithField("tile", name).Info("editor: tile selected")
	return nil
}

func (g *Editor) increaseSize() {
	if g.tool != nil && g.tool.IncreaseSize() {
		g.toolBar.SetSize(g.tool.Size())
	}
}

func (g *Editor) decreaseSize() {
	if g.tool != nil && g.tool.DecreaseSize() {
		g.toolBar.SetSize(g.tool.Size())
	}
}

func (g *Editor) rotate() {
	if g.tool != nil && g.tool.Rotate() {
		g.palette.SetSelected(g.tool.Tile().Name)
	}
}

// undo reverts the last stroke and redraws the committed tiles from the
// document.
func (g *Editor) undo() {
	if !g.doc.Undo() {
		return
	}
	g.env.Tiles.Sync(g.doc.All())
	g.log.WithField("depth", g.doc.UndoDepth()).Debug("editor: undo")
}

// reloadCatalog swaps in the catalog from disk. Tools hold the same
// *tiles.Catalog, so the swap is visible to them.
func (g *Editor) reloadCatalog() {
	next, err := tiles.LoadCatalog(g.cfg.Catalog)
	if err != nil {
		g.log.WithError(err).Warn("editor: catalog reload failed")
		return
	}
	g.catalog.Replace(next)
	g.images.Invalidate()

	current := ""
	if g.tool != nil {
		current = g.tool.Tile().Name
		g.tool.Close()
		g.tool = nil
	}
	if _, err := g.catalog.Lookup(current); err != nil {
		if types := g.catalog.Types(); len(types) > 0 {
			current = types[0].Name
		}
	}
	if err := g.buildUI(current); err != nil {
		g.log.WithError(err).Error("editor: rebuild ui")
		return
	}
	if err := g.selectTile(current); err != nil {
		g.log.WithError(err).Warn("editor: reselect tile")
	}
	g.log.WithField("tiles", g.catalog.Len()).Info("editor: catalog reloaded")
}

func (g *Editor) Update() error {
	if g.ui != nil {
		g.ui.Update()
	}

	if g.watcher != nil && len(g.watcher.Poll()) > 0 {
		g.reloadCatalog()
	}
	if g.watcher != nil {
		select {
		case err := <-g.watcher.Errors:
			g.log.WithError(err).Warn("editor: catalog watcher")
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.handleHotkeys()
	g.updateCamera()

	if g.tool != nil {
		if ebuiinput.UIHovered {
			g.tool.Hide()
		} else {
			g.tool.Show()
		}
	}

	g.poller.Poll()
	for _, ev := range g.queue.Drain() {
		if ev.Kind == input.PointerMove {
			g.hub.Move(ev.Pos)
		}
		if g.tool == nil {
			continue
		}
		ev.Pos = g.camera.ScreenToWorld(ev.Pos)
		if err := g.tool.HandleEvent(ev); err != nil {
			g.logPaintError(err)
		}
	}
	return nil
}

func (g *Editor) logPaintError(err error) {
	if errors.Is(err, blueprint.ErrOutOfBounds) {
		g.log.WithError(err).Debug("editor: paint outside blueprint")
		return
	}
	g.log.WithError(err).Warn("editor: paint")
}

func (g *Editor) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyTile()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteTile()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.increaseSize()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.decreaseSize()
	case !ctrl && inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.rotate()
	}
}

// updateCamera pans with the middle button and zooms with the wheel.
func (g *Editor) updateCamera() {
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if g.panning {
			g.camera.Pan(float64(mx-g.panX), float64(my-g.panY))
		}
		g.panning = true
		g.panX, g.panY = mx, my
	} else {
		g.panning = false
	}

	if ebuiinput.UIHovered {
		return
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		factor := 1.1
		if wy < 0 {
			factor = 1 / 1.1
		}
		g.camera.ZoomAt(cp.Vector{X: float64(mx), Y: float64(my)}, factor)
	}
}

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 34, 255})
	g.drawGrid(screen)
	g.renderer.Draw(screen, g.camera)
	if g.ui != nil {
		g.ui.Draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, g.status(), 8, screen.Bounds().Dy()-20)
}

func (g *Editor) status() string {
	if g.tool == nil {
		return fmt.Sprintf("tiles: %d", g.doc.Len())
	}
	c := g.env.Cursor.Cell()
	return fmt.Sprintf("%s  size %d  %s  cell %d,%d  tiles %d  undo %d",
		g.tool.Tile().Name, g.tool.Size(), g.tool.State(), c.X, c.Y, g.doc.Len(), g.doc.UndoDepth())
}

// drawGrid draws the cell lines of the blueprint area.
func (g *Editor) drawGrid(screen *ebiten.Image) {
	w, h := g.cfg.Blueprint.Width, g.cfg.Blueprint.Height
	if w == 0 || h == 0 {
		return
	}
	line := color.RGBA{60, 60, 66, 255}
	topLeft := g.camera.WorldToScreen(cp.Vector{})
	bottomRight := g.camera.WorldToScreen(cp.Vector{X: float64(w * grid.CellSize), Y: float64(h * grid.CellSize)})
	for x := 0; x <= w; x++ {
		sx := g.camera.WorldToScreen(cp.Vector{X: float64(x * grid.CellSize)}).X
		vector.StrokeLine(screen, float32(sx), float32(topLeft.Y), float32(sx), float32(bottomRight.Y), 1, line, false)
	}
	for y := 0; y <= h; y++ {
		sy := g.camera.WorldToScreen(cp.Vector{Y: float64(y * grid.CellSize)}).Y
		vector.StrokeLine(screen, float32(topLeft.X), float32(sy), float32(bottomRight.X), float32(sy), 1, line, false)
	}
	vector.StrokeRect(screen, float32(topLeft.X), float32(topLeft.Y),
		float32(bottomRight.X-topLeft.X), float32(bottomRight.Y-topLeft.Y), 2, colornames.Gray, false)
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close releases the tool and the catalog watcher.
func (g *Editor) Close() {
	g.tool.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.WithError(err).Warn("editor: close watcher")
		}
	}
}
