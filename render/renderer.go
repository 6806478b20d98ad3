package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/paint"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultDimAlpha is the entity opacity while a paint tool is active.
const DefaultDimAlpha float32 = 0.3

// Sprite is a tile image drawn centered on its position. Icon sprites are
// positioned in screen space, everything else in world space.
type Sprite struct {
	name    string
	icon    bool
	seq     uint64
	x, y    float64
	alpha   float32
	visible bool
}

func (s *Sprite) SetPosition(x, y float64) { s.x, s.y = x, y }

func (s *Sprite) SetAlpha(a float32) { s.alpha = a }

func (s *Sprite) SetVisible(visible bool) { s.visible = visible }

func (s *Sprite) Name() string { return s.name }

func (s *Sprite) Position() cp.Vector { return cp.Vector{X: s.x, Y: s.y} }

func (s *Sprite) Alpha() float32 { return s.alpha }

func (s *Sprite) Visible() bool { return s.visible }

func (s *Sprite) Icon() bool { return s.icon }

func (s *Sprite) topLeft() (float64, float64) {
	return s.x - grid.CellSize/2, s.y - grid.CellSize/2
}

// Entity is a placed building drawn as a colored block over the tiles.
type Entity struct {
	Name  string
	Cell  grid.Cell
	W, H  int
	Color color.Color
}

// Renderer draws the blueprint: tiles, entities, the brush ghost and the
// icon preview. It implements paint.Renderer.
type Renderer struct {
	Images *Images
	// DimAlpha is the entity opacity while transparency is on.
	DimAlpha float32
	// GhostTint multiplies translucent sprites.
	GhostTint color.Color

	sprites     map[*Sprite]struct{}
	entities    []Entity
	transparent bool
	seq         uint64
	face        text.Face
}

var _ paint.Renderer = (*Renderer)(nil)

func NewRenderer(images *Images) (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	return &Renderer{
		Images:    images,
		DimAlpha:  DefaultDimAlpha,
		GhostTint: color.RGBA{R: 0x80, G: 0xff, B: 0x80, A: 0xff},
		sprites:   make(map[*Sprite]struct{}),
		face:      &text.GoTextFace{Source: src, Size: 12},
	}, nil
}

func (r *Renderer) CreateVisual(name string, pos cp.Vector) paint.Visual {
	return r.add(&Sprite{name: name, x: pos.X, y: pos.Y, alpha: 1, visible: true})
}

func (r *Renderer) CreateIconVisual(item string) paint.Visual {
	return r.add(&Sprite{name: item, icon: true, alpha: 1, visible: true})
}

func (r *Renderer) add(s *Sprite) *Sprite {
	r.seq++
	s.seq = r.seq
	r.sprites[s] = struct{}{}
	return s
}

func (r *Renderer) DestroyVisual(v paint.Visual) {
	s, ok := v.(*Sprite)
	if !ok {
		return
	}
	delete(r.sprites, s)
}

func (r *Renderer) SetEntitiesTransparent(enabled bool) {
	r.transparent = enabled
}

func (r *Renderer) EntitiesTransparent() bool {
	return r.transparent
}

// Len returns the number of live sprites.
func (r *Renderer) Len() int {
	return len(r.sprites)
}

func (r *Renderer) AddEntity(e Entity) {
	r.entities = append(r.entities, e)
}

func (r *Renderer) Entities() []Entity {
	return r.entities
}

// layers splits the live sprites into draw passes: opaque tiles, translucent
// ghosts, then screen-space icons. Each pass is in creation order.
func (r *Renderer) layers() (tiles, ghosts, icons []*Sprite) {
	all := make([]*Sprite, 0, len(r.sprites))
	for s := range r.sprites {
		if s.visible && s.alpha > 0 {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	for _, s := range all {
		switch {
		case s.icon:
			icons = append(icons, s)
		case s.alpha < 1:
			ghosts = append(ghosts, s)
		default:
			tiles = append(tiles, s)
		}
	}
	return tiles, ghosts, icons
}

// Draw renders the scene through cam.
func (r *Renderer) Draw(screen *ebiten.Image, cam *Camera) {
	tiles, ghosts, icons := r.layers()
	for _, s := range tiles {
		r.drawWorld(screen, cam, s, nil)
	}
	r.drawEntities(screen, cam)
	for _, s := range ghosts {
		r.drawWorld(screen, cam, s, r.GhostTint)
	}
	for _, s := range icons {
		r.drawIcon(screen, s)
	}
}

func (r *Renderer) drawWorld(screen *ebiten.Image, cam *Camera, s *Sprite, tint color.Color) {
	img := r.Images.GetImage(s.name)
	if img == nil {
		return
	}
	x, y := s.topLeft()
	z := cam.zoom()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Scale(z, z)
	op.GeoM.Translate(cam.OffsetX, cam.OffsetY)
	if tint != nil {
		op.ColorScale.ScaleWithColor(tint)
	}
	op.ColorScale.ScaleAlpha(s.alpha)
	screen.DrawImage(img, op)
}

func (r *Renderer) drawEntities(screen *ebiten.Image, cam *Camera) {
	alpha := float32(1)
	if r.transparent {
		alpha = r.DimAlpha
	}
	z := cam.zoom()
	for _, e := range r.entities {
		p := cam.WorldToScreen(cp.Vector{X: float64(e.Cell.X * grid.CellSize), Y: float64(e.Cell.Y * grid.CellSize)})
		w := float32(float64(max(e.W, 1)*grid.CellSize) * z)
		h := float32(float64(max(e.H, 1)*grid.CellSize) * z)
		vector.FillRect(screen, float32(p.X), float32(p.Y), w, h, withAlpha(e.Color, alpha), false)
		vector.StrokeRect(screen, float32(p.X), float32(p.Y), w, h, 1, withAlpha(color.Black, alpha), false)
	}
}

// drawIcon draws the item preview at three quarters scale with its name
// beside it.
func (r *Renderer) drawIcon(screen *ebiten.Image, s *Sprite) {
	const scale = 0.75
	if img := r.Images.GetImage(s.name); img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(s.x, s.y)
		op.ColorScale.ScaleAlpha(s.alpha)
		screen.DrawImage(img, op)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(s.x+grid.CellSize*scale+4, s.y+4)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s.name, r.face, op)
}

func withAlpha(c color.Color, a float32) color.Color {
	if c == nil {
		c = color.Gray{Y: 0x80}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * a)
	return n
}
