package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilepaint/grid"
	"github.com/milk9111/tilepaint/tiles"
	"golang.org/x/image/colornames"
)

// Images caches one image per tile name, built from the catalog on first
// use.
type Images struct {
	catalog *tiles.Catalog
	// Dir is searched for relative tile image paths.
	Dir    string
	images map[string]*ebiten.Image
}

func NewImages(catalog *tiles.Catalog) *Images {
	return &Images{catalog: catalog, Dir: "assets", images: map[string]*ebiten.Image{}}
}

// RegisterImage stores an image by key.
func (r *Images) RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	r.images[key] = img
}

// GetImage returns the image for a tile or item name, building it if needed.
// Unknown names get a magenta placeholder.
func (r *Images) GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	if img := r.images[key]; img != nil {
		return img
	}
	img := r.build(key)
	r.images[key] = img
	return img
}

// Invalidate drops every cached image, for example after the catalog was
// reloaded.
func (r *Images) Invalidate() {
	clear(r.images)
}

func (r *Images) Len() int {
	return len(r.images)
}

func (r *Images) build(name string) *ebiten.Image {
	t, ok := r.lookup(name)
	if !ok {
		return swatch(colornames.Magenta, tiles.OrientationNone)
	}
	if t.Image != "" {
		img, err := loadImageFromFS(r.Dir, t.Image)
		if err == nil {
			return img
		}
		logger().WithError(err).WithField("tile", name).Warn("render: falling back to generated tile image")
	}
	return swatch(t.RGBA(), t.Orientation)
}

// lookup resolves a tile name, or an item name for icon previews.
func (r *Images) lookup(name string) (tiles.Type, bool) {
	if t, err := r.catalog.Lookup(name); err == nil {
		return t, true
	}
	for _, t := range r.catalog.Types() {
		if t.Item == name {
			return t, true
		}
	}
	return tiles.Type{}, false
}

func loadImageFromFS(dir, path string) (*ebiten.Image, error) {
	tried := []string{path, filepath.Join(dir, path), filepath.Base(path)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return ebiten.NewImageFromImage(im), nil
	}
	return nil, fmt.Errorf("render: image %s not found", path)
}

// swatch draws a cell-sized tile: a flat fill with a darker border, plus
// diagonal stripes leaning in the tile's direction when it has one.
func swatch(fill color.Color, o tiles.Orientation) *ebiten.Image {
	const s = grid.CellSize
	img := ebiten.NewImage(s, s)
	img.Fill(fill)
	vector.StrokeRect(img, 0.5, 0.5, s-1, s-1, 1, color.RGBA{A: 96}, false)
	if o == tiles.OrientationNone {
		return img
	}
	for x := float32(-s); x < s; x += 8 {
		x0, x1 := x, x+s
		if o == tiles.OrientationLeft {
			x0, x1 = x1, x0
		}
		vector.StrokeLine(img, x0, 0, x1, s, 3, colornames.Black, true)
	}
	return img
}
