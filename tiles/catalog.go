package tiles

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownTile = errors.New("unknown tile")
	ErrBadFlip     = errors.New("invalid flip")
)

// Orientation is the direction an orientable tile faces.
type Orientation int

const (
	OrientationNone Orientation = iota
	OrientationLeft
	OrientationRight
)

func (o Orientation) String() string {
	switch o {
	case OrientationNone:
		return "none"
	case OrientationLeft:
		return "left"
	case OrientationRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the mirrored orientation. None has no opposite.
func (o Orientation) Opposite() Orientation {
	switch o {
	case OrientationLeft:
		return OrientationRight
	case OrientationRight:
		return OrientationLeft
	default:
		return OrientationNone
	}
}

func (o *Orientation) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "", "none":
		*o = OrientationNone
	case "left":
		*o = OrientationLeft
	case "right":
		*o = OrientationRight
	default:
		return fmt.Errorf("invalid orientation: %s", value.Value)
	}
	return nil
}

// Type describes a paintable ground tile.
type Type struct {
	Name        string      `yaml:"name"`
	Item        string      `yaml:"item"`
	Color       *YAMLColor  `yaml:"color"`
	Orientation Orientation `yaml:"orientation"`
	// Flip names the tile with the opposite orientation.
	Flip string `yaml:"flip"`
	// Image is an optional PNG drawn instead of the generated swatch.
	Image string `yaml:"image"`
}

func (t Type) Orientable() bool {
	return t.Orientation != OrientationNone && t.Flip != ""
}

// RGBA returns the tile color, gray when none is configured.
func (t Type) RGBA() color.Color {
	if t.Color == nil || t.Color.Color == nil {
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return t.Color.Color
}

type catalogFile struct {
	Tiles []Type `yaml:"tiles"`
}

// Catalog is the set of tile types the editor can paint.
type Catalog struct {
	order  []string
	byName map[string]Type
}

// LoadCatalog reads and parses a catalog file through Load.
func LoadCatalog(name string) (*Catalog, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("tiles: load %s: %w", name, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("tiles: parse %s: %w", name, err)
	}
	return c, nil
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return NewCatalog(file.Tiles...)
}

// NewCatalog builds a catalog and checks that every flip reference points at
// a tile with the opposite orientation.
func NewCatalog(types ...Type) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Type, len(types))}
	for _, t := range types {
		if t.Name == "" {
			return nil, fmt.Errorf("tile %d: missing name", len(c.order))
		}
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tile %q", t.Name)
		}
		if t.Item == "" {
			t.Item = t.Name
		}
		c.byName[t.Name] = t
		c.order = append(c.order, t.Name)
	}
	for _, name := range c.order {
		t := c.byName[name]
		if t.Orientation == OrientationNone {
			continue
		}
		other, ok := c.byName[t.Flip]
		if !ok {
			return nil, fmt.Errorf("tile %q: %w: %q not in catalog", name, ErrBadFlip, t.Flip)
		}
		if other.Orientation != t.Orientation.Opposite() || other.Flip != name {
			return nil, fmt.Errorf("tile %q: %w: %q is not its mirror", name, ErrBadFlip, t.Flip)
		}
	}
	return c, nil
}

// Lookup returns the tile type with the given name.
func (c *Catalog) Lookup(name string) (Type, error) {
	if c == nil {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	t, ok := c.byName[name]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	return t, nil
}

// Flipped returns the mirrored counterpart of t. The second result is false
// when t has no orientation.
func (c *Catalog) Flipped(t Type) (Type, bool) {
	if c == nil || !t.Orientable() {
		return t, false
	}
	other, ok := c.byName[t.Flip]
	if !ok {
		return t, false
	}
	return other, true
}

// Types returns the tile types in file order.
func (c *Catalog) Types() []Type {
	if c == nil {
		return nil
	}
	out := make([]Type, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Replace swaps the contents of c for those of other, keeping pointers held
// by tools valid across a reload.
func (c *Catalog) Replace(other *Catalog) {
	if c == nil || other == nil {
		return
	}
	c.order = other.order
	c.byName = other.byName
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
