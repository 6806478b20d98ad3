package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/tilepaint/paint"
	"github.com/milk9111/tilepaint/tiles"
	"gopkg.in/yaml.v3"
)

//go:embed editor.yaml
var defaultYAML []byte

// DefaultPath is where Load looks for a local override.
const DefaultPath = "editor.yaml"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window    Window    `yaml:"window"`
	LogLevel  string    `yaml:"log_level"`
	Catalog   string    `yaml:"catalog"`
	Brush     Brush     `yaml:"brush"`
	Visuals   Visuals   `yaml:"visuals"`
	Blueprint Blueprint `yaml:"blueprint"`
	Entities  []Entity  `yaml:"entities"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Brush is the tool selected at startup.
type Brush struct {
	Tile string `yaml:"tile"`
	Size int    `yaml:"size"`
}

type Visuals struct {
	GhostAlpha float32 `yaml:"ghost_alpha"`
	DimAlpha   float32 `yaml:"dim_alpha"`
	IconOffset float64 `yaml:"icon_offset"`
}

// Blueprint bounds are in cells; zero means unbounded.
type Blueprint struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	UndoLimit int `yaml:"undo_limit"`
}

// Entity is a building shown on the canvas so transparency has something to
// dim.
type Entity struct {
	Name  string           `yaml:"name"`
	X     int              `yaml:"x"`
	Y     int              `yaml:"y"`
	W     int              `yaml:"w"`
	H     int              `yaml:"h"`
	Color *tiles.YAMLColor `yaml:"color"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("config: unmarshal embedded: %w", err)
	}
	return &c, nil
}

// Load returns the embedded configuration overlaid with the file at path.
// Keys missing from the file keep their defaults. A missing file is not an
// error unless path was given explicitly.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Brush.Size < paint.MinSize || c.Brush.Size > paint.MaxSize {
		return fmt.Errorf("config: brush size %d outside [%d, %d]: %w", c.Brush.Size, paint.MinSize, paint.MaxSize, ErrInvalid)
	}
	if c.Visuals.GhostAlpha <= 0 || c.Visuals.GhostAlpha > 1 {
		return fmt.Errorf("config: ghost_alpha %v: %w", c.Visuals.GhostAlpha, ErrInvalid)
	}
	if c.Visuals.DimAlpha < 0 || c.Visuals.DimAlpha > 1 {
		return fmt.Errorf("config: dim_alpha %v: %w", c.Visuals.DimAlpha, ErrInvalid)
	}
	if c.Blueprint.Width < 0 || c.Blueprint.Height < 0 {
		return fmt.Errorf("config: negative blueprint bounds: %w", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	}
	return nil
}
