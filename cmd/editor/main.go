package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilepaint/config"
	"github.com/milk9111/tilepaint/paint"
	"github.com/milk9111/tilepaint/render"
	"github.com/milk9111/tilepaint/tiles"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Editor config YAML (defaults to ./editor.yaml when present)")
	tileName := flag.String("tile", "", "Tile to paint at startup (overrides config)")
	size := flag.Int("size", 0, "Initial brush size (overrides config)")
	catalogPath := flag.String("catalog", "", "Tile catalog YAML (overrides config)")
	watch := flag.Bool("watch", true, "Reload the tile catalog when it changes on disk")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	if *tileName != "" {
		cfg.Brush.Tile = *tileName
	}
	if *size != 0 {
		cfg.Brush.Size = *size
	}
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid settings")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	if *debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	paint.SetLogger(log)
	render.SetLogger(log)

	log.Info("Editor starting...")

	if dir := filepath.Dir(cfg.Catalog); dir != "." {
		tiles.Dir = dir
	}
	catalog, err := tiles.LoadCatalog(cfg.Catalog)
	if err != nil {
		log.WithError(err).Fatal("Failed to load tile catalog")
	}
	log.WithField("tiles", catalog.Len()).Info("Loaded tile catalog")

	game, err := NewEditor(cfg, catalog, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to start editor")
	}
	defer game.Close()
	game.initClipboard()

	if *watch {
		if _, err := os.Stat(tiles.Dir); err == nil {
			w, err := tiles.NewWatcher(tiles.Dir)
			if err != nil {
				log.WithError(err).Warn("Catalog hot reload disabled")
			} else {
				game.watcher = w
			}
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("Editor exited")
	}
}
