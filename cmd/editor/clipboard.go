package main

import (
	"strings"

	"golang.design/x/clipboard"
)

func (g *Editor) initClipboard() {
	if err := clipboard.Init(); err != nil {
		g.log.WithError(err).Warn("editor: clipboard unavailable, copy and paste disabled")
		return
	}
	g.clipboard = true
}

// copyTile puts the brush tile name on the system clipboard.
func (g *Editor) copyTile() {
	if !g.clipboard || g.tool == nil {
		return
	}
	name := g.tool.Tile().Name
	clipboard.Write(clipboard.FmtText, []byte(name))
	g.log.WithField("tile", name).Debug("editor: copied tile")
}

// pasteTile selects the tile named on the clipboard.
func (g *Editor) pasteTile() {
	if !g.clipboard {
		return
	}
	name := strings.TrimSpace(string(clipboard.Read(clipboard.FmtText)))
	if name == "" {
		return
	}
	if err := g.selectTile(name); err != nil {
		g.log.WithError(err).WithField("text", name).Info("editor: clipboard does not name a tile")
	}
}
