package main

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilepaint/tiles"
	"golang.org/x/image/font/gofont/goregular"
)

// UICallbacks connects the widgets to the editor.
type UICallbacks struct {
	OnTileSelected func(name string)
	OnDecrease     func()
	OnIncrease     func()
	OnRotate       func()
	OnUndo         func()
}

func BuildEditorUI(types []tiles.Type, initialTile string, cb UICallbacks) (*ebitenui.UI, *ToolBar, *Palette, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("editor: load font: %w", err)
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	palette := buildPalette(ui.PrimaryTheme, &fontFace, types, initialTile, cb.OnTileSelected)
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb.OnDecrease, cb.OnIncrease, cb.OnRotate, cb.OnUndo)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	palette.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	// Toolbar: top center
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(palette.Container)
	root.AddChild(toolbarContainer)

	ui.Container = root
	return ui, toolBar, palette, nil
}
