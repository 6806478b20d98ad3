package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ToolBar holds the brush size label and the buttons that change the brush.
type ToolBar struct {
	sizeLabel *widget.Text
	rotateBtn *widget.Button
}

func (tb *ToolBar) SetSize(n int) {
	if tb == nil || tb.sizeLabel == nil {
		return
	}
	tb.sizeLabel.Label = fmt.Sprintf("Size: %d", n)
}

// SetRotatable greys out Rotate for tiles without an orientation.
func (tb *ToolBar) SetRotatable(ok bool) {
	if tb == nil || tb.rotateBtn == nil {
		return
	}
	tb.rotateBtn.GetWidget().Disabled = !ok
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onDecrease, onIncrease, onRotate, onUndo func()) (*widget.Container, *ToolBar) {
	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Left: 8, Right: 8, Top: 4, Bottom: 4}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	newButton := func(label string, onClick func()) *widget.Button {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
		toolbar.AddChild(btn)
		return btn
	}

	newButton("-", onDecrease)
	sizeLabel := widget.NewText(
		widget.TextOpts.Text("Size: 2", fontFace, color.Black),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			widget.WidgetOpts.MinSize(64, 40),
		),
	)
	toolbar.AddChild(sizeLabel)
	newButton("+", onIncrease)
	rotateBtn := newButton("Rotate", onRotate)
	newButton("Undo", onUndo)

	return toolbar, &ToolBar{sizeLabel: sizeLabel, rotateBtn: rotateBtn}
}
