package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilepaint/tiles"
)

// Palette is the radio group of paintable tiles.
type Palette struct {
	Container *widget.Container
	group     *widget.RadioGroup
	buttons   map[string]*widget.Button
}

// SetSelected marks name as the active tile without changing the tool.
func (p *Palette) SetSelected(name string) {
	if p == nil || p.group == nil {
		return
	}
	if btn, ok := p.buttons[name]; ok && p.group.Active() != btn {
		p.group.SetActive(btn)
	}
}

func buildPalette(theme *widget.Theme, fontFace *text.Face, types []tiles.Type, initial string, onTileSelected func(name string)) *Palette {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
				widget.RowLayoutOpts.Padding(&widget.Insets{Left: 8, Right: 8, Top: 8, Bottom: 8}),
			),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Tiles", fontFace, color.White),
	))

	p := &Palette{Container: panel, buttons: make(map[string]*widget.Button, len(types))}
	names := make(map[*widget.Button]string, len(types))
	elements := make([]widget.RadioGroupElement, 0, len(types))
	var initialBtn *widget.Button
	for _, t := range types {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(t.Name, fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(204, 28),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
		)
		p.buttons[t.Name] = btn
		names[btn] = t.Name
		elements = append(elements, btn)
		panel.AddChild(btn)
		if t.Name == initial {
			initialBtn = btn
		}
	}

	opts := []widget.RadioGroupOpt{
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			btn, ok := args.Active.(*widget.Button)
			if !ok || onTileSelected == nil {
				return
			}
			if name, ok := names[btn]; ok {
				onTileSelected(name)
			}
		}),
	}
	if initialBtn != nil {
		opts = append(opts, widget.RadioGroupOpts.InitialElement(initialBtn))
	}
	if len(elements) > 0 {
		p.group = widget.NewRadioGroup(opts...)
	}
	return p
}
