package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/palettes"
)

// toolbarHeight is the strip at the top of the window reserved for widgets;
// pointer input there never reaches the canvas.
const (
	toolbarHeight   = 52
	statusBarHeight = 26
)

// ToolBar contains the radio-group state for the tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (tb *ToolBar) SetTool(t editor.Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	tb.group.SetActive(tb.buttons[idx])
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool editor.Tool), initialTool editor.Tool) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 4, Right: 4}),
			),
		),
	)

	var toolButtons []*widget.Button
	for _, t := range editor.Tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(t.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(84, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					onToolSelected(editor.Tools[idx])
					return
				}
			}
		}),
	)

	tb := &ToolBar{group: group, buttons: toolButtons}
	tb.SetTool(initialTool)
	return toolbar, tb
}

// PaletteBar is the row of swatches for the loaded palette.
type PaletteBar struct {
	container *widget.Container
	onPick    func(c grid.Color)
}

func buildPaletteBar(onPick func(c grid.Color)) *PaletteBar {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 4, Right: 4}),
			),
		),
	)
	return &PaletteBar{container: container, onPick: onPick}
}

// SetPalette replaces the swatches, e.g. after a config reload.
func (pb *PaletteBar) SetPalette(p palettes.Palette) {
	if pb == nil || pb.container == nil {
		return
	}
	pb.container.RemoveChildren()
	for _, c := range p.Colors {
		swatch := c
		btn := widget.NewButton(
			widget.ButtonOpts.Image(swatchImage(swatch.RGBA())),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(28, 28),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if pb.onPick != nil {
					pb.onPick(swatch)
				}
			}),
		)
		pb.container.AddChild(btn)
	}
}
