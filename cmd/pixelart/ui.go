package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/grid"
	"golang.org/x/image/font/gofont/goregular"
)

// StatusLine shows the active tool and color next to the toolbar.
type StatusLine struct {
	label *widget.Label
}

func (s *StatusLine) Set(t editor.Tool, c grid.Color) {
	if s == nil || s.label == nil {
		return
	}
	s.label.Label = fmt.Sprintf("%s  %s", t, c)
}

func BuildPixelUI(
	onToolSelected func(tool editor.Tool),
	onColorPicked func(c grid.Color),
	initialTool editor.Tool,
) (*ebitenui.UI, *ToolBar, *PaletteBar, *StatusLine, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load font: %w", err)
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newPixelTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, onToolSelected, initialTool)
	paletteBar := buildPaletteBar(onColorPicked)
	status := &StatusLine{label: widget.NewLabel(
		widget.LabelOpts.Text("", &fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)}

	top := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(12),
			),
		),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, toolbarHeight),
		),
	)
	top.AddChild(toolbarContainer)
	top.AddChild(paletteBar.container)

	statusBar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 4, Right: 4}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, statusBarHeight),
		),
	)
	statusBar.AddChild(status.label)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	top.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchHorizontal:  true,
	}
	statusBar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
		StretchHorizontal:  true,
	}
	root.AddChild(top)
	root.AddChild(statusBar)

	ui.Container = root
	return ui, toolBar, paletteBar, status, nil
}
