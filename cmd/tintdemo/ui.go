package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// controlPanel shows the selected filter and buttons to change it.
type controlPanel struct {
	ui       *ebitenui.UI
	title    *widget.Text
	overlay  *widget.Button
	multiply *widget.Button
	enabled  *widget.Button
}

func newControlPanel(g *Game) *controlPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 24)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	c := &controlPanel{}
	c.title = widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)
	c.overlay = button("Overlay: Off", func() {
		if f := g.selectedFilter(); f != nil {
			f.SetOverlay(!f.Overlay())
		}
	})
	c.multiply = button("Multiply: Off", func() {
		if f := g.selectedFilter(); f != nil {
			f.SetMultiply(!f.Multiply())
		}
	})
	c.enabled = button("Enabled: On", func() {
		if f := g.selectedFilter(); f != nil {
			f.SetEnabled(!f.Enabled())
		}
	})
	less := button("Intensity -", func() { g.nudgeIntensity(-0.05) })
	more := button("Intensity +", func() { g.nudgeIntensity(0.05) })
	next := button("Next filter", g.selectNext)
	preset := button("Next preset", g.nextPreset)
	copyBtn := button("Copy preset", g.copyPreset)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(c.title)
	for _, b := range []*widget.Button{c.overlay, c.multiply, c.enabled, less, more, next, preset, copyBtn} {
		panel.AddChild(b)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	c.ui = &ebitenui.UI{Container: root}
	return c
}

// sync refreshes the labels from the game state.
func (c *controlPanel) sync(g *Game) {
	f := g.selectedFilter()
	if f == nil {
		c.title.Label = fmt.Sprintf("%s: no filters", g.presetName())
		return
	}
	c.title.Label = fmt.Sprintf("%s / %s  %.2f", g.presetName(), f.Name(), f.Intensity())
	setLabel(c.overlay, "Overlay", f.Overlay())
	setLabel(c.multiply, "Multiply", f.Multiply())
	setLabel(c.enabled, "Enabled", f.Enabled())
}

func setLabel(b *widget.Button, name string, on bool) {
	label := name + ": Off"
	if on {
		label = name + ": On"
	}
	if text := b.Text(); text != nil {
		text.Label = label
	}
}
