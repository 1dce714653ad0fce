package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DropZone is the click-to-browse target of the Upload section. Files
// dropped anywhere on the window are routed by RootUI.
type DropZone struct {
	widget.BaseWidget

	label    *widget.Label
	onTapped func()
}

// NewDropZone creates a drop zone showing text
func NewDropZone(text string, onTapped func()) *DropZone {
	d := &DropZone{
		label:    widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{}),
		onTapped: onTapped,
	}
	d.label.Wrapping = fyne.TextWrapWord
	d.ExtendBaseWidget(d)
	return d
}

// SetText updates the prompt or the picked file name
func (d *DropZone) SetText(text string) {
	d.label.SetText(text)
}

// Text returns the currently shown text
func (d *DropZone) Text() string {
	return d.label.Text
}

// Tapped opens the file picker
func (d *DropZone) Tapped(*fyne.PointEvent) {
	if d.onTapped != nil {
		d.onTapped()
	}
}

// MinSize keeps the zone a comfortable drop target
func (d *DropZone) MinSize() fyne.Size {
	return d.BaseWidget.MinSize().Max(fyne.NewSize(DropZoneMinWidth, DropZoneMinHeight))
}

// CreateRenderer implements fyne.Widget
func (d *DropZone) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = theme.PrimaryColor()
	border.StrokeWidth = DropZoneStroke
	border.CornerRadius = DropZoneRadius

	icon := widget.NewIcon(theme.UploadIcon())
	content := container.NewVBox(layout.NewSpacer(), icon, d.label, layout.NewSpacer())

	return widget.NewSimpleRenderer(container.NewStack(border, container.NewPadded(content)))
}
