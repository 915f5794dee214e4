package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const adviceHint = "The advice text appears here after conversion."

// AdviceDisplay is a custom widget showing the advice text that was spoken
type AdviceDisplay struct {
	widget.BaseWidget

	container  *fyne.Container
	textLabel  *widget.Label
	titleLabel *widget.Label
	scroll     *container.Scroll

	text string
}

// NewAdviceDisplay creates a new advice display widget
func NewAdviceDisplay() *AdviceDisplay {
	d := &AdviceDisplay{}

	d.titleLabel = widget.NewLabel("Advice:")
	d.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	d.textLabel = widget.NewLabel(adviceHint)
	d.textLabel.Wrapping = fyne.TextWrapWord

	d.scroll = container.NewScroll(d.textLabel)
	d.scroll.SetMinSize(fyne.NewSize(0, 160))

	d.container = container.NewBorder(d.titleLabel, nil, nil, nil, d.scroll)

	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer implements fyne.Widget
func (d *AdviceDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.container)
}

// SetAdvice shows the advice text with the language it is in
func (d *AdviceDisplay) SetAdvice(text, language string) {
	d.text = text
	if language != "" {
		d.titleLabel.SetText("Advice (" + language + "):")
	} else {
		d.titleLabel.SetText("Advice:")
	}
	d.textLabel.SetText(text)
	d.scroll.Offset = fyne.NewPos(0, 0)
	d.scroll.Refresh()
}

// Text returns the advice currently shown
func (d *AdviceDisplay) Text() string {
	return d.text
}

// Clear clears the display
func (d *AdviceDisplay) Clear() {
	d.text = ""
	d.titleLabel.SetText("Advice:")
	d.textLabel.SetText(adviceHint)
}

// SetGenerating shows a generating status
func (d *AdviceDisplay) SetGenerating() {
	d.text = ""
	d.textLabel.SetText("Generating...")
}
