// Detection parameter panel with stride and threshold sliders
package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/sirupsen/logrus"

	"github.com/logisoltech/boundary/internal/vision"
)

// ParamsPanel exposes the three detection knobs. Moving a slider only
// updates its readout; values reach the pipeline when the user presses
// Detect, never before.
type ParamsPanel struct {
	logger   *logrus.Logger
	defaults vision.Params

	vbox *fyne.Container

	strideSlider *widget.Slider
	strideValue  *widget.Label
	lowSlider    *widget.Slider
	lowValue     *widget.Label
	highSlider   *widget.Slider
	highValue    *widget.Label

	detectButton *widget.Button
	resetButton  *widget.Button

	onDetect func()
}

func NewParamsPanel(defaults vision.Params, logger *logrus.Logger) *ParamsPanel {
	defaults.Clamp()
	panel := &ParamsPanel{
		logger:   logger,
		defaults: defaults,
	}

	panel.initializeUI()
	return panel
}

func (pp *ParamsPanel) initializeUI() {
	pp.strideSlider, pp.strideValue = newIntSlider(vision.MinStride, vision.MaxStride, pp.defaults.Stride)
	pp.lowSlider, pp.lowValue = newIntSlider(vision.MinLowThreshold, vision.MaxLowThreshold, int(pp.defaults.LowThreshold))
	pp.highSlider, pp.highValue = newIntSlider(vision.MinHighThreshold, vision.MaxHighThreshold, int(pp.defaults.HighThreshold))

	pp.detectButton = widget.NewButton("🔍 Detect Contours", func() {
		if pp.onDetect != nil {
			pp.onDetect()
		}
	})
	pp.detectButton.Importance = widget.HighImportance

	pp.resetButton = widget.NewButton("↻ Defaults", func() {
		pp.Reset()
	})
	pp.resetButton.Importance = widget.LowImportance

	hintCard := widget.NewCard("📝 How It Works", "",
		container.NewVBox(
			widget.NewLabel("Every detected contour is outlined in green."),
			widget.NewLabel("Red markers are placed along each contour,"),
			widget.NewLabel("one every stride vertices."),
			widget.NewSeparator(),
			widget.NewLabel("💡 Sliders take effect when you press Detect."),
		))

	parametersCard := widget.NewCard("🎚️ Detection Parameters", "",
		container.NewVBox(
			widget.NewLabel("Marker stride:"),
			sliderRow(pp.strideSlider, pp.strideValue),
			widget.NewLabel("Canny low threshold:"),
			sliderRow(pp.lowSlider, pp.lowValue),
			widget.NewLabel("Canny high threshold:"),
			sliderRow(pp.highSlider, pp.highValue),
		))

	actionsCard := widget.NewCard("", "",
		container.NewVBox(
			pp.detectButton,
			pp.resetButton,
		))

	pp.vbox = container.NewVBox(
		hintCard,
		widget.NewSeparator(),
		parametersCard,
		widget.NewSeparator(),
		actionsCard,
	)

	pp.Disable()
}

// Params returns the current slider values as a detection snapshot.
func (pp *ParamsPanel) Params() vision.Params {
	p := vision.Params{
		Stride:        int(math.Round(pp.strideSlider.Value)),
		LowThreshold:  math.Round(pp.lowSlider.Value),
		HighThreshold: math.Round(pp.highSlider.Value),
	}
	p.Clamp()
	return p
}

// Reset restores the configured defaults.
func (pp *ParamsPanel) Reset() {
	pp.strideSlider.SetValue(float64(pp.defaults.Stride))
	pp.lowSlider.SetValue(pp.defaults.LowThreshold)
	pp.highSlider.SetValue(pp.defaults.HighThreshold)
	pp.logger.Debug("Parameters reset to defaults")
}

func (pp *ParamsPanel) SetDetectCallback(onDetect func()) {
	pp.onDetect = onDetect
}

func (pp *ParamsPanel) GetContainer() fyne.CanvasObject {
	return pp.vbox
}

func (pp *ParamsPanel) Enable() {
	pp.strideSlider.Enable()
	pp.lowSlider.Enable()
	pp.highSlider.Enable()
	pp.detectButton.Enable()
	pp.resetButton.Enable()
}

func (pp *ParamsPanel) Disable() {
	pp.strideSlider.Disable()
	pp.lowSlider.Disable()
	pp.highSlider.Disable()
	pp.detectButton.Disable()
	pp.resetButton.Disable()
}

func (pp *ParamsPanel) Refresh() {
	pp.vbox.Refresh()
}

func newIntSlider(min, max, value int) (*widget.Slider, *widget.Label) {
	slider := widget.NewSlider(float64(min), float64(max))
	slider.Step = 1
	slider.SetValue(float64(value))

	label := widget.NewLabel(fmt.Sprintf("%d", value))
	slider.OnChanged = func(v float64) {
		label.SetText(fmt.Sprintf("%.0f", v))
	}
	return slider, label
}

func sliderRow(slider *widget.Slider, value *widget.Label) fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, value, slider)
}
