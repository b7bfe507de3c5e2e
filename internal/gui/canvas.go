// Side by side display of the source image and the annotated result
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/sirupsen/logrus"
)

const (
	viewMinWidth  = 360
	viewMinHeight = 270
)

// ResultView shows the loaded source image next to the latest annotated
// detection frame. Each update swaps the whole frame at once; there is no
// partial redraw, so the view never shows a half-rendered result.
type ResultView struct {
	logger *logrus.Logger

	split       *container.Split
	sourceCard  *widget.Card
	resultCard  *widget.Card
	sourceImage *canvas.Image
	resultImage *canvas.Image
}

func NewResultView(logger *logrus.Logger) *ResultView {
	view := &ResultView{logger: logger}
	view.initializeUI()
	return view
}

func (rv *ResultView) initializeUI() {
	rv.sourceImage = newFrameImage(placeholderImage())
	rv.resultImage = newFrameImage(placeholderImage())

	rv.sourceCard = widget.NewCard("🖼️ Original", "", rv.sourceImage)
	rv.resultCard = widget.NewCard("🎯 Detection", "", rv.resultImage)

	rv.split = container.NewHSplit(rv.sourceCard, rv.resultCard)
	rv.split.SetOffset(0.5)
}

func (rv *ResultView) GetContainer() fyne.CanvasObject {
	return rv.split
}

// ShowSource replaces the source pane with a freshly loaded image.
func (rv *ResultView) ShowSource(img image.Image) {
	if img == nil || img.Bounds().Empty() {
		rv.logger.Error("Source frame is empty, keeping previous display")
		return
	}

	rv.sourceImage = newFrameImage(img)
	rv.sourceCard.SetContent(rv.sourceImage)

	rv.logger.WithFields(logrus.Fields{
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("Source view updated")
}

// ShowResult replaces the detection pane with a finished annotated frame.
// Replacing the canvas object wholesale sidesteps the stale-image pitfalls
// of mutating a live canvas.Image in place.
func (rv *ResultView) ShowResult(img image.Image) {
	if img == nil || img.Bounds().Empty() {
		rv.logger.Error("Result frame is empty, keeping previous display")
		return
	}

	rv.resultImage = newFrameImage(img)
	rv.resultCard.SetContent(rv.resultImage)

	rv.logger.WithFields(logrus.Fields{
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("Result view updated")
}

// ClearResult restores the detection pane placeholder, used when a new image
// supersedes the one the last result came from.
func (rv *ResultView) ClearResult() {
	rv.resultImage = newFrameImage(placeholderImage())
	rv.resultCard.SetContent(rv.resultImage)
}

func (rv *ResultView) Refresh() {
	rv.split.Refresh()
	rv.sourceCard.Refresh()
	rv.resultCard.Refresh()
}

// newFrameImage wraps a frame for display: the widget scales the frame to
// the available pane while keeping aspect ratio and crisp pixels.
func newFrameImage(img image.Image) *canvas.Image {
	frame := canvas.NewImageFromImage(img)
	frame.FillMode = canvas.ImageFillContain
	frame.ScaleMode = canvas.ImageScalePixels
	frame.SetMinSize(fyne.NewSize(viewMinWidth, viewMinHeight))
	return frame
}

func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, viewMinWidth, viewMinHeight))
	gray := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	for y := 0; y < viewMinHeight; y++ {
		for x := 0; x < viewMinWidth; x++ {
			img.Set(x, y, gray)
		}
	}
	return img
}
