// Right hand info panel with image details and run statistics
package gui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/sirupsen/logrus"

	"github.com/logisoltech/boundary/internal/core"
	"github.com/logisoltech/boundary/internal/vision"
)

// InfoPanel shows what is loaded and what the last detection produced.
type InfoPanel struct {
	logger *logrus.Logger

	container *fyne.Container

	imageCard    *widget.Card
	imageContent *fyne.Container

	statsCard    *widget.Card
	statsContent *fyne.Container
}

func NewInfoPanel(logger *logrus.Logger) *InfoPanel {
	panel := &InfoPanel{logger: logger}
	panel.initializeUI()
	return panel
}

func (ip *InfoPanel) initializeUI() {
	ip.imageContent = container.NewVBox(
		widget.NewLabel("No image loaded."),
	)
	ip.imageCard = widget.NewCard("📄 Image", "", ip.imageContent)

	ip.statsContent = container.NewVBox(
		widget.NewLabel("Run statistics appear here after a detection."),
	)
	ip.statsCard = widget.NewCard("📈 Run Statistics", "", ip.statsContent)

	ip.container = container.NewVBox(
		ip.imageCard,
		widget.NewSeparator(),
		ip.statsCard,
	)
}

func (ip *InfoPanel) GetContainer() fyne.CanvasObject {
	return ip.container
}

// ShowImageInfo fills the image card from the stored source metadata.
func (ip *InfoPanel) ShowImageInfo(meta core.ImageMetadata, path string) {
	ip.imageContent.RemoveAll()
	ip.imageContent.Add(widget.NewLabel(fmt.Sprintf("File: %s", filepath.Base(path))))
	ip.imageContent.Add(widget.NewLabel(fmt.Sprintf("Size: %dx%d", meta.Width, meta.Height)))
	ip.imageContent.Add(widget.NewLabel(fmt.Sprintf("Channels: %d", meta.Channels)))
	ip.imageContent.Add(widget.NewLabel(fmt.Sprintf("Format: %s", strings.ToUpper(meta.Format))))
	ip.imageContent.Refresh()

	ip.logger.WithField("filepath", path).Debug("Image info updated")
}

// ShowProcessing marks the statistics card busy while a run is in flight.
func (ip *InfoPanel) ShowProcessing() {
	ip.statsContent.RemoveAll()
	ip.statsContent.Add(widget.NewLabel("🔄 Processing..."))
	ip.statsContent.Refresh()
}

// ShowStats fills the statistics card from a finished run.
func (ip *InfoPanel) ShowStats(stats vision.Stats, elapsed time.Duration, width, height int) {
	ip.statsContent.RemoveAll()

	if stats.Contours == 0 {
		ip.statsContent.Add(statRow(theme.WarningIcon(), "No contours found"))
		ip.statsContent.Add(widget.NewLabel("Try lowering the thresholds."))
	} else {
		ip.statsContent.Add(statRow(theme.ConfirmIcon(), fmt.Sprintf("Contours: %d", stats.Contours)))
		ip.statsContent.Add(statRow(theme.InfoIcon(), fmt.Sprintf("Vertices: %d", stats.Vertices)))
		ip.statsContent.Add(statRow(theme.InfoIcon(), fmt.Sprintf("Markers: %d", stats.Markers)))
	}

	ip.statsContent.Add(widget.NewSeparator())
	ip.statsContent.Add(widget.NewLabel(fmt.Sprintf("Frame: %dx%d", width, height)))
	ip.statsContent.Add(widget.NewLabel(fmt.Sprintf("Elapsed: %s", elapsed.Round(time.Millisecond))))
	ip.statsContent.Refresh()
}

// ClearStats resets the statistics card, used when a new image supersedes
// the one the last run saw.
func (ip *InfoPanel) ClearStats() {
	ip.statsContent.RemoveAll()
	ip.statsContent.Add(widget.NewLabel("Run statistics appear here after a detection."))
	ip.statsContent.Refresh()
}

func (ip *InfoPanel) Refresh() {
	ip.container.Refresh()
}

func statRow(icon fyne.Resource, text string) fyne.CanvasObject {
	return container.NewHBox(
		widget.NewIcon(icon),
		widget.NewLabel(text),
	)
}
