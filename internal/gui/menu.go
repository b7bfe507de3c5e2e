// Menu handler for file dialogs and application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/sirupsen/logrus"

	"github.com/logisoltech/boundary/internal/imgio"
)

// MenuHandler owns the main menu and its file dialogs. Picked paths are
// handed to the application through callbacks; a dialog dismissed without a
// choice is a silent no-op.
type MenuHandler struct {
	window fyne.Window
	logger *logrus.Logger

	onOpenFile     func(string)
	onSaveResult   func(string)
	onSaveSettings func()
	onResetParams  func()
}

func NewMenuHandler(window fyne.Window, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		logger: logger,
	}
}

func (mh *MenuHandler) SetCallbacks(onOpenFile, onSaveResult func(string), onSaveSettings, onResetParams func()) {
	mh.onOpenFile = onOpenFile
	mh.onSaveResult = onSaveResult
	mh.onSaveSettings = onSaveSettings
	mh.onResetParams = onResetParams
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.openImage),
		fyne.NewMenuItem("Save Result...", mh.saveResult),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Settings", func() {
			if mh.onSaveSettings != nil {
				mh.onSaveSettings()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset Parameters", func() {
			if mh.onResetParams != nil {
				mh.onResetParams()
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

func (mh *MenuHandler) openImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			mh.logger.Debug("File dialog dismissed without a selection")
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mh.logger.WithField("filepath", path).Info("Image selected")

		if mh.onOpenFile != nil {
			mh.onOpenFile(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions))
	fileDialog.Show()
}

func (mh *MenuHandler) saveResult() {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			mh.logger.Debug("Save dialog dismissed without a selection")
			return
		}
		defer writer.Close()

		path := writer.URI().Path()
		mh.logger.WithField("filepath", path).Info("Result destination selected")

		if mh.onSaveResult != nil {
			mh.onSaveResult(path)
		}
	}, mh.window)

	fileDialog.SetFileName("contours.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Boundary v1.0"),
		widget.NewSeparator(),
		widget.NewLabel("Interactive contour detection"),
		widget.NewLabel("Upload an image, tune the Canny thresholds"),
		widget.NewLabel("and marker stride, and explore the detected"),
		widget.NewLabel("boundaries on an annotated preview."),
		widget.NewSeparator(),
		widget.NewLabel("Author: Ervins Strauhmanis"),
		widget.NewLabel("Built with Go, Fyne v2.6, and OpenCV 4.11"),
		widget.NewSeparator(),
		widget.NewLabel("License: MIT"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(420, 320))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}
