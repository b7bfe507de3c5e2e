// Main application window wiring core components to the Fyne UI
package gui

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/logisoltech/boundary/internal/config"
	"github.com/logisoltech/boundary/internal/core"
	"github.com/logisoltech/boundary/internal/debug"
	"github.com/logisoltech/boundary/internal/imgio"
	"github.com/logisoltech/boundary/internal/vision"
)

// Application assembles the window: image store, state machine, and
// detection session on one side, view and parameter panel on the other.
// Core callbacks arrive on worker goroutines and are hopped onto the UI
// thread with fyne.Do before touching any widget.
type Application struct {
	app     fyne.App
	window  fyne.Window
	logger  *logrus.Logger
	cfg     *config.Config
	cfgPath string

	// Core components
	store   *core.ImageStore
	machine *core.Machine
	session *core.Session
	loader  *imgio.Loader
	monitor *debug.Monitor

	// GUI components
	view        *ResultView
	params      *ParamsPanel
	info        *InfoPanel
	menuHandler *MenuHandler

	// Layout containers
	mainContent *container.Split
	statusCard  *widget.Card
	statusLabel *widget.Label
	progressBar *widget.ProgressBar

	// Last finished annotated frame, kept for Save Result.
	lastFrame image.Image
}

func NewApplication(app fyne.App, cfg *config.Config, cfgPath string, logger *logrus.Logger) *Application {
	window := app.NewWindow("🔍 Boundary v1.0 - Contour Detection")
	window.Resize(fyne.NewSize(1500, 950))
	window.CenterOnScreen()

	appInstance := &Application{
		app:     app,
		window:  window,
		logger:  logger,
		cfg:     cfg,
		cfgPath: cfgPath,
	}

	appInstance.initializeCore()
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeCore() {
	a.store = core.NewImageStore()
	a.machine = core.NewMachine()
	a.session = core.NewSession(a.store, a.machine, a.logger, a.cfg.MaxDimension)
	a.loader = imgio.NewLoader(a.logger)
	a.monitor = debug.NewMonitor(a.logger, a.cfg.Debug)
	a.monitor.Start()
}

func (a *Application) initializeGUI() {
	a.view = NewResultView(a.logger)
	a.params = NewParamsPanel(vision.Params{
		Stride:        a.cfg.Stride,
		LowThreshold:  a.cfg.LowThreshold,
		HighThreshold: a.cfg.HighThreshold,
	}, a.logger)
	a.info = NewInfoPanel(a.logger)
	a.menuHandler = NewMenuHandler(a.window, a.logger)
}

func (a *Application) setupLayout() {
	a.statusLabel = widget.NewLabel("Load an image to begin")
	a.progressBar = widget.NewProgressBar()
	a.progressBar.Hide()

	a.statusCard = widget.NewCard("📊 Status", "",
		container.NewVBox(a.statusLabel, a.progressBar))

	centerAndRight := container.NewHSplit(
		a.view.GetContainer(),
		container.NewScroll(a.info.GetContainer()),
	)
	centerAndRight.SetOffset(0.78)

	a.mainContent = container.NewHSplit(
		container.NewScroll(a.params.GetContainer()),
		centerAndRight,
	)
	a.mainContent.SetOffset(0.24)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(
		nil,          // top
		a.statusCard, // bottom
		nil,          // left
		nil,          // right
		a.mainContent,
	))
}

func (a *Application) setupCallbacks() {
	// Detection may start only from the ready state; the observer keeps the
	// panel enablement in sync with that rule.
	a.machine.SetObserver(func(s core.State) {
		fyne.Do(func() {
			if s == core.StateReady {
				a.params.Enable()
			} else {
				a.params.Disable()
			}
		})
	})

	a.session.OnProgress(func(pr core.Progress) {
		fyne.Do(func() {
			a.progressBar.Show()
			a.progressBar.SetValue(pr.Fraction)
		})
	})

	a.session.OnResult(func(res core.DetectionResult) {
		fyne.Do(func() {
			a.lastFrame = res.Frame
			a.view.ShowResult(res.Frame)
			a.info.ShowStats(res.Stats, res.Elapsed, res.Width, res.Height)
			a.progressBar.Hide()
			a.setStatus(fmt.Sprintf("✅ %d contours, %d markers (%dx%d, %s)",
				res.Stats.Contours, res.Stats.Markers,
				res.Width, res.Height,
				res.Elapsed.Round(time.Millisecond)))
		})
	})

	a.session.OnError(func(err error) {
		fyne.Do(func() {
			a.progressBar.Hide()
			if errors.Is(err, core.ErrNoImageLoaded) {
				a.setStatus(core.StatusNoImage)
				return
			}
			a.setStatus(fmt.Sprintf("❌ Detection failed: %s", err.Error()))
		})
	})

	a.params.SetDetectCallback(a.runDetection)

	a.menuHandler.SetCallbacks(
		a.loadImage,
		a.saveResult,
		a.saveSettings,
		func() {
			a.params.Reset()
			a.setStatus("↻ Parameters reset to defaults")
		},
	)
}

// runDetection snapshots the sliders and starts one background run. The
// error taxonomy decides what the user sees: a missing image gets the fixed
// status line, an unready state is ignored, anything else is surfaced.
func (a *Application) runDetection() {
	p := a.params.Params()
	a.logger.WithFields(logrus.Fields{
		"stride": p.Stride,
		"low":    p.LowThreshold,
		"high":   p.HighThreshold,
	}).Info("Detection requested")

	switch err := a.session.Run(p); {
	case err == nil:
		a.progressBar.Show()
		a.progressBar.SetValue(0)
		a.info.ShowProcessing()
		a.setStatus("🔄 Detecting contours...")
	case errors.Is(err, core.ErrNoImageLoaded):
		a.setStatus(core.StatusNoImage)
	case errors.Is(err, core.ErrNotReady):
		a.logger.Debug("Detection request ignored in current state")
	default:
		a.showError("Detection Error", err)
	}
}

// loadImage decodes the picked file off the UI thread and adopts it as the
// new source. A failure leaves the previous image, if any, untouched.
func (a *Application) loadImage(path string) {
	if err := a.machine.Transition(core.StateLoading); err != nil {
		a.logger.WithError(err).Debug("Load request ignored in current state")
		return
	}
	a.setStatus(fmt.Sprintf("⏳ Loading %s...", filepath.Base(path)))

	go func() {
		mat, err := a.loader.Load(path)
		if err != nil {
			a.revertLoad()
			fyne.Do(func() { a.showError("Failed to Load Image", err) })
			return
		}
		defer mat.Close()

		if err := a.store.Adopt(mat, path); err != nil {
			a.revertLoad()
			fyne.Do(func() { a.showError("Invalid Image", err) })
			return
		}

		frame := a.sourceFrame()

		if err := a.machine.Transition(core.StateReady); err != nil {
			a.logger.WithError(err).Error("State recovery after load failed")
		}

		meta := a.store.Metadata()
		fyne.Do(func() {
			a.lastFrame = nil
			a.view.ClearResult()
			if frame != nil {
				a.view.ShowSource(frame)
			}
			a.info.ShowImageInfo(meta, path)
			a.info.ClearStats()
			a.setStatus(fmt.Sprintf("✅ Loaded: %s (%dx%d)",
				filepath.Base(path), meta.Width, meta.Height))
		})

		a.logger.WithFields(logrus.Fields{
			"filepath": path,
			"width":    meta.Width,
			"height":   meta.Height,
		}).Info("Image loaded successfully")
	}()
}

// sourceFrame converts the stored source to a displayable image. Display is
// best effort: a conversion failure is logged and the load continues.
func (a *Application) sourceFrame() image.Image {
	src, err := a.store.Borrow()
	if err != nil {
		a.logger.WithError(err).Error("Source preview unavailable")
		return nil
	}
	defer vision.ReleaseMat(&src)

	frame, err := vision.MatToImage(src)
	if err != nil {
		a.logger.WithError(err).Error("Source preview conversion failed")
		return nil
	}
	return frame
}

// revertLoad returns the machine to where a failed load left the data:
// ready when a previous image survives, idle otherwise.
func (a *Application) revertLoad() {
	to := core.StateIdle
	if a.store.HasImage() {
		to = core.StateReady
	}
	if err := a.machine.Transition(to); err != nil {
		a.logger.WithError(err).Error("State recovery after failed load")
	}
}

func (a *Application) saveResult(path string) {
	if a.lastFrame == nil {
		a.showError("No Result", errors.New("run a detection before saving"))
		return
	}

	if err := a.loader.SaveImage(a.lastFrame, path); err != nil {
		a.showError("Failed to Save Result", err)
		return
	}

	a.setStatus(fmt.Sprintf("💾 Saved: %s", filepath.Base(path)))
	a.showInfo("💾 Result Saved", fmt.Sprintf("Annotated image saved to:\n%s", path))
}

func (a *Application) saveSettings() {
	p := a.params.Params()
	a.cfg.Stride = p.Stride
	a.cfg.LowThreshold = p.LowThreshold
	a.cfg.HighThreshold = p.HighThreshold

	if err := config.Save(a.cfg, a.cfgPath); err != nil {
		a.showError("Failed to Save Settings", err)
		return
	}

	a.setStatus(fmt.Sprintf("💾 Settings saved to %s", a.cfgPath))
	a.logger.WithField("filepath", a.cfgPath).Info("Settings saved")
}

func (a *Application) setStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.setStatus(fmt.Sprintf("❌ Error: %s", err.Error()))
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.session.Wait()
	a.store.Close()
	a.monitor.Stop()
}
