// Background detection session coordinating store, state, and pipeline
package core

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/logisoltech/boundary/internal/vision"
)

// Progress reports a pipeline stage to the UI. Fraction is in [0, 1].
type Progress struct {
	Stage    string
	Fraction float64
}

// DetectionResult carries the finished annotated frame back to the UI along
// with run statistics. Frame is a pure Go image; no native buffers survive
// the run.
type DetectionResult struct {
	Frame   image.Image
	Stats   vision.Stats
	Elapsed time.Duration
	Width   int
	Height  int
}

// detectFunc matches vision.DetectContours and exists so tests can force
// pipeline failures.
type detectFunc func(gocv.Mat, vision.Params) (gocv.Mat, vision.Stats, error)

// Session runs detection in a background goroutine so the UI stays
// responsive. At most one run is in flight at a time; the state machine
// enforces that. Results, progress, and errors are delivered through
// callbacks invoked on the worker goroutine, so UI layers must hop back to
// their own thread before touching widgets.
type Session struct {
	store        *ImageStore
	machine      *Machine
	logger       *logrus.Logger
	maxDimension int

	onProgress func(Progress)
	onResult   func(DetectionResult)
	onError    func(error)

	detect detectFunc
	wg     sync.WaitGroup
}

// NewSession wires a session over an image store and state machine.
// maxDimension bounds the working copy before detection; non-positive
// disables downscaling.
func NewSession(store *ImageStore, machine *Machine, logger *logrus.Logger, maxDimension int) *Session {
	return &Session{
		store:        store,
		machine:      machine,
		logger:       logger,
		maxDimension: maxDimension,
		detect:       vision.DetectContours,
	}
}

// OnProgress registers the progress callback. Configure callbacks before the
// first Run.
func (s *Session) OnProgress(fn func(Progress)) { s.onProgress = fn }

// OnResult registers the result callback.
func (s *Session) OnResult(fn func(DetectionResult)) { s.onResult = fn }

// OnError registers the error callback.
func (s *Session) OnError(fn func(error)) { s.onError = fn }

// Run starts one detection run with the given parameters. It returns
// ErrNoImageLoaded when nothing is loaded and ErrNotReady when the machine
// is not in StateReady, for example while a load or another run is in
// flight. On success the run continues in the background and reports through
// the callbacks.
func (s *Session) Run(p vision.Params) error {
	if !s.store.HasImage() {
		return ErrNoImageLoaded
	}
	if !s.machine.TryBegin(StateReady, StateProcessing) {
		return ErrNotReady
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.process(p)
	}()
	return nil
}

// Wait blocks until any in-flight run has finished. Used on teardown so
// native buffers are not torn down under a live pipeline.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) process(p vision.Params) {
	start := time.Now()

	defer func() {
		if err := s.machine.Transition(StateReady); err != nil {
			s.logger.WithError(err).Error("State recovery after run failed")
		}
	}()

	result, err := s.safeRun(p)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"stride": p.Stride,
			"low":    p.LowThreshold,
			"high":   p.HighThreshold,
		}).WithError(err).Error("Detection run failed")
		s.emitError(err)
		return
	}

	result.Elapsed = time.Since(start)
	s.logger.WithFields(logrus.Fields{
		"contours": result.Stats.Contours,
		"markers":  result.Stats.Markers,
		"elapsed":  result.Elapsed.String(),
	}).Info("Detection run complete")

	s.emitProgress(Progress{Stage: "done", Fraction: 1.0})
	s.emitResult(result)
}

// safeRun converts panics escaping the pipeline into errors so a native
// fault cannot take down the process. Buffer cleanup happens in runPipeline
// defers, which unwind before the recover here.
func (s *Session) safeRun(p vision.Params) (result DetectionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = DetectionResult{}
			err = fmt.Errorf("pipeline fault: %v", r)
		}
	}()
	return s.runPipeline(p)
}

// runPipeline owns exactly two caller-side buffers: the borrowed working
// copy and the annotated output. Both are released here on every path;
// intermediates are scoped inside the detector itself.
func (s *Session) runPipeline(p vision.Params) (DetectionResult, error) {
	s.emitProgress(Progress{Stage: "load", Fraction: 0.10})

	working, err := s.store.Borrow()
	if err != nil {
		return DetectionResult{}, err
	}
	defer vision.ReleaseMat(&working)

	s.emitProgress(Progress{Stage: "downscale", Fraction: 0.25})
	working = vision.Downscale(working, s.maxDimension)

	s.emitProgress(Progress{Stage: "detect", Fraction: 0.60})
	annotated, stats, err := s.detect(working, p)
	if err != nil {
		return DetectionResult{}, err
	}
	defer vision.ReleaseMat(&annotated)

	s.emitProgress(Progress{Stage: "render", Fraction: 0.90})
	frame, err := vision.MatToImage(annotated)
	if err != nil {
		return DetectionResult{}, fmt.Errorf("render annotated frame: %w", err)
	}

	return DetectionResult{
		Frame:  frame,
		Stats:  stats,
		Width:  annotated.Cols(),
		Height: annotated.Rows(),
	}, nil
}

func (s *Session) emitProgress(pr Progress) {
	if s.onProgress != nil {
		s.onProgress(pr)
	}
}

func (s *Session) emitResult(res DetectionResult) {
	if s.onResult != nil {
		s.onResult(res)
	}
}

func (s *Session) emitError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}
