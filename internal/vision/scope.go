// Scoped release guards for native vision buffers
package vision

import (
	"gocv.io/x/gocv"

	"github.com/logisoltech/boundary/internal/debug"
)

// matScope guarantees that every tracked native buffer is released exactly
// once, whether its pipeline run succeeds, fails, or panics. Buffers the
// pipeline finishes with early are released eagerly; closeAll sweeps the
// rest when the scope unwinds.
type matScope struct {
	mats []*scopedMat
	aux  []*scopedCloser
}

type scopedMat struct {
	mat      *gocv.Mat
	released bool
}

type scopedCloser struct {
	closeFn  func()
	released bool
}

func newMatScope() *matScope {
	return &matScope{}
}

// track registers a freshly allocated Mat with the scope.
func (s *matScope) track(m *gocv.Mat) {
	debug.CountMatAlloc()
	s.mats = append(s.mats, &scopedMat{mat: m})
}

// release closes a tracked Mat ahead of scope teardown. Releasing the same
// Mat twice is a no-op.
func (s *matScope) release(m *gocv.Mat) {
	for _, t := range s.mats {
		if t.mat == m && !t.released {
			t.released = true
			t.mat.Close()
			debug.CountMatRelease()
			return
		}
	}
}

// detach transfers ownership of a tracked Mat to the caller; the scope will
// no longer close it. The new owner must eventually call ReleaseMat.
func (s *matScope) detach(m *gocv.Mat) {
	for _, t := range s.mats {
		if t.mat == m && !t.released {
			t.released = true
			return
		}
	}
}

// trackCloser registers a non-Mat native resource, such as a contour vector.
func (s *matScope) trackCloser(closeFn func()) {
	debug.CountMatAlloc()
	s.aux = append(s.aux, &scopedCloser{closeFn: closeFn})
}

// closeAll releases everything still tracked, newest first. Entries already
// released or detached are skipped, so a deferred closeAll after early
// releases never double-frees.
func (s *matScope) closeAll() {
	for i := len(s.aux) - 1; i >= 0; i-- {
		if !s.aux[i].released {
			s.aux[i].released = true
			s.aux[i].closeFn()
			debug.CountMatRelease()
		}
	}
	for i := len(s.mats) - 1; i >= 0; i-- {
		if !s.mats[i].released {
			s.mats[i].released = true
			s.mats[i].mat.Close()
			debug.CountMatRelease()
		}
	}
}

// TrackAlloc records a native buffer allocation made outside a scope, such
// as a source clone borrowed for one run.
func TrackAlloc() {
	debug.CountMatAlloc()
}

// ReleaseMat closes a caller-owned Mat and keeps the accounting balanced.
func ReleaseMat(m *gocv.Mat) {
	m.Close()
	debug.CountMatRelease()
}
