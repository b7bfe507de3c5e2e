package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/logisoltech/boundary/internal/debug"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name       string
		w, h, max  int
		wantW      int
		wantH      int
		wantResize bool
	}{
		{"fits exactly", 1200, 600, 1200, 1200, 600, false},
		{"smaller than bound", 640, 480, 1200, 640, 480, false},
		{"wide image scaled", 2000, 1000, 1200, 1200, 600, true},
		{"tall image scaled", 1000, 2000, 1200, 600, 1200, true},
		{"square scaled", 2400, 2400, 1200, 1200, 1200, true},
		{"rounding to nearest", 1999, 1000, 1200, 1200, 600, true},
		{"tiny never upscaled", 10, 5, 1200, 10, 5, false},
		{"extreme aspect floors at one", 5000, 1, 1200, 1200, 1, true},
		{"non-positive bound disables", 2000, 1000, 0, 2000, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, resize := TargetSize(tt.w, tt.h, tt.max)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.Equal(t, tt.wantResize, resize)
		})
	}
}

func TestTargetSizePreservesAspect(t *testing.T) {
	w, h, resize := TargetSize(1333, 777, 500)
	require.True(t, resize)
	assert.Equal(t, 500, w)

	// Aspect ratio must survive to within rounding.
	inRatio := float64(1333) / float64(777)
	outRatio := float64(w) / float64(h)
	assert.InDelta(t, inRatio, outRatio, 0.01)
}

func TestDownscaleNoOpKeepsBuffer(t *testing.T) {
	debug.ResetMatCounters()

	mat := gocv.NewMatWithSize(600, 800, gocv.MatTypeCV8UC3)
	out := Downscale(mat, 1200)

	assert.Equal(t, 800, out.Cols())
	assert.Equal(t, 600, out.Rows())

	// No resize issued: no allocation, no release.
	allocs, releases := debug.MatBalance()
	assert.Zero(t, allocs)
	assert.Zero(t, releases)

	out.Close()
}

func TestDownscaleBoundsLargestSide(t *testing.T) {
	debug.ResetMatCounters()

	mat := gocv.NewMatWithSize(1000, 2000, gocv.MatTypeCV8UC3)
	out := Downscale(mat, 1200)
	defer ReleaseMat(&out)

	assert.Equal(t, 1200, out.Cols())
	assert.Equal(t, 600, out.Rows())
}

func TestDownscaleReleasesOriginal(t *testing.T) {
	debug.ResetMatCounters()

	mat := gocv.NewMatWithSize(2000, 1000, gocv.MatTypeCV8UC3)
	TrackAlloc()

	out := Downscale(mat, 1200)

	assert.Equal(t, 600, out.Cols())
	assert.Equal(t, 1200, out.Rows())

	// Resized buffer allocated, original released.
	allocs, releases := debug.MatBalance()
	assert.Equal(t, int64(2), allocs)
	assert.Equal(t, int64(1), releases)

	ReleaseMat(&out)
	allocs, releases = debug.MatBalance()
	assert.Equal(t, allocs, releases)
}
