// Contour detection pipeline over the OpenCV backend
package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Annotation styling, fixed by design: green outlines, red vertex markers.
var (
	outlineColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	markerColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

const (
	outlineThickness = 2
	markerRadius     = 2
	blurKernelSize   = 5

	// MaxMarkersPerContour caps how many sampled vertices are drawn for any
	// single contour.
	MaxMarkersPerContour = 3000
)

// Stats summarizes one detection run.
type Stats struct {
	Contours int
	Vertices int
	Markers  int
}

// DetectContours runs the fixed detection sequence on img: grayscale
// conversion, 5x5 Gaussian blur with sigma derived from the kernel, Canny
// edge detection with the supplied thresholds, external-only contour
// extraction with compressed boundaries, then annotation. Each contour is
// outlined in the highlight color and its vertices are marked at the
// configured stride, starting from vertex 0, up to MaxMarkersPerContour
// markers per contour.
//
// The thresholds are handed to Canny as given; an inverted pair is ordered
// by the backend itself, so results stay deterministic without validation.
//
// The input Mat is read, never modified or consumed. The returned Mat is a
// freshly allocated annotated buffer owned by the caller, to be freed with
// ReleaseMat. Every intermediate buffer is released before return on
// success, error, and panic paths alike.
func DetectContours(img gocv.Mat, p Params) (annotated gocv.Mat, stats Stats, err error) {
	if img.Empty() {
		return gocv.Mat{}, Stats{}, fmt.Errorf("detect contours: empty input image")
	}

	scope := newMatScope()
	defer scope.closeAll()

	defer func() {
		if r := recover(); r != nil {
			annotated = gocv.Mat{}
			stats = Stats{}
			err = fmt.Errorf("detect contours: vision backend fault: %v", r)
		}
	}()

	out := img.Clone()
	scope.track(&out)

	gray := gocv.NewMat()
	scope.track(&gray)
	if img.Channels() == 1 {
		img.CopyTo(&gray)
	} else {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	}

	blurred := gocv.NewMat()
	scope.track(&blurred)
	gocv.GaussianBlur(gray, &blurred, image.Pt(blurKernelSize, blurKernelSize), 0, 0, gocv.BorderDefault)
	scope.release(&gray)

	edges := gocv.NewMat()
	scope.track(&edges)
	gocv.Canny(blurred, &edges, float32(p.LowThreshold), float32(p.HighThreshold))
	scope.release(&blurred)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	scope.trackCloser(contours.Close)
	scope.release(&edges)

	stride := p.Stride
	if stride < MinStride {
		stride = MinStride
	}

	stats.Contours = contours.Size()
	for i := 0; i < contours.Size(); i++ {
		gocv.DrawContours(&out, contours, i, outlineColor, outlineThickness)

		pts := contours.At(i)
		n := pts.Size()
		stats.Vertices += n
		for _, idx := range markerIndices(n, stride, MaxMarkersPerContour) {
			gocv.Circle(&out, pts.At(idx), markerRadius, markerColor, -1)
			stats.Markers++
		}
	}

	scope.detach(&out)
	return out, stats, nil
}

// markerIndices returns the vertex indices selected for marker drawing:
// every strideth index starting at 0, at most limit entries.
func markerIndices(n, stride, limit int) []int {
	if n <= 0 || stride < 1 || limit <= 0 {
		return nil
	}

	count := (n + stride - 1) / stride
	if count > limit {
		count = limit
	}

	indices := make([]int, 0, count)
	for i := 0; i < n && len(indices) < limit; i += stride {
		indices = append(indices, i)
	}
	return indices
}
