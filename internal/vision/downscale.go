// Bounded-ratio image downscaling
package vision

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/logisoltech/boundary/internal/debug"
)

// DefaultMaxDimension bounds the largest side of a working image.
const DefaultMaxDimension = 1200

// TargetSize computes the downscaled dimensions for an image so that its
// largest side does not exceed maxDimension. The boolean reports whether a
// resize is needed; when false the input dimensions are returned unchanged.
// Scaling preserves aspect ratio to within rounding and never upscales.
func TargetSize(width, height, maxDimension int) (int, int, bool) {
	longest := width
	if height > longest {
		longest = height
	}
	if maxDimension <= 0 || longest <= maxDimension {
		return width, height, false
	}

	scale := float64(maxDimension) / float64(longest)
	newW := int(math.Round(float64(width) * scale))
	newH := int(math.Round(float64(height) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH, true
}

// Downscale bounds the largest dimension of mat to maxDimension using area
// interpolation, which averages source pixels and avoids aliasing when
// shrinking. When the image already fits, the input is returned unchanged
// with no new allocation. Otherwise the original buffer is released and the
// resized buffer returned; the caller owns the result either way.
func Downscale(mat gocv.Mat, maxDimension int) gocv.Mat {
	newW, newH, needed := TargetSize(mat.Cols(), mat.Rows(), maxDimension)
	if !needed {
		return mat
	}

	resized := gocv.NewMat()
	debug.CountMatAlloc()
	gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)

	mat.Close()
	debug.CountMatRelease()
	return resized
}
