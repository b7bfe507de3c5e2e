// Mat to image.Image conversion for display
package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// MatToImage converts a Mat into an image.Image safe to hand to the GUI
// after the Mat is released. Channel layouts: 1 produces *image.Gray, 3 is
// treated as BGR, 4 as BGRA; both map to *image.RGBA.
func MatToImage(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("convert mat: empty input")
	}

	rows := mat.Rows()
	cols := mat.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("convert mat: invalid dimensions %dx%d", cols, rows)
	}

	switch channels := mat.Channels(); channels {
	case 1:
		gray := image.NewGray(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				gray.SetGray(x, y, color.Gray{Y: mat.GetUCharAt(y, x)})
			}
		}
		return gray, nil
	case 3:
		rgba := image.NewRGBA(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				b := mat.GetUCharAt3(y, x, 0)
				g := mat.GetUCharAt3(y, x, 1)
				r := mat.GetUCharAt3(y, x, 2)
				rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
		return rgba, nil
	case 4:
		rgba := image.NewRGBA(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				b := mat.GetUCharAt3(y, x, 0)
				g := mat.GetUCharAt3(y, x, 1)
				r := mat.GetUCharAt3(y, x, 2)
				a := mat.GetUCharAt3(y, x, 3)
				rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
			}
		}
		return rgba, nil
	default:
		return nil, fmt.Errorf("convert mat: unsupported channel count %d", channels)
	}
}
