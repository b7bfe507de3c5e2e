package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestMatToImageGray(t *testing.T) {
	mat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV8U)
	defer mat.Close()
	mat.SetUCharAt(1, 2, 200)

	img, err := MatToImage(mat)
	require.NoError(t, err)

	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, 3, gray.Bounds().Dx())
	assert.Equal(t, 2, gray.Bounds().Dy())
	assert.Equal(t, uint8(200), gray.GrayAt(2, 1).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(0, 0).Y)
}

func TestMatToImageBGR(t *testing.T) {
	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer mat.Close()

	// BGR order in the Mat must land as RGB in the image.
	mat.SetUCharAt3(0, 0, 0, 255) // blue
	mat.SetUCharAt3(1, 1, 2, 255) // red

	img, err := MatToImage(mat)
	require.NoError(t, err)

	rgba, ok := img.(*image.RGBA)
	require.True(t, ok)

	c := rgba.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.B)
	assert.Equal(t, uint8(0), c.R)
	assert.Equal(t, uint8(255), c.A)

	c = rgba.RGBAAt(1, 1)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.B)
}

func TestMatToImageEmpty(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := MatToImage(empty)
	assert.Error(t, err)
}

func TestMatToImageUnsupportedChannels(t *testing.T) {
	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC2)
	defer mat.Close()

	_, err := MatToImage(mat)
	assert.Error(t, err)
}
