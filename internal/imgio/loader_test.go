package imgio

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func newTestLoader() *Loader {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewLoader(logger)
}

func TestIsSupportedFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"scan.tiff", true},
		{"scan.tif", true},
		{"icon.png", true},
		{"old.bmp", true},
		{"modern.webp", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupportedFormat(tt.path))
		})
	}
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.Load("document.pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestLoadMissingFile(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	loader := newTestLoader()
	path := filepath.Join(t.TempDir(), "fixture.png")

	mat := gocv.NewMatWithSize(32, 48, gocv.MatTypeCV8UC3)
	defer mat.Close()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gocv.Rectangle(&mat, image.Rect(8, 8, 40, 24), white, -1)

	require.NoError(t, loader.SaveMat(mat, path))

	loaded, err := loader.Load(path)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, 48, loaded.Cols())
	assert.Equal(t, 32, loaded.Rows())
	assert.Equal(t, 3, loaded.Channels())
}

func TestSaveMatRejectsEmpty(t *testing.T) {
	loader := newTestLoader()

	empty := gocv.NewMat()
	defer empty.Close()

	err := loader.SaveMat(empty, filepath.Join(t.TempDir(), "out.png"))
	assert.Error(t, err)
}

func TestSaveImageRoundTrip(t *testing.T) {
	loader := newTestLoader()
	path := filepath.Join(t.TempDir(), "frame.png")

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		img.SetRGBA(x, 5, color.RGBA{R: 255, A: 255})
	}

	require.NoError(t, loader.SaveImage(img, path))

	loaded, err := loader.Load(path)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, 20, loaded.Cols())
	assert.Equal(t, 10, loaded.Rows())
}

func TestValidateFile(t *testing.T) {
	loader := newTestLoader()
	dir := t.TempDir()

	t.Run("valid image passes", func(t *testing.T) {
		path := filepath.Join(dir, "ok.png")
		mat := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
		defer mat.Close()
		require.NoError(t, loader.SaveMat(mat, path))

		assert.NoError(t, loader.ValidateFile(path))
	})

	t.Run("missing file fails", func(t *testing.T) {
		assert.Error(t, loader.ValidateFile(filepath.Join(dir, "gone.png")))
	})

	t.Run("wrong extension fails", func(t *testing.T) {
		assert.Error(t, loader.ValidateFile(filepath.Join(dir, "data.bin")))
	})
}

func TestDecodeEmptyData(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.Decode(nil)
	assert.Error(t, err)
}

func TestDecodeGarbageData(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.Decode([]byte("definitely not an image"))
	assert.Error(t, err)
}
