// Image file loading and saving over the OpenCV codecs
package imgio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// SupportedExtensions lists the file extensions the loader accepts, matching
// the codecs the OpenCV build ships with.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".webp"}

// Loader handles image file operations.
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load decodes an image file into a BGR Mat owned by the caller.
func (l *Loader) Load(path string) (gocv.Mat, error) {
	l.logger.WithField("path", path).Debug("Loading image")

	if !IsSupportedFormat(path) {
		return gocv.Mat{}, fmt.Errorf("unsupported image format: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return gocv.Mat{}, fmt.Errorf("cannot access image file: %w", err)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return gocv.Mat{}, fmt.Errorf("failed to decode image: %s", path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded")

	return mat, nil
}

// Decode turns in-memory encoded image bytes into a BGR Mat owned by the
// caller. Used for sources that arrive through a reader instead of a path.
func (l *Loader) Decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.Mat{}, fmt.Errorf("cannot decode empty image data")
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to decode image data: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("image data decoded to an empty buffer")
	}

	l.logger.WithFields(logrus.Fields{
		"width":  mat.Cols(),
		"height": mat.Rows(),
		"bytes":  len(data),
	}).Debug("Image decoded from memory")

	return mat, nil
}

// SaveMat encodes a Mat to an image file.
func (l *Loader) SaveMat(mat gocv.Mat, path string) error {
	l.logger.WithField("path", path).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}
	if !IsSupportedFormat(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to save image: %s", path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	}).Info("Image saved")

	return nil
}

// SaveImage encodes an image.Image to a file, converting through a transient
// Mat that is always released.
func (l *Loader) SaveImage(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("cannot save nil image")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("failed to convert image for saving: %w", err)
	}
	defer mat.Close()

	return l.SaveMat(mat, path)
}

// ValidateFile checks that a path names a decodable image without handing
// the decoded buffer to the caller.
func (l *Loader) ValidateFile(path string) error {
	if !IsSupportedFormat(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot access image file: %w", err)
	}

	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return fmt.Errorf("invalid or corrupted image file: %s", path)
	}
	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid image dimensions in %s", path)
	}

	return nil
}

// IsSupportedFormat reports whether the path carries a recognized image
// extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
