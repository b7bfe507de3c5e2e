// Thread-safe holder for the loaded source image
package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"github.com/logisoltech/boundary/internal/debug"
)

// ImageStore owns the decoded source image. At most one source is live at a
// time: adopting a new image releases the previous one, and Close releases
// whatever remains on teardown. Pipeline runs never touch the stored buffer
// directly; they Borrow a clone they own for the duration of the run.
type ImageStore struct {
	mu       sync.RWMutex
	source   gocv.Mat
	hasImage bool
	path     string
	meta     ImageMetadata
}

// ImageMetadata describes the stored source image.
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Type     gocv.MatType
	Format   string
}

func NewImageStore() *ImageStore {
	return &ImageStore{
		source: gocv.NewMat(),
	}
}

// Adopt validates mat and stores a clone of it as the current source,
// releasing any previously held source first. The caller keeps ownership of
// the mat it passed in.
func (s *ImageStore) Adopt(mat gocv.Mat, path string) error {
	if err := ValidateImage(mat); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.source.Empty() {
		s.source.Close()
	}

	s.source = mat.Clone()
	s.hasImage = true
	s.path = path
	s.meta = ImageMetadata{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Type:     mat.Type(),
		Format:   formatFromPath(path),
	}

	return nil
}

// Borrow returns a clone of the source for one pipeline run. The clone is
// counted as a run allocation; the caller must release it.
func (s *ImageStore) Borrow() (gocv.Mat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasImage || s.source.Empty() {
		return gocv.Mat{}, ErrNoImageLoaded
	}

	clone := s.source.Clone()
	debug.CountMatAlloc()
	return clone, nil
}

// HasImage reports whether a source image is loaded.
func (s *ImageStore) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasImage
}

// Metadata returns the stored image description.
func (s *ImageStore) Metadata() ImageMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Path returns the source file path.
func (s *ImageStore) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Clear releases the held source and returns the store to its empty state.
func (s *ImageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.source.Empty() {
		s.source.Close()
	}

	s.source = gocv.NewMat()
	s.hasImage = false
	s.path = ""
	s.meta = ImageMetadata{}
}

// Close releases all resources on teardown.
func (s *ImageStore) Close() {
	s.Clear()
}

// ValidateImage checks a Mat for the basic requirements of a source image.
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("image is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	channels := mat.Channels()
	if channels != 1 && channels != 3 && channels != 4 {
		return fmt.Errorf("unsupported channel count: %d", channels)
	}

	// Guard against pathological inputs before they reach native code.
	const maxDimension = 16384
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}

func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
