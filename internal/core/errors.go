// Error taxonomy for detection triggering
package core

import "errors"

var (
	// ErrNotReady means a detection was requested while the application was
	// not in a state that can accept one. Callers treat it as a silent no-op.
	ErrNotReady = errors.New("detection not available in current state")

	// ErrNoFileSelected means a file dialog closed without a choice. Callers
	// treat it as a silent no-op.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrNoImageLoaded means detection was requested before any image was
	// loaded. Surfaced to the user as StatusNoImage.
	ErrNoImageLoaded = errors.New("no image loaded")
)

// StatusNoImage is the fixed status line shown for ErrNoImageLoaded.
const StatusNoImage = "Please upload an image first."
