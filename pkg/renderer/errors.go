package renderer

import "errors"

var (
	ErrInvalidWidth       = errors.New("renderer: image width must be positive")
	ErrInvalidAspectRatio = errors.New("renderer: aspect ratio must be positive")
	ErrInvalidFieldOfView = errors.New("renderer: vertical field of view must be in (0, 180) degrees")
	ErrDegenerateView     = errors.New("renderer: look-from, look-at and up do not define a view")
	ErrInvalidSamples     = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidDepth       = errors.New("renderer: max depth must not be negative")
)
