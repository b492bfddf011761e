package sketchpad

import "errors"

// Errors returned by New and by operations that report failures directly.
var (
	// ErrInvalidSize is returned for a non-positive canvas size or layer count.
	ErrInvalidSize = errors.New("sketchpad: invalid canvas size")

	// ErrInvalidLayer is returned for a layer index outside the content layers.
	ErrInvalidLayer = errors.New("sketchpad: invalid layer")

	// ErrInvalidSnapshot is returned when restored history refers to
	// drawables that do not exist.
	ErrInvalidSnapshot = errors.New("sketchpad: invalid snapshot")

	// ErrNoLayers is reported by exports that select no layer.
	ErrNoLayers = errors.New("sketchpad: no active layers")

	// ErrClosed is returned by operations on a closed Sketchpad.
	ErrClosed = errors.New("sketchpad: closed")
)
