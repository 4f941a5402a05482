// Package geometry builds CPU-side surfaces in a fixed vertex record, describes
// them to the GPU through a vertex.Format and draws them through a Device.
package geometry

import "errors"

// Geometry errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyGeometry   = errors.New("surface has no vertices or indices")
	ErrNotBuilt        = errors.New("surface rendered before Build")
	ErrAlreadyBuilt    = errors.New("surface already built")
	ErrInvalidDrawMode = errors.New("invalid draw mode")
	ErrNoDevice        = errors.New("no device")
)
