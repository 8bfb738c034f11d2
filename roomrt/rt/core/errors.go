package core

import "errors"

var (
	// ErrResourceCreation means a mesh, shader, texture or binding could not
	// be materialized. Fatal during initialization.
	ErrResourceCreation = errors.New("resource creation failed")

	// ErrInvalidConfiguration is a programmer error caught at construction,
	// e.g. a texture count that no shader variant supports.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrPostDispose is returned when a disposed object is used again.
	ErrPostDispose = errors.New("use after dispose")
)
