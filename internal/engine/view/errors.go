package view

import "errors"

var (
	// ErrNotRendered is returned when a coordinate is requested before Render.
	ErrNotRendered = errors.New("view not rendered")

	// ErrUnknownNode is returned for host handles that are not part of the view.
	ErrUnknownNode = errors.New("unknown host node")
)
