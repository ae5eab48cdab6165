package selection

import "errors"

var (
	// ErrDetached is returned when a detached range is applied.
	ErrDetached = errors.New("range is detached")

	// ErrNoRanges is returned when an operation needs at least one range.
	ErrNoRanges = errors.New("selection has no ranges")
)
