package doc

import (
	"errors"
	"fmt"
)

// Errors returned by document operations.
var (
	// ErrUnknownFragment indicates a fragment id is not part of the document.
	ErrUnknownFragment = errors.New("unknown fragment")

	// ErrOffsetOutOfRange indicates an index outside [0, Len].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrWrongKind indicates an operation that the component kind does not support.
	ErrWrongKind = errors.New("operation not supported by component kind")

	// ErrSlotOutOfRange indicates an invalid slot index.
	ErrSlotOutOfRange = errors.New("slot index out of range")
)

// PositionError describes an invalid position.
type PositionError struct {
	Pos Position
	Err error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %s: %v", e.Pos, e.Err)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}
