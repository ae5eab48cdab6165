package engine

import (
	"errors"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// Errors returned by editor operations.
var (
	// ErrUnknownFragment indicates a position names a fragment outside the document.
	ErrUnknownFragment = doc.ErrUnknownFragment

	// ErrOffsetOutOfRange indicates an index outside [0, Len] of its fragment.
	ErrOffsetOutOfRange = doc.ErrOffsetOutOfRange

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrNoSelection indicates an operation needs at least one range.
	ErrNoSelection = selection.ErrNoRanges

	// ErrReentrant indicates an operation was started while another was running.
	ErrReentrant = errors.New("editor operation already in progress")

	// ErrCancelled indicates a BeforeCommand listener stopped the command.
	ErrCancelled = errors.New("command cancelled")

	// ErrUnknownFormat indicates a format key with no registered formatter.
	ErrUnknownFormat = errors.New("unknown format")
)
