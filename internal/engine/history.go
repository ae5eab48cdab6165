package engine

import (
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/engine/history"
)

// Snapshot captures the document and selection.
func (e *Editor) Snapshot(description string) *history.Snapshot {
	return history.Take(e.doc, e.sel, description)
}

// Restore replaces the document and selection with s and rerenders.
// The restore itself is recorded so it can be undone.
func (e *Editor) Restore(s *history.Snapshot) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if err := e.before(CommandEvent{Name: "restore"}); err != nil {
		return err
	}
	e.checkpoint("restore " + s.Description())
	e.restore(s)
	return e.settle()
}

// Checkpoint records the current state as an undo step. Callers that edit
// the document directly call it before mutating.
func (e *Editor) Checkpoint(description string) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	e.checkpoint(description)
	return nil
}

// Undo restores the state before the last recorded step.
func (e *Editor) Undo() error {
	return e.travel(HistoryUndo, e.history.Undo)
}

// Redo reapplies the last undone step.
func (e *Editor) Redo() error {
	return e.travel(HistoryRedo, e.history.Redo)
}

func (e *Editor) travel(action HistoryAction, step func(*history.Snapshot) (*history.Snapshot, error)) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	s, err := step(e.Snapshot(""))
	if err != nil {
		if errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo) {
			return err
		}
		return fmt.Errorf("%s: %w", action, err)
	}
	e.restore(s)
	e.historyChanged(action, s.Description())
	return e.settle()
}

func (e *Editor) checkpoint(description string) {
	if e.history.Push(e.Snapshot(description)) {
		e.log.Warn("history full, dropped oldest entry",
			"max", e.history.MaxEntries(),
			"dropped", e.history.Dropped(),
		)
	}
	e.historyChanged(HistoryPush, description)
}

func (e *Editor) restore(s *history.Snapshot) {
	e.doc, e.sel = s.Restore()
	e.mover.ResetTarget()
}

func (e *Editor) historyChanged(action HistoryAction, description string) {
	e.hooks.HistoryChange.Run(HistoryEvent{
		Action:      action,
		Description: description,
		UndoCount:   e.history.UndoCount(),
		RedoCount:   e.history.RedoCount(),
	})
}
