package engine

import (
	"time"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/logging"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger. The editor logs under the "editor" component.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithTargetDecay sets how long a vertical target column is remembered.
func WithTargetDecay(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.targetDecay = d
		}
	}
}

// WithLineSearchLimit bounds the caret stops examined per vertical move.
func WithLineSearchLimit(limit int) Option {
	return func(e *Editor) {
		if limit > 0 {
			e.lineSearchLimit = limit
		}
	}
}

// WithConfig applies the cursor and history sections of cfg.
func WithConfig(cfg config.Config) Option {
	return func(e *Editor) {
		WithMaxUndoEntries(cfg.History.MaxEntries)(e)
		WithTargetDecay(cfg.Cursor.TargetDecay)(e)
		WithLineSearchLimit(cfg.Cursor.LineSearchLimit)(e)
	}
}

// WithSelection sets the initial selection.
func WithSelection(s *selection.Selection) Option {
	return func(e *Editor) {
		if s != nil {
			e.sel = s
		}
	}
}

func defaults(e *Editor) {
	e.maxUndoEntries = history.DefaultMaxEntries
	e.targetDecay = selection.DefaultTargetDecay
	e.lineSearchLimit = selection.DefaultLineSearchLimit
	e.log = logging.Discard()
}
