package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/inkwell/internal/engine/differ"
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/view"
	"github.com/dshills/inkwell/internal/logging"
)

// Editor owns one document and everything needed to edit it in a host:
// the view, the selection, undo history and hook pipelines.
//
// An Editor is not safe for concurrent use. Each operation runs one full
// edit, rerender and reapply cycle; an operation started while another is
// still running, including from inside a hook listener, fails with
// ErrReentrant.
type Editor struct {
	busy atomic.Bool

	doc     *doc.Document
	view    *view.View
	reg     *format.Registry
	sel     *selection.Selection
	history *history.History
	mover   *selection.Mover
	hooks   *Hooks
	log     *logging.Logger

	maxUndoEntries  int
	targetDecay     time.Duration
	lineSearchLimit int
}

// New creates an editor for d rendering through v.
func New(d *doc.Document, v *view.View, opts ...Option) *Editor {
	e := &Editor{
		doc:   d,
		view:  v,
		reg:   v.Builder().Registry(),
		sel:   selection.New(),
		hooks: NewHooks(),
	}
	defaults(e)
	for _, opt := range opts {
		opt(e)
	}

	e.log = e.log.WithComponent("editor")
	e.history = history.New(e.maxUndoEntries)
	e.mover = selection.NewMover(e.targetDecay, e.lineSearchLimit)
	return e
}

// Document returns the live document.
func (e *Editor) Document() *doc.Document { return e.doc }

// View returns the view.
func (e *Editor) View() *view.View { return e.view }

// Registry returns the formatter registry.
func (e *Editor) Registry() *format.Registry { return e.reg }

// Selection returns the live selection.
func (e *Editor) Selection() *selection.Selection { return e.sel }

// History returns the undo history.
func (e *Editor) History() *history.History { return e.history }

// Hooks returns the listener pipelines.
func (e *Editor) Hooks() *Hooks { return e.hooks }

// enter marks the editor busy. The returned func releases it.
func (e *Editor) enter() (func(), error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrReentrant
	}
	return func() { e.busy.Store(false) }, nil
}

// Render rebuilds the render tree and reconciles it into the host.
func (e *Editor) Render() (differ.Stats, error) {
	leave, err := e.enter()
	if err != nil {
		return differ.Stats{}, err
	}
	defer leave()
	return e.render(), nil
}

func (e *Editor) render() differ.Stats {
	stats := e.view.Render(e.doc)
	e.log.Debug("render",
		"created", stats.Created,
		"destroyed", stats.Destroyed,
		"reused", stats.Reused,
	)
	e.hooks.AfterRender.Run(RenderEvent{Stats: stats})
	return stats
}

// SyncSelection reads the host's native selection into the model.
func (e *Editor) SyncSelection() error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	next := selection.New()
	if err := next.Bind(e.doc, e.view, e.view.Host()); err != nil {
		return fmt.Errorf("sync selection: %w", err)
	}
	if next.Equal(e.sel) {
		return nil
	}
	e.sel = next
	e.selectionChanged()
	return nil
}

// ApplySelection writes the model selection to the host.
func (e *Editor) ApplySelection() error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()
	return e.applySelection()
}

func (e *Editor) applySelection() error {
	if err := e.sel.Apply(e.view, e.view.Host()); err != nil {
		return fmt.Errorf("apply selection: %w", err)
	}
	return nil
}

// Select replaces the selection with one range from anchor to focus.
func (e *Editor) Select(anchor, focus doc.Position) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if err := e.validate(anchor, focus); err != nil {
		return err
	}
	r := selection.NewRange()
	r.Set(e.doc, anchor, focus)
	e.sel.Set(r)
	e.mover.ResetTarget()
	return e.selectionUpdated()
}

// AddRange adds a range to the selection.
func (e *Editor) AddRange(anchor, focus doc.Position) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if err := e.validate(anchor, focus); err != nil {
		return err
	}
	r := selection.NewRange()
	r.Set(e.doc, anchor, focus)
	e.sel.Add(r)
	return e.selectionUpdated()
}

func (e *Editor) validate(ps ...doc.Position) error {
	for _, p := range ps {
		if err := e.doc.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

// selectionUpdated writes the selection to the host, when rendered, and
// notifies listeners.
func (e *Editor) selectionUpdated() error {
	if e.view.Tree() != nil {
		if err := e.applySelection(); err != nil {
			return err
		}
	}
	e.selectionChanged()
	return nil
}

func (e *Editor) selectionChanged() {
	e.hooks.SelectionChange.Run(SelectionEvent{Selection: e.sel.Clone()})
}

// before runs the BeforeCommand pipeline.
func (e *Editor) before(ev CommandEvent) error {
	ev.Selection = e.sel.Clone()
	if !e.hooks.BeforeCommand.Run(ev) {
		e.log.Info("command cancelled", "command", ev.Name, "key", ev.Key)
		return fmt.Errorf("%s: %w", ev.Name, ErrCancelled)
	}
	return nil
}
