package engine

import (
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// MoveLeft moves every focus to the previous caret stop. Without extend, a
// non-collapsed range collapses to its start instead.
func (e *Editor) MoveLeft(extend bool) error {
	return e.horizontal(extend, false)
}

// MoveRight moves every focus to the next caret stop. Without extend, a
// non-collapsed range collapses to its end instead.
func (e *Editor) MoveRight(extend bool) error {
	return e.horizontal(extend, true)
}

// MoveUp moves the primary focus one rendered line up.
func (e *Editor) MoveUp(extend bool) error {
	return e.vertical(extend, false)
}

// MoveDown moves the primary focus one rendered line down.
func (e *Editor) MoveDown(extend bool) error {
	return e.vertical(extend, true)
}

func (e *Editor) horizontal(extend, forward bool) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if e.sel.IsEmpty() {
		return ErrNoSelection
	}
	e.mover.ResetTarget()

	step := selection.Prev
	if forward {
		step = selection.Next
	}
	for _, r := range e.sel.Ranges() {
		if !extend && !r.Collapsed() {
			if forward {
				r.Collapse(r.End())
			} else {
				r.Collapse(r.Start())
			}
			continue
		}
		p, ok := step(e.doc, r.Focus())
		if !ok {
			continue
		}
		e.moveTo(r, p, extend)
	}
	return e.selectionUpdated()
}

func (e *Editor) vertical(extend, down bool) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	r := e.sel.Primary()
	if r == nil {
		return ErrNoSelection
	}
	p, ok := e.mover.Vertical(e.doc, e.view, r.Focus(), down)
	if !ok {
		return nil
	}
	e.moveTo(r, p, extend)
	return e.selectionUpdated()
}

func (e *Editor) moveTo(r *selection.Range, p doc.Position, extend bool) {
	if extend {
		r.Extend(e.doc, p)
		return
	}
	r.Collapse(p)
}
