package engine

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// ApplyFormat merges key into every selected scope. Block-level keys cover
// each touched fragment in full. Scopes of all ranges are resolved before
// any fragment changes, then applied in reverse document order.
func (e *Editor) ApplyFormat(key format.Key, state format.State, data format.Data, important bool) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if _, ok := e.reg.Lookup(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, key)
	}
	if e.sel.IsEmpty() {
		return ErrNoSelection
	}
	if err := e.before(CommandEvent{Name: "format", Key: key, State: state}); err != nil {
		return err
	}

	scopes := e.resolve()
	e.checkpoint(fmt.Sprintf("format %s %s", key, state))

	block := e.reg.Class(key).IsBlock()
	for _, s := range scopes {
		r := format.Range{Key: key, Start: s.Start, End: s.End, State: state, Data: data.Clone()}
		if block {
			r.Start, r.End = 0, s.Fragment.Len()
		}
		s.Fragment.Merge(e.reg, r, important)
	}

	return e.settle()
}

// InsertText replaces every range with s. Each caret ends after its
// inserted text.
func (e *Editor) InsertText(s string) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if e.sel.IsEmpty() {
		return ErrNoSelection
	}
	if err := e.before(CommandEvent{Name: "insert", Text: s}); err != nil {
		return err
	}

	scopes := e.resolve()
	starts := e.starts()
	e.checkpoint("insert")

	starts = e.cut(scopes, starts)
	n := utf8.RuneCountInString(s)
	carets := slices.Clone(starts)
	for i := len(starts) - 1; i >= 0; i-- {
		p := starts[i]
		f, ok := e.doc.Fragment(p.Fragment)
		if !ok {
			continue
		}
		f.InsertText(p.Index, s)
		for j := i; j < len(carets); j++ {
			if carets[j].Fragment == p.Fragment && carets[j].Index >= p.Index {
				carets[j].Index += n
			}
		}
	}
	e.collapseTo(carets)

	return e.settle()
}

// DeleteSelection removes the selected content. A collapsed range deletes
// the grapheme cluster or component before its caret.
func (e *Editor) DeleteSelection() error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if e.sel.IsEmpty() {
		return ErrNoSelection
	}
	if err := e.before(CommandEvent{Name: "delete"}); err != nil {
		return err
	}

	var scopes []selection.Scope
	starts := e.starts()
	for i, r := range e.sel.Sorted(e.doc) {
		if !r.Collapsed() {
			scopes = append(scopes, selection.SelectedScope(e.doc, r)...)
			continue
		}
		f, ok := e.doc.Fragment(r.Start().Fragment)
		if !ok || r.Start().Index == 0 {
			continue
		}
		prev := f.Content().PrevBoundary(r.Start().Index)
		scopes = append(scopes, selection.Scope{Fragment: f, Start: prev, End: r.Start().Index})
		starts[len(starts)-1-i].Index = prev
	}
	if len(scopes) == 0 {
		return nil
	}

	e.checkpoint("delete")
	e.collapseTo(e.cut(scopes, starts))

	return e.settle()
}

// QueryFormat reports Valid and the data at the primary caret when every
// selected scope is covered by key, and Invalid otherwise.
func (e *Editor) QueryFormat(key format.Key) (format.State, format.Data, error) {
	if _, ok := e.reg.Lookup(key); !ok {
		return format.Invalid, nil, fmt.Errorf("%w: %s", ErrUnknownFormat, key)
	}
	primary := e.sel.Primary()
	if primary == nil {
		return format.Invalid, nil, ErrNoSelection
	}

	for _, r := range e.sel.Ranges() {
		scopes := selection.SelectedScope(e.doc, r)
		if len(scopes) == 0 {
			return format.Invalid, nil, nil
		}
		for _, s := range scopes {
			if s.Len() == 0 && !r.Collapsed() {
				continue
			}
			if !s.Fragment.Formats().Covers(key, s.Start, s.End) {
				return format.Invalid, nil, nil
			}
		}
	}

	f, ok := e.doc.Fragment(primary.Start().Fragment)
	if !ok {
		return format.Invalid, nil, nil
	}
	at := primary.Start().Index
	if primary.Collapsed() && at > 0 {
		at--
	}
	if r, ok := f.Formats().At(key, at); ok {
		return format.Valid, r.Data.Clone(), nil
	}
	return format.Valid, nil, nil
}

// resolve returns the scopes of every range, computed before any edit.
func (e *Editor) resolve() []selection.Scope {
	var out []selection.Scope
	for _, r := range e.sel.Sorted(e.doc) {
		out = append(out, selection.SelectedScope(e.doc, r)...)
	}
	return out
}

// starts returns range starts in document order.
func (e *Editor) starts() []doc.Position {
	sorted := e.sel.Sorted(e.doc)
	out := make([]doc.Position, len(sorted))
	for i, r := range sorted {
		out[len(sorted)-1-i] = r.Start()
	}
	return out
}

// cut deletes scopes back to front within each fragment and returns ps
// mapped through the deletions.
func (e *Editor) cut(scopes []selection.Scope, ps []doc.Position) []doc.Position {
	scopes = slices.Clone(scopes)
	slices.SortStableFunc(scopes, func(a, b selection.Scope) int {
		if a.Fragment != b.Fragment {
			return cmp.Compare(a.Fragment.ID(), b.Fragment.ID())
		}
		return cmp.Compare(b.Start, a.Start)
	})

	out := slices.Clone(ps)
	structural := false
	for _, s := range scopes {
		if s.Len() == 0 {
			continue
		}
		for _, el := range s.Fragment.Delete(s.Start, s.End) {
			if el.Object != nil {
				structural = true
			}
		}
		for i, p := range out {
			switch {
			case p.Fragment != s.Fragment.ID() || p.Index <= s.Start:
			case p.Index >= s.End:
				out[i].Index -= s.Len()
			default:
				out[i].Index = s.Start
			}
		}
	}
	if structural {
		e.doc.Reindex()
	}
	return out
}

// collapseTo replaces the selection with carets at ps, dropping duplicates
// and positions that no longer exist.
func (e *Editor) collapseTo(ps []doc.Position) {
	ranges := make([]*selection.Range, 0, len(ps))
	for i, p := range ps {
		if e.doc.Validate(p) != nil || (i > 0 && p == ps[i-1]) {
			continue
		}
		ranges = append(ranges, selection.Caret(p))
	}
	e.sel.Set(ranges...)
	e.mover.ResetTarget()
}

// settle rerenders, writes the selection back and notifies listeners.
func (e *Editor) settle() error {
	e.render()
	if err := e.applySelection(); err != nil {
		return err
	}
	e.selectionChanged()
	return nil
}
