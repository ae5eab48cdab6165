package selection

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/doc"
)

// Scope is a span [Start, End) of one fragment.
type Scope struct {
	Fragment *doc.Fragment
	Start    int
	End      int
}

// Len returns the length of the scope.
func (s Scope) Len() int { return s.End - s.Start }

// Full reports whether the scope covers its whole fragment.
func (s Scope) Full() bool { return s.Start == 0 && s.End == s.Fragment.Len() }

// String returns a compact representation of the scope.
func (s Scope) String() string {
	return fmt.Sprintf("%s[%d,%d)", doc.At(s.Fragment, 0).String(), s.Start, s.End)
}

// Content is one unit of successive contents: either a scope or a fully
// covered component.
type Content struct {
	Scope     Scope
	Component *doc.Component
}

// IsComponent reports whether the unit is a whole component.
func (c Content) IsComponent() bool { return c.Component != nil }

// SelectedScope splits r into per-fragment scopes in document order. The
// start and end fragments are clipped to the range; fragments in between are
// taken in full. An ancestor fragment between the endpoints contributes a
// scope only when its covered span holds text. The result is nil when an
// endpoint is not in d or the endpoints share no ancestor.
func SelectedScope(d *doc.Document, r *Range) []Scope {
	w := &walker{}
	if !w.resolve(d, r) {
		return nil
	}
	out := make([]Scope, 0, len(w.out))
	for _, c := range w.out {
		out = append(out, c.Scope)
	}
	return out
}

// SuccessiveContents is SelectedScope with every fully covered component
// reported as a single unit. Scopes are split around those components.
func SuccessiveContents(d *doc.Document, r *Range) []Content {
	w := &walker{successive: true}
	if !w.resolve(d, r) {
		return nil
	}
	return w.out
}

type walker struct {
	successive bool
	out        []Content
}

func (w *walker) resolve(d *doc.Document, r *Range) bool {
	if r.state == Detached {
		return false
	}
	sf, ok := d.Fragment(r.start.Fragment)
	if !ok {
		return false
	}
	ef, ok := d.Fragment(r.end.Fragment)
	if !ok {
		return false
	}
	i, j := r.start.Index, r.end.Index
	if sf == ef {
		w.span(sf, i, j, true)
		return true
	}
	ca := CommonAncestor(d, r)
	if ca == nil {
		return false
	}

	// Path from the end fragment up to, not including, the common ancestor.
	var down []*doc.Fragment
	for f := ef; f != ca; f = d.ParentOf(f) {
		down = append(down, f)
	}
	var endTop *doc.Component
	endSlot := 0
	if len(down) > 0 {
		top := down[len(down)-1]
		endTop = d.ParentComponent(top)
		endSlot = endTop.SlotIndex(top)
	}

	// Walk up from the start fragment.
	a := i
	shared := false
	if sf != ca {
		w.span(sf, i, sf.Len(), true)
		for f := sf; ; {
			c := d.ParentComponent(f)
			g := d.ParentFragment(c)
			limit := c.SlotCount()
			if g == ca && c == endTop {
				limit, shared = endSlot, true
			}
			for s := c.SlotIndex(f) + 1; s < limit; s++ {
				slot, _ := c.Slot(s)
				w.full(slot)
			}
			a = g.IndexOf(c) + 1
			if g == ca {
				break
			}
			w.span(g, a, g.Len(), false)
			f = g
		}
	}

	if !shared {
		b := j
		if endTop != nil {
			b = ca.IndexOf(endTop)
		}
		w.span(ca, a, b, sf == ca || ef == ca)
	}

	// Walk down to the end fragment.
	for k := len(down) - 1; k >= 0; k-- {
		f := down[k]
		c := d.ParentComponent(f)
		if !shared || k != len(down)-1 {
			for s := 0; s < c.SlotIndex(f); s++ {
				slot, _ := c.Slot(s)
				w.full(slot)
			}
		}
		if f == ef {
			w.span(f, 0, j, true)
			break
		}
		w.span(f, 0, f.IndexOf(d.ParentComponent(down[k-1])), false)
	}
	return true
}

// full visits a fragment that is entirely covered.
func (w *walker) full(f *doc.Fragment) {
	w.span(f, 0, f.Len(), true)
}

// span visits [a, b) of f. A boundary span always yields a scope.
func (w *walker) span(f *doc.Fragment, a, b int, boundary bool) {
	if w.successive {
		w.successiveSpan(f, a, b, boundary)
		return
	}
	if boundary || hasText(f, a, b) {
		w.emit(Scope{Fragment: f, Start: a, End: b})
	}
	for _, c := range components(f, a, b) {
		for _, slot := range c.Slots() {
			w.full(slot)
		}
	}
}

func (w *walker) successiveSpan(f *doc.Fragment, a, b int, boundary bool) {
	emitted := false
	run := a
	for _, c := range components(f, a, b) {
		k := f.IndexOf(c)
		if k > run {
			w.emit(Scope{Fragment: f, Start: run, End: k})
			emitted = true
		}
		w.out = append(w.out, Content{Component: c})
		emitted = true
		run = k + 1
	}
	if b > run {
		w.emit(Scope{Fragment: f, Start: run, End: b})
		emitted = true
	}
	if boundary && !emitted {
		w.emit(Scope{Fragment: f, Start: a, End: b})
	}
}

func (w *walker) emit(s Scope) {
	w.out = append(w.out, Content{Scope: s})
}

// components returns the components of f in [a, b), in order.
func components(f *doc.Fragment, a, b int) []*doc.Component {
	var out []*doc.Component
	for _, e := range f.Content().Slice(a, b) {
		if c, ok := e.Object.(*doc.Component); ok {
			out = append(out, c)
		}
	}
	return out
}

func hasText(f *doc.Fragment, a, b int) bool {
	for _, e := range f.Content().Slice(a, b) {
		if e.Object == nil && e.Text != "" {
			return true
		}
	}
	return false
}
