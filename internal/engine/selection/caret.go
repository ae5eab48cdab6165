package selection

import (
	"sort"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/doc"
)

// IsStop reports whether the caret may rest at index i of f.
func IsStop(f *doc.Fragment, i int) bool {
	n := f.Len()
	if i < 0 || i > n {
		return false
	}
	if n == 0 {
		return true
	}
	buf := f.Content()
	prev, hasPrev := buf.At(i - 1)
	next, hasNext := buf.At(i)
	if i == n && hasPrev && prev.Object != nil && content.IsVoid(prev.Object) {
		return false
	}
	return (hasPrev && stopsBeside(prev)) || (hasNext && stopsBeside(next))
}

// stopsBeside reports whether a unit admits a caret next to it: text and
// components without slots do, containers do not.
func stopsBeside(e content.Element) bool {
	if e.Object == nil {
		return true
	}
	c, ok := e.Object.(*doc.Component)
	return !ok || !c.HasSlots()
}

// Stops returns every caret stop of the document in document order.
// Positions inside a grapheme cluster are skipped.
func Stops(d *doc.Document) []doc.Position {
	var out []doc.Position
	var visit func(f *doc.Fragment)
	visit = func(f *doc.Fragment) {
		buf := f.Content()
		for i := 0; ; {
			if IsStop(f, i) {
				out = append(out, doc.At(f, i))
			}
			if i >= f.Len() {
				return
			}
			if c, ok := buf.ObjectAt(i); ok {
				if comp, ok := c.(*doc.Component); ok {
					for _, slot := range comp.Slots() {
						visit(slot)
					}
				}
			}
			i = buf.NextBoundary(i)
		}
	}
	visit(d.Root())
	return out
}

// search returns the index of the first stop not before p.
func search(d *doc.Document, stops []doc.Position, p doc.Position) int {
	return sort.Search(len(stops), func(i int) bool {
		return d.Compare(stops[i], p) >= 0
	})
}

// Next returns the first caret stop after p. It reports false at the end of
// the document.
func Next(d *doc.Document, p doc.Position) (doc.Position, bool) {
	stops := Stops(d)
	i := search(d, stops, p)
	if i < len(stops) && stops[i] == p {
		i++
	}
	if i >= len(stops) {
		return p, false
	}
	return stops[i], true
}

// Prev returns the last caret stop before p. It reports false at the start of
// the document.
func Prev(d *doc.Document, p doc.Position) (doc.Position, bool) {
	stops := Stops(d)
	i := search(d, stops, p) - 1
	if i < 0 {
		return p, false
	}
	return stops[i], true
}
