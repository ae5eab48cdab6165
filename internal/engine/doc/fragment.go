package doc

import (
	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/format"
)

// FragmentID identifies a fragment across clones.
type FragmentID string

// NewFragmentID returns a fresh fragment id.
func NewFragmentID() FragmentID {
	return FragmentID(uuid.NewString())
}

// Fragment is a content buffer with its format table.
type Fragment struct {
	id      FragmentID
	content *content.Buffer
	formats *format.Table
}

// NewFragment creates an empty fragment with a fresh id.
func NewFragment() *Fragment {
	return NewFragmentWithID(NewFragmentID())
}

// NewFragmentWithID creates an empty fragment with the given id.
func NewFragmentWithID(id FragmentID) *Fragment {
	return &Fragment{
		id:      id,
		content: content.New(),
		formats: format.NewTable(),
	}
}

// NewTextFragment creates a fragment holding text.
func NewTextFragment(text string) *Fragment {
	f := NewFragment()
	f.content.AppendText(text)
	return f
}

// ID returns the fragment id.
func (f *Fragment) ID() FragmentID { return f.id }

// Len returns the content length.
func (f *Fragment) Len() int { return f.content.Len() }

// Content returns the content buffer. Mutate it through the fragment so the
// format table stays aligned.
func (f *Fragment) Content() *content.Buffer { return f.content }

// Formats returns the format table.
func (f *Fragment) Formats() *format.Table { return f.formats }

// Text returns the fragment text, components rendered as U+FFFC.
func (f *Fragment) Text() string { return f.content.Text() }

// AppendText appends text.
func (f *Fragment) AppendText(s string) {
	f.InsertText(f.Len(), s)
}

// AppendComponent appends a component.
func (f *Fragment) AppendComponent(c *Component) {
	f.InsertComponent(f.Len(), c)
}

// InsertText inserts text at index and shifts formats.
func (f *Fragment) InsertText(index int, s string) {
	before := f.content.Len()
	index = min(max(index, 0), before)
	f.content.InsertText(index, s)
	f.formats.Shift(index, f.content.Len()-before)
}

// InsertComponent inserts a component at index and shifts formats.
func (f *Fragment) InsertComponent(index int, c *Component) {
	before := f.content.Len()
	index = min(max(index, 0), before)
	f.content.InsertObject(index, c)
	f.formats.Shift(index, f.content.Len()-before)
}

// Delete removes [start, end) and returns the removed elements.
func (f *Fragment) Delete(start, end int) []content.Element {
	start = min(max(start, 0), f.Len())
	end = min(max(end, start), f.Len())
	removed := f.content.Delete(start, end)
	f.formats.Cut(start, end)
	return removed
}

// Merge applies a format range to this fragment's table.
func (f *Fragment) Merge(reg *format.Registry, r format.Range, important bool) {
	f.formats.MergeWith(reg, r, important)
}

// ComponentAt returns the component at index.
func (f *Fragment) ComponentAt(index int) (*Component, bool) {
	o, ok := f.content.ObjectAt(index)
	if !ok {
		return nil, false
	}
	c, ok := o.(*Component)
	return c, ok
}

// Components returns the embedded components in order.
func (f *Fragment) Components() []*Component {
	var out []*Component
	for _, o := range f.content.Objects() {
		if c, ok := o.(*Component); ok {
			out = append(out, c)
		}
	}
	return out
}

// IndexOf returns the index of c within the fragment, or -1.
func (f *Fragment) IndexOf(c *Component) int {
	return f.content.IndexOf(c)
}

// Clone returns a deep copy preserving ids of the fragment and every
// descendant.
func (f *Fragment) Clone() *Fragment {
	return &Fragment{
		id: f.id,
		content: f.content.Clone(func(o content.Object) content.Object {
			if c, ok := o.(*Component); ok {
				return c.Clone()
			}
			return o
		}),
		formats: f.formats.Clone(),
	}
}
