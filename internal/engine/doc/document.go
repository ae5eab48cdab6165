package doc

import (
	"slices"
)

// Document indexes a fragment tree for parent navigation.
type Document struct {
	root       *Fragment
	fragments  map[FragmentID]*Fragment
	components map[ComponentID]*Component
	fragParent map[FragmentID]*Component
	compParent map[ComponentID]*Fragment
}

// New creates a document rooted at root and indexes it.
func New(root *Fragment) *Document {
	if root == nil {
		root = NewFragment()
	}
	d := &Document{root: root}
	d.Reindex()
	return d
}

// Root returns the root fragment.
func (d *Document) Root() *Fragment { return d.root }

// Reindex rebuilds the navigation index from the ownership tree.
func (d *Document) Reindex() {
	d.fragments = make(map[FragmentID]*Fragment)
	d.components = make(map[ComponentID]*Component)
	d.fragParent = make(map[FragmentID]*Component)
	d.compParent = make(map[ComponentID]*Fragment)
	d.index(d.root)
}

func (d *Document) index(f *Fragment) {
	d.fragments[f.id] = f
	for _, c := range f.Components() {
		d.components[c.id] = c
		d.compParent[c.id] = f
		for _, s := range c.slots {
			d.fragParent[s.id] = c
			d.index(s)
		}
	}
}

// Fragment looks up a fragment by id.
func (d *Document) Fragment(id FragmentID) (*Fragment, bool) {
	f, ok := d.fragments[id]
	return f, ok
}

// Component looks up a component by id.
func (d *Document) Component(id ComponentID) (*Component, bool) {
	c, ok := d.components[id]
	return c, ok
}

// ParentComponent returns the component owning f, or nil for the root.
func (d *Document) ParentComponent(f *Fragment) *Component {
	return d.fragParent[f.id]
}

// ParentFragment returns the fragment containing c, or nil if c is detached.
func (d *Document) ParentFragment(c *Component) *Fragment {
	return d.compParent[c.id]
}

// ParentOf returns the fragment that contains the component owning f.
func (d *Document) ParentOf(f *Fragment) *Fragment {
	c := d.fragParent[f.id]
	if c == nil {
		return nil
	}
	return d.compParent[c.id]
}

// Ancestors returns the fragment chain from f up to the root, f first.
func (d *Document) Ancestors(f *Fragment) []*Fragment {
	var out []*Fragment
	for cur := f; cur != nil; cur = d.ParentOf(cur) {
		out = append(out, cur)
	}
	return out
}

// ComponentAncestors returns the components enclosing f, nearest first.
func (d *Document) ComponentAncestors(f *Fragment) []*Component {
	var out []*Component
	for cur := f; cur != nil; cur = d.ParentOf(cur) {
		if c := d.fragParent[cur.id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether f is ancestor or equal to g.
func (d *Document) Contains(f, g *Fragment) bool {
	for cur := g; cur != nil; cur = d.ParentOf(cur) {
		if cur == f {
			return true
		}
	}
	return false
}

// Walk visits fragments depth-first in document order. Returning false from
// fn skips the fragment's descendants.
func (d *Document) Walk(fn func(f *Fragment) bool) {
	WalkFragment(d.root, fn)
}

// WalkFragment visits f and its descendants depth-first in document order.
func WalkFragment(f *Fragment, fn func(f *Fragment) bool) {
	if !fn(f) {
		return
	}
	for _, c := range f.Components() {
		for _, s := range c.slots {
			WalkFragment(s, fn)
		}
	}
}

// Fragments returns all fragments in document order.
func (d *Document) Fragments() []*Fragment {
	var out []*Fragment
	d.Walk(func(f *Fragment) bool {
		out = append(out, f)
		return true
	})
	return out
}

// Validate checks that p refers to an indexed fragment and a valid index.
func (d *Document) Validate(p Position) error {
	f, ok := d.fragments[p.Fragment]
	if !ok {
		return &PositionError{Pos: p, Err: ErrUnknownFragment}
	}
	if p.Index < 0 || p.Index > f.Len() {
		return &PositionError{Pos: p, Err: ErrOffsetOutOfRange}
	}
	return nil
}

// Path returns the document-order key of p: alternating content index and
// slot index from the root down, ending with p.Index.
func (d *Document) Path(p Position) []int {
	f, ok := d.fragments[p.Fragment]
	if !ok {
		return nil
	}
	path := []int{p.Index}
	for {
		c := d.fragParent[f.id]
		if c == nil {
			break
		}
		parent := d.compParent[c.id]
		path = append(path, c.SlotIndex(f), parent.IndexOf(c))
		f = parent
	}
	slices.Reverse(path)
	return path
}

// Compare orders two positions in document order, returning -1, 0 or 1.
// A position before a component sorts before every position inside it.
func (d *Document) Compare(a, b Position) int {
	pa, pb := d.Path(a), d.Path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		switch {
		case pa[i] < pb[i]:
			return -1
		case pa[i] > pb[i]:
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// Clone returns an indexed deep copy of the document. Ids are preserved.
func (d *Document) Clone() *Document {
	return New(d.root.Clone())
}
