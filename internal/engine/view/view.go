package view

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/differ"
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/vdom"
	"github.com/dshills/inkwell/internal/port"
)

// Host is the host surface a view renders into.
type Host interface {
	port.Tree
	port.SelectionHost
}

// View renders a document into a host element.
type View struct {
	host    Host
	builder *vdom.Builder
	rec     *differ.Reconciler
	parent  port.Handle

	tree  *vdom.Node
	nodes map[port.Handle]*vdom.Node
	roots map[doc.FragmentID]*vdom.Node
}

// New creates a view rendering under the host element parent.
func New(host Host, builder *vdom.Builder, parent port.Handle) *View {
	return &View{
		host:    host,
		builder: builder,
		rec:     differ.New(host),
		parent:  parent,
		nodes:   make(map[port.Handle]*vdom.Node),
		roots:   make(map[doc.FragmentID]*vdom.Node),
	}
}

// Host returns the host surface.
func (v *View) Host() Host { return v.host }

// Builder returns the render tree builder.
func (v *View) Builder() *vdom.Builder { return v.builder }

// Tree returns the current render tree, or nil before the first render.
func (v *View) Tree() *vdom.Node { return v.tree }

// Render rebuilds the render tree of d and reconciles it into the host.
func (v *View) Render(d *doc.Document) differ.Stats {
	tree := v.builder.BuildTree(d.Root())
	stats := v.rec.Reconcile(v.parent, 0, tree, v.tree)
	v.tree = tree
	v.reindex()
	return stats
}

// Clear removes the rendered document from the host.
func (v *View) Clear() differ.Stats {
	if v.tree == nil {
		return differ.Stats{}
	}
	stats := v.rec.Reconcile(v.parent, 0, nil, v.tree)
	v.tree = nil
	v.reindex()
	return stats
}

func (v *View) reindex() {
	clear(v.nodes)
	clear(v.roots)
	if v.tree == nil {
		return
	}
	v.tree.Walk(func(n *vdom.Node) bool {
		if n.IsFragmentRoot() {
			v.roots[n.Fragment] = n
		}
		if n.El.Valid() {
			v.nodes[n.El] = n
		}
		if n.Inner.Valid() {
			v.nodes[n.Inner] = n
		}
		return true
	})
}

// FragmentRoot returns the render root of a fragment.
func (v *View) FragmentRoot(id doc.FragmentID) (*vdom.Node, bool) {
	n, ok := v.roots[id]
	return n, ok
}

// Node returns the render node owning a host handle.
func (v *View) Node(h port.Handle) (*vdom.Node, bool) {
	n, ok := v.nodes[h]
	return n, ok
}

// Position binds a host anchor to a document position.
func (v *View) Position(a port.Anchor) (doc.Position, error) {
	if v.tree == nil {
		return doc.Position{}, ErrNotRendered
	}
	if a.Node == v.parent {
		return v.elementPosition(nil, []*vdom.Node{v.tree}, a.Offset), nil
	}
	n, ok := v.nodes[a.Node]
	if !ok {
		return doc.Position{}, fmt.Errorf("%w: %d", ErrUnknownNode, a.Node)
	}
	if n.IsText() {
		off := max(0, min(a.Offset, n.Len()))
		return doc.Position{Fragment: fragmentOf(n), Index: n.Start + off}, nil
	}
	if a.Node == n.El && n.El != n.Inner {
		// Anchor between the outer element and its single nested element.
		if a.Offset <= 0 {
			return doc.Position{Fragment: fragmentOf(n), Index: n.Start}, nil
		}
		return doc.Position{Fragment: fragmentOf(n), Index: n.End}, nil
	}
	return v.elementPosition(n, n.Children, a.Offset), nil
}

// elementPosition resolves an element offset among the host children of
// owner.
func (v *View) elementPosition(owner *vdom.Node, children []*vdom.Node, offset int) doc.Position {
	kids := hostChildren(children)
	switch {
	case offset < 0:
		offset = 0
	case offset > len(kids):
		offset = len(kids)
	}
	if offset < len(kids) {
		target := kids[offset]
		return doc.Position{Fragment: fragmentOf(target), Index: target.Start}
	}
	if len(kids) > 0 {
		last := kids[len(kids)-1]
		return doc.Position{Fragment: fragmentOf(last), Index: last.End}
	}
	if owner == nil {
		return doc.Position{Fragment: v.tree.Fragment}
	}
	return doc.Position{Fragment: fragmentOf(owner), Index: owner.Start}
}

// Anchor applies a document position to its canonical host anchor.
func (v *View) Anchor(p doc.Position) (port.Anchor, error) {
	if v.tree == nil {
		return port.Anchor{}, ErrNotRendered
	}
	root, ok := v.roots[p.Fragment]
	if !ok {
		return port.Anchor{}, fmt.Errorf("%w: %s", doc.ErrUnknownFragment, p.Fragment)
	}
	if p.Index < 0 || p.Index > root.End {
		return port.Anchor{}, &doc.PositionError{Pos: p, Err: doc.ErrOffsetOutOfRange}
	}

	leaves := fragmentLeaves(root)
	for _, l := range leaves {
		if l.IsText() && l.Start < p.Index && p.Index <= l.End {
			return port.Anchor{Node: l.El, Offset: p.Index - l.Start}, nil
		}
	}
	for _, l := range leaves {
		if l.IsText() && l.Start == p.Index {
			return port.Anchor{Node: l.El, Offset: 0}, nil
		}
	}
	for _, l := range leaves {
		if l.Start == p.Index || l.End == p.Index {
			parent, index := v.hostSlot(l)
			if l.End == p.Index {
				index += hostCount(l)
			}
			return port.Anchor{Node: parent, Offset: index}, nil
		}
	}
	parent, index := v.hostSlot(root)
	return port.Anchor{Node: parent, Offset: index}, nil
}

// CaretRect returns the host caret box at p.
func (v *View) CaretRect(p doc.Position) (port.Rect, bool) {
	a, err := v.Anchor(p)
	if err != nil {
		return port.Rect{}, false
	}
	return v.host.CaretRect(a)
}

// hostSlot returns the host parent of n and the index of n's first host node
// within it.
func (v *View) hostSlot(n *vdom.Node) (port.Handle, int) {
	index := 0
	for {
		p := n.Parent
		if p == nil {
			return v.parent, index
		}
		for _, sib := range p.Children {
			if sib == n {
				break
			}
			index += hostCount(sib)
		}
		if p.El.Valid() {
			return p.Inner, index
		}
		n = p
	}
}

// hostCount is the number of host positions n occupies in its host parent.
func hostCount(n *vdom.Node) int {
	if n.El.Valid() {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += hostCount(c)
	}
	return count
}

// hostChildren flattens element-less nodes into their host-level children.
func hostChildren(nodes []*vdom.Node) []*vdom.Node {
	var out []*vdom.Node
	for _, n := range nodes {
		if n.El.Valid() {
			out = append(out, n)
			continue
		}
		out = append(out, hostChildren(n.Children)...)
	}
	return out
}

// fragmentLeaves returns the leaves of a fragment tree in order, without
// entering component slots.
func fragmentLeaves(root *vdom.Node) []*vdom.Node {
	var out []*vdom.Node
	root.Walk(func(n *vdom.Node) bool {
		if n.Kind == vdom.Leaf {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}

// fragmentOf returns the fragment whose index space n lives in.
func fragmentOf(n *vdom.Node) doc.FragmentID {
	for ; n != nil; n = n.Parent {
		if n.IsFragmentRoot() {
			return n.Fragment
		}
	}
	return ""
}
