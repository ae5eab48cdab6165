package differ

import (
	"maps"
	"slices"

	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/vdom"
	"github.com/dshills/inkwell/internal/port"
)

// Stats counts the work done by one reconciliation.
type Stats struct {
	// Created is the number of host nodes created.
	Created int
	// Destroyed is the number of host subtrees destroyed.
	Destroyed int
	// Reused is the number of render nodes that kept their host node.
	Reused int
}

// Add returns the sum of two stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Created:   s.Created + o.Created,
		Destroyed: s.Destroyed + o.Destroyed,
		Reused:    s.Reused + o.Reused,
	}
}

// Reconciler applies render trees to a host tree.
type Reconciler struct {
	tree  port.Tree
	stats Stats
}

// New creates a reconciler for tree.
func New(tree port.Tree) *Reconciler {
	return &Reconciler{tree: tree}
}

// Reconcile makes the host children of parent, starting at index, reflect
// newRoot. oldRoot is the tree previously reconciled at the same place, or
// nil. Host handles move from the old tree to the new one; the old tree must
// not be reconciled again. Passing a nil newRoot removes oldRoot.
func (r *Reconciler) Reconcile(parent port.Handle, index int, newRoot, oldRoot *vdom.Node) Stats {
	r.stats = Stats{}
	var news, olds []*vdom.Node
	if newRoot != nil {
		news = []*vdom.Node{newRoot}
	}
	if oldRoot != nil {
		olds = []*vdom.Node{oldRoot}
	}
	r.children(parent, index, news, olds)
	return r.stats
}

// Destroy removes every host node of n.
func (r *Reconciler) Destroy(n *vdom.Node) Stats {
	r.stats = Stats{}
	r.destroy(n)
	return r.stats
}

// children reconciles a child list placed in parent from pos and returns the
// number of host positions it occupies.
func (r *Reconciler) children(parent port.Handle, pos int, news, olds []*vdom.Node) int {
	reuse := make([]bool, len(olds))
	for i, old := range olds {
		if i < len(news) && SameShape(news[i], old) {
			reuse[i] = true
			continue
		}
		r.destroy(old)
	}

	count := 0
	for i, n := range news {
		if i < len(olds) && reuse[i] {
			count += r.update(parent, pos+count, n, olds[i])
			continue
		}
		count += r.create(parent, pos+count, n)
	}
	return count
}

// update moves the host nodes of old to n and reconciles their children.
func (r *Reconciler) update(parent port.Handle, pos int, n, old *vdom.Node) int {
	r.stats.Reused++
	n.El, n.Inner = old.El, old.Inner
	old.El, old.Inner = port.None, port.None

	if n.IsText() {
		return 1
	}
	if !n.El.Valid() {
		return r.children(parent, pos, n.Children, old.Children)
	}
	r.children(n.Inner, 0, n.Children, old.Children)
	return 1
}

// create builds a host subtree for n and inserts it at pos.
func (r *Reconciler) create(parent port.Handle, pos int, n *vdom.Node) int {
	if n.IsText() {
		h := r.tree.CreateText(n.Text)
		r.stats.Created++
		n.El, n.Inner = h, h
		r.tree.Insert(parent, h, pos)
		return 1
	}
	if len(n.Elements) == 0 {
		n.El, n.Inner = port.None, port.None
		count := 0
		for _, c := range n.Children {
			count += r.create(parent, pos+count, c)
		}
		return count
	}

	outer := r.element(n.Elements[0])
	inner := outer
	for _, e := range n.Elements[1:] {
		h := r.element(e)
		r.tree.Append(inner, h)
		inner = h
	}
	n.El, n.Inner = outer, inner

	count := 0
	for _, c := range n.Children {
		count += r.create(inner, count, c)
	}
	r.tree.Insert(parent, outer, pos)
	return 1
}

func (r *Reconciler) element(e port.Element) port.Handle {
	r.stats.Created++
	return r.tree.CreateElement(e.Tag, e.Attrs, e.Styles)
}

// destroy removes the host nodes of n. Nodes without a host element have
// their children destroyed in their place.
func (r *Reconciler) destroy(n *vdom.Node) {
	if n.El.Valid() {
		r.tree.Destroy(n.El)
		r.stats.Destroyed++
		n.Walk(func(c *vdom.Node) bool {
			c.El, c.Inner = port.None, port.None
			return true
		})
		return
	}
	for _, c := range n.Children {
		r.destroy(c)
	}
}

// SameShape reports whether old's host node can be reused for n.
func SameShape(n, old *vdom.Node) bool {
	if n.Kind != old.Kind {
		return false
	}
	if n.Kind == vdom.Leaf {
		switch {
		case n.IsText() != old.IsText():
			return false
		case n.IsText():
			return n.Text == old.Text
		}
		return n.Component.Tag() == old.Component.Tag() &&
			maps.Equal(n.Component.Attrs(), old.Component.Attrs()) &&
			sameElements(n.Elements, old.Elements)
	}
	return slices.EqualFunc(n.Formats, old.Formats, sameFormat) &&
		sameElements(n.Elements, old.Elements)
}

// sameFormat compares key, state and data. Positions are ignored: an
// unchanged bold run keeps its element after text is typed before it.
func sameFormat(a, b format.Range) bool {
	return a.Key == b.Key && a.Same(b)
}

func sameElements(a, b []port.Element) bool {
	return slices.EqualFunc(a, b, func(x, y port.Element) bool {
		return x.Tag == y.Tag && maps.Equal(x.Attrs, y.Attrs) && maps.Equal(x.Styles, y.Styles)
	})
}
