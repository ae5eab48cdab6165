package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/vdom"
	"github.com/dshills/inkwell/internal/memhost"
	"github.com/dshills/inkwell/internal/port"
)

func text(s string) *vdom.Node {
	return &vdom.Node{Kind: vdom.Leaf, Text: s}
}

func box(tag string, children ...*vdom.Node) *vdom.Node {
	return &vdom.Node{
		Kind:     vdom.Container,
		Formats:  []format.Range{{Key: format.Key(tag)}},
		Elements: []port.Element{{Tag: tag}},
		Children: children,
	}
}

func bare(children ...*vdom.Node) *vdom.Node {
	return &vdom.Node{Kind: vdom.Container, Children: children}
}

func marker(tag string) *vdom.Node {
	return &vdom.Node{Kind: vdom.Leaf, Component: doc.NewVoid(tag)}
}

func cloneTree(n *vdom.Node) *vdom.Node {
	c := *n
	c.El, c.Inner, c.Parent = port.None, port.None, nil
	c.Children = nil
	for _, child := range n.Children {
		c.Children = append(c.Children, cloneTree(child))
	}
	return &c
}

func helloWorld(tail string) *vdom.Node {
	return box("p", box("strong", text("Hello")), text(tail))
}

func TestReconcileInitialRender(t *testing.T) {
	h := memhost.New()
	tree := helloWorld(" World")

	stats := New(h).Reconcile(h.Root(), 0, tree, nil)

	assert.Equal(t, Stats{Created: 4}, stats)
	assert.Equal(t, "<root>\n  <p>\n    <strong>\n      \"Hello\"\n    \" World\"\n", h.Dump())
	assert.True(t, tree.El.Valid())
	assert.Equal(t, tree.El, tree.Inner)
}

func TestReconcileIdenticalTreeIsNoop(t *testing.T) {
	h := memhost.New()
	r := New(h)
	old := helloWorld(" World")
	r.Reconcile(h.Root(), 0, old, nil)
	before := h.Dump()
	oldEl := old.El
	h.ResetCounters()

	next := helloWorld(" World")
	stats := r.Reconcile(h.Root(), 0, next, old)

	assert.Equal(t, memhost.Counters{}, h.Counters())
	assert.Equal(t, Stats{Reused: 4}, stats)
	assert.Equal(t, before, h.Dump())
	assert.Equal(t, oldEl, next.El)
	assert.False(t, old.El.Valid())
}

func TestReconcileReplacesOnlyChangedLeaf(t *testing.T) {
	h := memhost.New()
	r := New(h)
	old := helloWorld(" World")
	r.Reconcile(h.Root(), 0, old, nil)
	strong := old.Children[0].El
	hello := old.Children[0].Children[0].El
	h.ResetCounters()

	next := helloWorld(" There")
	r.Reconcile(h.Root(), 0, next, old)

	assert.Equal(t, memhost.Counters{Created: 1, Inserted: 1, Destroyed: 1}, h.Counters())
	assert.Equal(t, strong, next.Children[0].El)
	assert.Equal(t, hello, next.Children[0].Children[0].El)
	assert.Contains(t, h.Dump(), `" There"`)
	assert.NotContains(t, h.Dump(), `" World"`)
}

func TestReconcileFormatChangeReplacesSubtree(t *testing.T) {
	h := memhost.New()
	r := New(h)
	old := box("p", box("strong", text("a")), text("b"))
	r.Reconcile(h.Root(), 0, old, nil)

	next := box("p", box("em", text("a")), text("b"))
	stats := r.Reconcile(h.Root(), 0, next, old)

	assert.Equal(t, Stats{Created: 2, Destroyed: 1, Reused: 2}, stats)
	assert.Equal(t, "<root>\n  <p>\n    <em>\n      \"a\"\n    \"b\"\n", h.Dump())
}

func TestReconcileFlattensElementlessContainers(t *testing.T) {
	h := memhost.New()
	r := New(h)
	old := box("p", bare(text("a"), text("b")), box("strong", text("c")))
	r.Reconcile(h.Root(), 0, old, nil)
	assert.Equal(t, "<root>\n  <p>\n    \"a\"\n    \"b\"\n    <strong>\n      \"c\"\n", h.Dump())

	next := box("p", bare(text("a"), text("x"), text("y")), box("strong", text("c")))
	r.Reconcile(h.Root(), 0, next, old)
	assert.Equal(t, "<root>\n  <p>\n    \"a\"\n    \"x\"\n    \"y\"\n    <strong>\n      \"c\"\n", h.Dump())
	assert.False(t, next.Children[0].El.Valid())
}

func TestReconcileTracksNullLeaves(t *testing.T) {
	h := memhost.New()
	r := New(h)
	old := box("p", text("a"), marker("anchor"), text("b"))
	r.Reconcile(h.Root(), 0, old, nil)
	assert.Equal(t, "<root>\n  <p>\n    \"a\"\n    \"b\"\n", h.Dump())

	next := box("p", text("a"), marker("bookmark"), text("c"), text("d"))
	r.Reconcile(h.Root(), 0, next, old)
	assert.Equal(t, "<root>\n  <p>\n    \"a\"\n    \"c\"\n    \"d\"\n", h.Dump())
}

func TestReconcileComponentSlots(t *testing.T) {
	h := memhost.New()
	r := New(h)
	div := func(slot string) *vdom.Node {
		return &vdom.Node{
			Kind:      vdom.Leaf,
			Component: doc.NewDivision("div", nil),
			Elements:  []port.Element{{Tag: "div"}},
			Children:  []*vdom.Node{box("p", text(slot))},
		}
	}
	old := bare(text("a"), div("x"))
	r.Reconcile(h.Root(), 0, old, nil)
	divEl := old.Children[1].El

	next := bare(text("a"), div("y"))
	r.Reconcile(h.Root(), 0, next, old)

	assert.Equal(t, divEl, next.Children[1].El)
	assert.Equal(t, "<root>\n  \"a\"\n  <div>\n    <p>\n      \"y\"\n", h.Dump())
}

func TestReconcileRemove(t *testing.T) {
	h := memhost.New()
	r := New(h)
	old := helloWorld(" World")
	r.Reconcile(h.Root(), 0, old, nil)
	r.Reconcile(h.Root(), 0, nil, old)
	assert.Equal(t, "<root>\n", h.Dump())
	assert.Equal(t, 1, h.Len())
}

func genTree(depth int) *rapid.Generator[*vdom.Node] {
	return rapid.Custom(func(t *rapid.T) *vdom.Node {
		kind := rapid.IntRange(0, 3).Draw(t, "kind")
		if depth == 0 && kind >= 2 {
			kind = 0
		}
		switch kind {
		case 0:
			return text(rapid.SampledFrom([]string{"a", "b", "c"}).Draw(t, "text"))
		case 1:
			return marker(rapid.SampledFrom([]string{"m", "n"}).Draw(t, "marker"))
		}
		children := make([]*vdom.Node, rapid.IntRange(0, 3).Draw(t, "n"))
		for i := range children {
			children[i] = genTree(depth - 1).Draw(t, "child")
		}
		switch tag := rapid.SampledFrom([]string{"b", "i", ""}).Draw(t, "tag"); tag {
		case "":
			return bare(children...)
		default:
			return box(tag, children...)
		}
	})
}

func TestReconcileMatchesFreshRender(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		steps := rapid.SliceOfN(genTree(3), 1, 4).Draw(t, "steps")

		h := memhost.New()
		r := New(h)
		var prev *vdom.Node
		for _, step := range steps {
			next := cloneTree(step)
			r.Reconcile(h.Root(), 0, next, prev)
			prev = next
		}

		fresh := memhost.New()
		New(fresh).Reconcile(fresh.Root(), 0, cloneTree(steps[len(steps)-1]), nil)
		require.Equal(t, fresh.Dump(), h.Dump())
		require.Equal(t, fresh.Len(), h.Len())
	})
}

func TestReconcileSameTreeCreatesNothing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(3).Draw(t, "tree")
		h := memhost.New()
		r := New(h)
		old := cloneTree(tree)
		r.Reconcile(h.Root(), 0, old, nil)
		h.ResetCounters()

		r.Reconcile(h.Root(), 0, cloneTree(tree), old)
		require.Equal(t, memhost.Counters{}, h.Counters())
	})
}
