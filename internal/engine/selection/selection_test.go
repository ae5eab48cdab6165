package selection

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/view"
	"github.com/dshills/inkwell/internal/formats"
	"github.com/dshills/inkwell/internal/memhost"
	"github.com/dshills/inkwell/internal/port"
)

// boxes returns a document whose root holds one box per text, each box
// slot a single fragment.
func boxes(texts ...string) (*doc.Document, []*doc.Fragment) {
	root := doc.NewFragment()
	var slots []*doc.Fragment
	for _, t := range texts {
		f := doc.NewTextFragment(t)
		slots = append(slots, f)
		root.AppendComponent(doc.NewDivision(formats.Box, f))
	}
	return doc.New(root), slots
}

func scope(f *doc.Fragment, start, end int) Scope {
	return Scope{Fragment: f, Start: start, End: end}
}

func TestSelectedScopeAcrossSiblings(t *testing.T) {
	d, f := boxes("Alpha", "Bravo", "Charlie")
	a, b, c := f[0], f[1], f[2]

	got := SelectedScope(d, Span(doc.At(a, 3), doc.At(c, 2)))
	assert.Equal(t, []Scope{scope(a, 3, a.Len()), scope(b, 0, b.Len()), scope(c, 0, 2)}, got)
}

func TestSelectedScopeSameFragment(t *testing.T) {
	d, f := boxes("Alpha")
	assert.Equal(t, []Scope{scope(f[0], 1, 4)}, SelectedScope(d, Span(doc.At(f[0], 1), doc.At(f[0], 4))))
	assert.Equal(t, []Scope{scope(f[0], 2, 2)}, SelectedScope(d, Caret(doc.At(f[0], 2))))
}

// nested builds: root = "xy" D "z", D's slot s = X "mid" Y, X and Y holding
// "one" and "two".
func nested() (*doc.Document, map[string]*doc.Fragment) {
	fx, fy := doc.NewTextFragment("one"), doc.NewTextFragment("two")
	s := doc.NewFragment()
	s.AppendComponent(doc.NewDivision(formats.Box, fx))
	s.AppendText("mid")
	s.AppendComponent(doc.NewDivision(formats.Box, fy))
	root := doc.NewTextFragment("xy")
	root.AppendComponent(doc.NewDivision(formats.Box, s))
	root.AppendText("z")
	return doc.New(root), map[string]*doc.Fragment{"root": root, "s": s, "x": fx, "y": fy}
}

func TestSelectedScopeNested(t *testing.T) {
	d, f := nested()

	got := SelectedScope(d, Span(doc.At(f["x"], 1), doc.At(f["y"], 2)))
	assert.Equal(t, []Scope{scope(f["x"], 1, 3), scope(f["s"], 1, 4), scope(f["y"], 0, 2)}, got)

	got = SelectedScope(d, Span(doc.At(f["root"], 1), doc.At(f["y"], 1)))
	assert.Equal(t, []Scope{
		scope(f["root"], 1, 2),
		scope(f["s"], 0, 4),
		scope(f["x"], 0, 3),
		scope(f["y"], 0, 1),
	}, got)

	got = SelectedScope(d, Span(doc.At(f["x"], 2), doc.At(f["root"], 4)))
	assert.Equal(t, []Scope{
		scope(f["x"], 2, 3),
		scope(f["s"], 1, 5),
		scope(f["y"], 0, 3),
		scope(f["root"], 3, 4),
	}, got)
}

func TestSelectedScopeBranchSlots(t *testing.T) {
	s0, s1, s2 := doc.NewTextFragment("aa"), doc.NewTextFragment("bb"), doc.NewTextFragment("cc")
	root := doc.NewFragment()
	root.AppendComponent(doc.NewBranch("row", s0, s1, s2))
	d := doc.New(root)

	got := SelectedScope(d, Span(doc.At(s0, 1), doc.At(s2, 1)))
	assert.Equal(t, []Scope{scope(s0, 1, 2), scope(s1, 0, 2), scope(s2, 0, 1)}, got)
}

func TestSelectedScopeUnknownFragment(t *testing.T) {
	d, f := boxes("a")
	stray := doc.NewTextFragment("stray")
	assert.Nil(t, SelectedScope(d, Span(doc.At(f[0], 0), doc.At(stray, 1))))
	assert.Nil(t, SelectedScope(d, NewRange()))
}

func TestSuccessiveContentsCollapsesComponents(t *testing.T) {
	d, f := boxes("Alpha", "Bravo", "Charlie")
	root := d.Root()
	b := root.Components()[1]

	got := SuccessiveContents(d, Span(doc.At(f[0], 3), doc.At(f[2], 2)))
	require.Len(t, got, 3)
	assert.Equal(t, scope(f[0], 3, 5), got[0].Scope)
	assert.True(t, got[1].IsComponent())
	assert.Same(t, b, got[1].Component)
	assert.Equal(t, scope(f[2], 0, 2), got[2].Scope)

	nd, nf := nested()
	got = SuccessiveContents(nd, Span(doc.At(nf["root"], 0), doc.At(nf["root"], 4)))
	require.Len(t, got, 3)
	assert.Equal(t, scope(nf["root"], 0, 2), got[0].Scope)
	assert.Equal(t, "box", got[1].Component.Tag())
	assert.Equal(t, scope(nf["root"], 3, 4), got[2].Scope)

	got = SuccessiveContents(nd, Caret(doc.At(nf["x"], 1)))
	require.Len(t, got, 1)
	assert.Equal(t, scope(nf["x"], 1, 1), got[0].Scope)
}

func TestCommonAncestorFragment(t *testing.T) {
	d, f := nested()

	// Sibling leaf fragments of the same division resolve to its slot.
	sel := New(Caret(doc.At(f["x"], 1)), Caret(doc.At(f["y"], 0)))
	assert.Same(t, f["s"], CommonAncestorFragment(d, sel))
	assert.Equal(t, "box", CommonAncestorComponent(d, sel).Tag())

	single := New(Span(doc.At(f["x"], 0), doc.At(f["x"], 2)))
	assert.Same(t, f["x"], CommonAncestorFragment(d, single))

	mixed := New(Caret(doc.At(f["x"], 0)), Caret(doc.At(f["root"], 0)))
	assert.Same(t, f["root"], CommonAncestorFragment(d, mixed))
	assert.Nil(t, CommonAncestorComponent(d, mixed))

	stray := doc.NewTextFragment("elsewhere")
	disjoint := New(Caret(doc.At(f["x"], 0)), Caret(doc.At(stray, 0)))
	assert.Nil(t, CommonAncestorFragment(d, disjoint))

	assert.Nil(t, CommonAncestorFragment(d, New()))
}

func TestRangeOrdersEndpoints(t *testing.T) {
	d, f := boxes("Alpha", "Bravo")
	r := NewRange()
	assert.Equal(t, Detached, r.State())

	r.Set(d, doc.At(f[1], 2), doc.At(f[0], 1))
	assert.Equal(t, Bound, r.State())
	assert.True(t, r.Backward())
	assert.Equal(t, doc.At(f[0], 1), r.Start())
	assert.Equal(t, doc.At(f[1], 2), r.Anchor())
	assert.Equal(t, doc.At(f[0], 1), r.Focus())

	r.Extend(d, doc.At(f[1], 4))
	assert.False(t, r.Backward())
	assert.Equal(t, doc.At(f[1], 2), r.Start())
	assert.Equal(t, doc.At(f[1], 4), r.End())
}

func TestSelectionSortedReverseDocumentOrder(t *testing.T) {
	d, f := boxes("Alpha", "Bravo")
	first, second := Caret(doc.At(f[0], 1)), Caret(doc.At(f[1], 1))
	s := New(first, second)
	assert.Equal(t, []*Range{second, first}, s.Sorted(d))
	assert.Same(t, second, s.Primary())

	c := s.Clone()
	c.Primary().Collapse(doc.At(f[0], 0))
	assert.False(t, s.Equal(c))
}

func TestCaretStops(t *testing.T) {
	f := doc.NewTextFragment("ab")
	f.AppendComponent(doc.NewVoid("br"))
	assert.True(t, IsStop(f, 2))
	assert.False(t, IsStop(f, 3))

	img := doc.NewTextFragment("a")
	img.AppendComponent(doc.NewLeaf(formats.Image, nil))
	assert.True(t, IsStop(img, 2))

	assert.True(t, IsStop(doc.NewFragment(), 0))

	d, slots := boxes("ab", "")
	assert.Equal(t, []doc.Position{
		doc.At(slots[0], 0), doc.At(slots[0], 1), doc.At(slots[0], 2),
		doc.At(slots[1], 0),
	}, Stops(d))
}

func TestHorizontalMovement(t *testing.T) {
	d, f := boxes("ae\u0301", "b")

	p, ok := Next(d, doc.At(f[0], 1))
	require.True(t, ok)
	assert.Equal(t, doc.At(f[0], 3), p)

	p, ok = Next(d, p)
	require.True(t, ok)
	assert.Equal(t, doc.At(f[1], 0), p)

	p, ok = Prev(d, p)
	require.True(t, ok)
	assert.Equal(t, doc.At(f[0], 3), p)

	_, ok = Next(d, doc.At(f[1], 1))
	assert.False(t, ok)
	_, ok = Prev(d, doc.At(f[0], 0))
	assert.False(t, ok)

	// From a position that is not a stop.
	p, ok = Next(d, doc.At(d.Root(), 1))
	require.True(t, ok)
	assert.Equal(t, doc.At(f[1], 0), p)
}

type rendered struct {
	doc   *doc.Document
	host  *memhost.Host
	view  *view.View
	slots []*doc.Fragment
}

func render(t testing.TB, width int, texts ...string) *rendered {
	reg, err := formats.NewRegistry()
	require.NoError(t, err)
	d, slots := boxes(texts...)
	for _, s := range slots {
		s.Merge(reg, format.Range{Key: formats.Paragraph, End: s.Len()}, false)
	}
	h := memhost.New(memhost.WithWidth(width))
	v := view.New(h, formats.NewBuilder(reg), h.Root())
	v.Render(d)
	return &rendered{doc: d, host: h, view: v, slots: slots}
}

func TestVerticalMovementKeepsTargetColumn(t *testing.T) {
	r := render(t, 20, "abcde", "fg", "hijkl")
	m := NewMover(time.Minute, 0)

	p, ok := m.Vertical(r.doc, r.view, doc.At(r.slots[0], 4), true)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[1], 2), p)

	p, ok = m.Vertical(r.doc, r.view, p, true)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[2], 4), p)

	_, ok = m.Vertical(r.doc, r.view, p, true)
	assert.False(t, ok)

	p, ok = m.Vertical(r.doc, r.view, p, false)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[1], 2), p)

	m.ResetTarget()
	p, ok = m.Vertical(r.doc, r.view, p, true)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[2], 2), p)
}

func TestVerticalMovementAcrossWrappedLines(t *testing.T) {
	r := render(t, 5, "abcdefghij")
	m := NewMover(time.Minute, 0)

	p, ok := m.Vertical(r.doc, r.view, doc.At(r.slots[0], 2), true)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[0], 7), p)

	m.ResetTarget()
	p, ok = m.Vertical(r.doc, r.view, p, false)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[0], 2), p)

	_, ok = m.Vertical(r.doc, r.view, p, false)
	assert.False(t, ok)
}

func TestVerticalTargetDecays(t *testing.T) {
	r := render(t, 20, "abcde", "fg", "hijkl")
	m := NewMover(20*time.Millisecond, 0)

	p, ok := m.Vertical(r.doc, r.view, doc.At(r.slots[0], 4), true)
	require.True(t, ok)
	col, ok := m.Target()
	require.True(t, ok)
	assert.Equal(t, 4, col)

	time.Sleep(60 * time.Millisecond)
	_, ok = m.Target()
	assert.False(t, ok)

	p, ok = m.Vertical(r.doc, r.view, p, true)
	require.True(t, ok)
	assert.Equal(t, doc.At(r.slots[2], 2), p)
}

func TestMoversStartNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	movers := make([]*Mover, 0, 50)
	for i := 0; i < 50; i++ {
		movers = append(movers, NewMover(time.Millisecond, 0))
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before+2)
	assert.Len(t, movers, 50)
}

func TestVerticalMovementSearchLimit(t *testing.T) {
	r := render(t, 20, "abcde", "fghij")
	m := NewMover(time.Minute, 3)

	_, ok := m.Vertical(r.doc, r.view, doc.At(r.slots[0], 0), true)
	assert.False(t, ok)
}

func TestSelectionBindApplyRoundTrip(t *testing.T) {
	r := render(t, 10, "Hello World", "Mid", "")
	var positions []doc.Position
	for _, f := range r.doc.Fragments() {
		for i := 0; i <= f.Len(); i++ {
			positions = append(positions, doc.At(f, i))
		}
	}

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SampledFrom(positions).Draw(t, "anchor")
		b := rapid.SampledFrom(positions).Draw(t, "focus")

		anchor, err := r.view.Anchor(a)
		require.NoError(t, err)
		focus, err := r.view.Anchor(b)
		require.NoError(t, err)
		native := port.NativeRange{Anchor: anchor, Focus: focus}
		r.host.SetNativeRanges([]port.NativeRange{native})

		sel := New()
		require.NoError(t, sel.Bind(r.doc, r.view, r.host))
		require.Equal(t, 1, sel.Len())
		assert.Equal(t, a, sel.Primary().Anchor())
		assert.Equal(t, b, sel.Primary().Focus())

		r.host.SetNativeRanges(nil)
		require.NoError(t, sel.Apply(r.view, r.host))
		assert.Equal(t, Applied, sel.Primary().State())
		assert.Equal(t, []port.NativeRange{native}, r.host.NativeRanges())
	})
}

func TestApplyDetachedRange(t *testing.T) {
	r := render(t, 10, "a")
	_, err := NewRange().Apply(r.view)
	assert.ErrorIs(t, err, ErrDetached)
}
