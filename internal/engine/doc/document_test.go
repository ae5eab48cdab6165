package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/format"
)

// threeParagraphs builds root -> [div(A), div(B), div(C)].
func threeParagraphs() (*Document, []*Fragment) {
	a := NewTextFragment("Alpha")
	b := NewTextFragment("Bravo")
	c := NewTextFragment("Charlie")
	root := NewFragment()
	for _, f := range []*Fragment{a, b, c} {
		root.AppendComponent(NewDivision("div", f))
	}
	return New(root), []*Fragment{a, b, c}
}

func TestDocumentNavigation(t *testing.T) {
	d, frags := threeParagraphs()
	a := frags[0]

	div := d.ParentComponent(a)
	require.NotNil(t, div)
	assert.Equal(t, Division, div.Kind())
	assert.Same(t, d.Root(), d.ParentFragment(div))
	assert.Same(t, d.Root(), d.ParentOf(a))
	assert.Nil(t, d.ParentComponent(d.Root()))

	assert.Equal(t, []*Fragment{a, d.Root()}, d.Ancestors(a))
	assert.Equal(t, []*Component{div}, d.ComponentAncestors(a))
	assert.True(t, d.Contains(d.Root(), a))
	assert.False(t, d.Contains(a, d.Root()))

	got, ok := d.Fragment(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestDocumentWalkOrder(t *testing.T) {
	d, frags := threeParagraphs()
	want := append([]*Fragment{d.Root()}, frags...)
	assert.Equal(t, want, d.Fragments())
}

func TestDocumentCompare(t *testing.T) {
	d, frags := threeParagraphs()
	a, b := frags[0], frags[1]
	root := d.Root()

	tests := []struct {
		name string
		x, y Position
		want int
	}{
		{"same fragment", At(a, 1), At(a, 3), -1},
		{"equal", At(b, 2), At(b, 2), 0},
		{"sibling fragments", At(a, 5), At(b, 0), -1},
		{"before component precedes inside", At(root, 1), At(b, 0), -1},
		{"after component follows inside", At(root, 2), At(b, 5), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Compare(tt.x, tt.y))
			assert.Equal(t, -tt.want, d.Compare(tt.y, tt.x))
		})
	}
}

func TestDocumentValidate(t *testing.T) {
	d, frags := threeParagraphs()

	require.NoError(t, d.Validate(At(frags[0], 5)))
	assert.ErrorIs(t, d.Validate(At(frags[0], 6)), ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.Validate(Position{Fragment: "missing"}), ErrUnknownFragment)

	var perr *PositionError
	require.ErrorAs(t, d.Validate(At(frags[0], -1)), &perr)
	assert.Equal(t, frags[0].ID(), perr.Pos.Fragment)
}

func TestDocumentCloneIsDeepAndKeepsIDs(t *testing.T) {
	d, frags := threeParagraphs()
	frags[0].Formats().Merge(format.Range{Key: "bold", Start: 0, End: 2}, format.InlineWrapper, false)

	c := d.Clone()
	ca, ok := c.Fragment(frags[0].ID())
	require.True(t, ok)
	assert.NotSame(t, frags[0], ca)
	assert.Equal(t, "Alpha", ca.Text())

	ca.InsertText(0, "x")
	ca.Formats().Delete("bold")

	assert.Equal(t, "Alpha", frags[0].Text())
	assert.True(t, frags[0].Formats().Has("bold"))
	assert.Same(t, c.Root(), c.ParentOf(ca))
}

func TestReindexAfterStructuralChange(t *testing.T) {
	d, _ := threeParagraphs()
	extra := NewTextFragment("Delta")
	d.Root().AppendComponent(NewDivision("div", extra))

	_, ok := d.Fragment(extra.ID())
	assert.False(t, ok)

	d.Reindex()
	_, ok = d.Fragment(extra.ID())
	assert.True(t, ok)
}

func TestFragmentEditsShiftFormats(t *testing.T) {
	f := NewTextFragment("Hello World")
	f.Formats().Merge(format.Range{Key: "bold", Start: 6, End: 11}, format.InlineWrapper, false)

	f.InsertText(0, ">> ")
	assert.Equal(t, []format.Range{{Key: "bold", Start: 9, End: 14}}, f.Formats().Ranges("bold"))

	f.Delete(0, 3)
	assert.Equal(t, "Hello World", f.Text())
	assert.Equal(t, []format.Range{{Key: "bold", Start: 6, End: 11}}, f.Formats().Ranges("bold"))

	img := NewLeaf("img", map[string]string{"src": "a.png"})
	f.InsertComponent(6, img)
	assert.Equal(t, 12, f.Len())
	assert.Equal(t, 6, f.IndexOf(img))
	got, ok := f.ComponentAt(6)
	require.True(t, ok)
	assert.Same(t, img, got)
	assert.Equal(t, []format.Range{{Key: "bold", Start: 7, End: 12}}, f.Formats().Ranges("bold"))
}

func TestComponentKinds(t *testing.T) {
	leaf := NewLeaf("img", nil)
	_, err := leaf.RemoveSlot(0)
	assert.ErrorIs(t, err, ErrWrongKind)

	div := NewDivision("div", nil)
	require.Equal(t, 1, div.SlotCount())
	assert.ErrorIs(t, div.InsertSlot(1, NewFragment()), ErrWrongKind)

	branch := NewBranch("ul", NewTextFragment("one"))
	require.NoError(t, branch.InsertSlot(1, NewTextFragment("two")))
	assert.ErrorIs(t, branch.InsertSlot(5, NewFragment()), ErrSlotOutOfRange)

	removed, err := branch.RemoveSlot(0)
	require.NoError(t, err)
	assert.Equal(t, "one", removed.Text())

	table := NewBackbone("table", NewTextFragment("r0"), NewTextFragment("r1"))
	var rows []string
	for i, f := range table.All() {
		rows = append(rows, f.Text())
		assert.Equal(t, i, table.SlotIndex(f))
	}
	assert.Equal(t, []string{"r0", "r1"}, rows)

	br := NewVoid("br")
	assert.True(t, br.IsVoid())
	assert.Equal(t, Leaf, br.Kind())
}
