package vdom

import (
	"slices"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/port"
)

// Builder turns fragments into render trees.
type Builder struct {
	reg        *format.Registry
	components map[string]ComponentRenderFunc
	fallback   ComponentRenderFunc
}

// NewBuilder creates a builder for the formatters in reg.
func NewBuilder(reg *format.Registry) *Builder {
	return &Builder{
		reg:        reg,
		components: make(map[string]ComponentRenderFunc),
		fallback:   DefaultComponentRender,
	}
}

// Registry returns the formatter registry.
func (b *Builder) Registry() *format.Registry { return b.reg }

// RegisterComponent sets the render function for components with tag.
func (b *Builder) RegisterComponent(tag string, fn ComponentRenderFunc) {
	b.components[tag] = fn
}

// BuildTree builds the render tree of f including every slot subtree.
func (b *Builder) BuildTree(f *doc.Fragment) *Node {
	root := b.Build(f)
	root.Walk(func(n *Node) bool {
		if n.Kind == Leaf && n.Component != nil {
			for _, s := range n.Component.Slots() {
				n.Children = append(n.Children, b.BuildTree(s))
			}
			n.adopt()
			return false
		}
		return true
	})
	return root
}

// Build builds the render tree of f. Component leaves have no children.
func (b *Builder) Build(f *doc.Fragment) *Node {
	root := b.BuildContent(f.Content(), f.Formats())
	root.Fragment = f.ID()
	return root
}

// BuildContent builds a render tree from a content buffer and its disjoint
// format table.
func (b *Builder) BuildContent(buf *content.Buffer, table *format.Table) *Node {
	length := buf.Len()

	var block, inline []format.Range
	for _, k := range table.Keys() {
		class := b.reg.Class(k)
		for _, r := range table.Ranges(k) {
			switch {
			case class.IsBlock():
				block = append(block, r)
			case !r.Collapsed():
				inline = append(inline, r)
			}
		}
	}
	b.reg.SortRanges(block)
	b.reg.SortRanges(inline)

	muted := slices.ContainsFunc(block, excluded)
	root := &Node{
		Kind:    Container,
		Formats: block,
		Start:   0,
		End:     length,
	}
	root.Elements = elements(b.reg, block)

	if length == 0 {
		root.Children = []*Node{{Kind: Leaf, Start: 0, End: 0}}
		root.adopt()
		return root
	}

	pieces := b.pieces(buf, inline, length, muted)
	root.Children = b.group(pieces, 0)
	root.adopt()
	return root
}

// piece is one minimal interval with its container levels. A muted piece
// renders no elements for any of its levels.
type piece struct {
	levels [][]format.Range
	leaf   *Node
	muted  bool
}

func (b *Builder) pieces(buf *content.Buffer, inline []format.Range, length int, muted bool) []piece {
	cuts := []int{0, length}
	for _, r := range inline {
		cuts = append(cuts, min(max(r.Start, 0), length), min(max(r.End, 0), length))
	}
	pos := 0
	for _, e := range buf.Elements() {
		if e.Object != nil {
			cuts = append(cuts, pos, pos+1)
		}
		pos += e.Len()
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var out []piece
	for i := 0; i+1 < len(cuts); i++ {
		s, e := cuts[i], cuts[i+1]
		var covering []format.Range
		for _, r := range inline {
			if r.Start <= s && e <= r.End {
				covering = append(covering, r)
			}
		}
		p := piece{leaf: b.leaf(buf, s, e), muted: muted}
		switch {
		case muted && len(covering) > 0:
			p.levels = [][]format.Range{covering}
		case !muted:
			p.levels = b.levels(covering)
		}
		out = append(out, p)
	}
	return out
}

// levels splits covering ranges into container levels: one per inline
// wrapper, with inline properties on the innermost level. An Exclude range
// and everything after it share one last level.
func (b *Builder) levels(covering []format.Range) [][]format.Range {
	var rest []format.Range
	if i := slices.IndexFunc(covering, excluded); i >= 0 {
		covering, rest = covering[:i], covering[i:]
	}
	var levels [][]format.Range
	var props []format.Range
	for _, r := range covering {
		if b.reg.Class(r.Key) == format.InlineProperty {
			props = append(props, r)
			continue
		}
		levels = append(levels, []format.Range{r})
	}
	if len(props) > 0 {
		if n := len(levels); n > 0 {
			levels[n-1] = append(levels[n-1], props...)
		} else {
			levels = append(levels, props)
		}
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}
	return levels
}

func (b *Builder) leaf(buf *content.Buffer, s, e int) *Node {
	els := buf.Slice(s, e)
	if len(els) == 1 && els[0].Object != nil {
		n := &Node{Kind: Leaf, Start: s, End: e}
		if c, ok := els[0].Object.(*doc.Component); ok {
			n.Component = c
			render := b.fallback
			if fn, ok := b.components[c.Tag()]; ok {
				render = fn
			}
			if el := render(c); el != nil {
				n.Elements = []port.Element{cloneElement(*el)}
			}
		}
		return n
	}
	var text string
	for _, el := range els {
		text += el.Text
	}
	return &Node{Kind: Leaf, Text: text, Start: s, End: e}
}

// group nests pieces by their level at depth.
func (b *Builder) group(pieces []piece, depth int) []*Node {
	var out []*Node
	for i := 0; i < len(pieces); {
		p := pieces[i]
		if len(p.levels) <= depth {
			leaf := *p.leaf
			j := i + 1
			for leaf.IsText() && j < len(pieces) && len(pieces[j].levels) <= depth && pieces[j].leaf.IsText() {
				leaf.Text += pieces[j].leaf.Text
				leaf.End = pieces[j].leaf.End
				j++
			}
			out = append(out, &leaf)
			i = j
			continue
		}
		level := p.levels[depth]
		j := i + 1
		for j < len(pieces) && len(pieces[j].levels) > depth && sameRanges(pieces[j].levels[depth], level) {
			j++
		}
		c := &Node{
			Kind:    Container,
			Formats: level,
			Start:   p.leaf.Start,
			End:     pieces[j-1].leaf.End,
		}
		if !p.muted {
			c.Elements = elements(b.reg, level)
		}
		c.Children = b.group(pieces[i:j], depth+1)
		c.adopt()
		out = append(out, c)
		i = j
	}
	return out
}

func excluded(r format.Range) bool {
	return r.State == format.Exclude
}

func sameRanges(a, b []format.Range) bool {
	return slices.EqualFunc(a, b, format.Range.Equal)
}
