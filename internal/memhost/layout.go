package memhost

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkwell/internal/port"
)

type point struct {
	x, y int
}

// layout holds the grid positions computed for the current tree.
type layout struct {
	start map[port.Handle]point
	end   map[port.Handle]point
	runes map[port.Handle][]point
	block map[port.Handle]bool
}

// flow places nodes on the grid in document order.
type flow struct {
	host *Host
	out  *layout
	x, y int
}

func (h *Host) laidOut() *layout {
	if h.layout != nil {
		return h.layout
	}
	f := &flow{
		host: h,
		out: &layout{
			start: make(map[port.Handle]point),
			end:   make(map[port.Handle]point),
			runes: make(map[port.Handle][]point),
			block: make(map[port.Handle]bool),
		},
	}
	f.visit(h.root)
	h.layout = f.out
	return h.layout
}

func (f *flow) newline() {
	f.x = 0
	f.y++
}

// advance reserves w cells, wrapping first if they do not fit.
func (f *flow) advance(w int) point {
	if f.x > 0 && f.x+w > f.host.width {
		f.newline()
	}
	p := point{f.x, f.y}
	f.x += w
	return p
}

func (f *flow) visit(n *node) {
	block := !n.text && f.host.blocks[n.tag]
	if block && f.x > 0 {
		f.newline()
	}
	begin := point{f.x, f.y}
	f.out.start[n.handle] = begin
	f.out.block[n.handle] = block

	switch {
	case n.text:
		pts := make([]point, 0, len(n.value))
		for _, r := range n.value {
			switch r {
			case '\n':
				pts = append(pts, point{f.x, f.y})
				f.newline()
			case '\t':
				pts = append(pts, f.advance(f.host.tabWidth-f.x%f.host.tabWidth))
			default:
				pts = append(pts, f.advance(runewidth.RuneWidth(r)))
			}
		}
		f.out.runes[n.handle] = pts
	case n.tag == "br":
		f.newline()
	case len(n.children) == 0 && !block:
		f.advance(1)
	}
	for _, c := range n.children {
		f.visit(c)
	}

	f.out.end[n.handle] = point{f.x, f.y}
	if block && (f.x > 0 || begin == (point{f.x, f.y})) {
		f.newline()
	}
}

// BoundingBox returns the grid box of a node. Multi-line and block nodes span
// the full width.
func (h *Host) BoundingBox(handle port.Handle) port.Rect {
	l := h.laidOut()
	s, ok := l.start[handle]
	if !ok {
		return port.Rect{}
	}
	e := l.end[handle]
	if s.y == e.y && !l.block[handle] {
		return port.Rect{Left: s.x, Top: s.y, Width: e.x - s.x, Height: 1}
	}
	return port.Rect{Left: 0, Top: s.y, Width: h.width, Height: e.y - s.y + 1}
}

// CaretRect returns the one-line box of a collapsed caret at a. Offsets
// count code points in text nodes and children in elements.
func (h *Host) CaretRect(a port.Anchor) (port.Rect, bool) {
	n := h.nodes[a.Node]
	if n == nil || !h.attached(n) || a.Offset < 0 {
		return port.Rect{}, false
	}
	l := h.laidOut()

	var p point
	switch {
	case n.text:
		pts := l.runes[n.handle]
		if a.Offset > len(pts) {
			return port.Rect{}, false
		}
		if a.Offset < len(pts) {
			p = pts[a.Offset]
		} else {
			p = l.end[n.handle]
		}
	case a.Offset < len(n.children):
		p = l.start[n.children[a.Offset].handle]
	case a.Offset == len(n.children):
		p = l.end[n.handle]
	default:
		return port.Rect{}, false
	}
	return port.Rect{Left: p.x, Top: p.y, Width: 0, Height: 1}, true
}

func (h *Host) attached(n *node) bool {
	for n.parent != nil {
		n = n.parent
	}
	return n == h.root
}

// ObjectRune stands in for an element that occupies a cell but has no text,
// such as an image.
const ObjectRune = '￼'

// Glyph is one cell of laid out content.
type Glyph struct {
	X, Y int
	Rune rune
	// Node is the text node holding the rune, or the element for ObjectRune.
	Node port.Handle
	// Offset is the code point offset within Node.
	Offset int
}

// Glyphs returns the visible cells of the tree in document order. Line
// breaks and tabs are omitted.
func (h *Host) Glyphs() []Glyph {
	l := h.laidOut()
	var out []Glyph
	var visit func(n *node)
	visit = func(n *node) {
		switch {
		case n.text:
			pts := l.runes[n.handle]
			i := 0
			for _, r := range n.value {
				if r != '\n' && r != '\t' && i < len(pts) {
					out = append(out, Glyph{X: pts[i].x, Y: pts[i].y, Rune: r, Node: n.handle, Offset: i})
				}
				i++
			}
		case len(n.children) == 0 && n.tag != "br" && !l.block[n.handle]:
			p := l.start[n.handle]
			out = append(out, Glyph{X: p.x, Y: p.y, Rune: ObjectRune, Node: n.handle})
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(h.root)
	return out
}

// Lines returns the number of grid rows used by the tree.
func (h *Host) Lines() int {
	l := h.laidOut()
	e := l.end[h.root.handle]
	if e.x > 0 {
		return e.y + 1
	}
	return e.y
}
