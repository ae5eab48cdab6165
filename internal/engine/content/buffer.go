package content

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ObjectReplacement is the rune used for objects in Text.
const ObjectReplacement = '￼'

// Object is an opaque embedded unit of length one.
type Object interface {
	// Tag identifies the kind of the object.
	Tag() string
}

// Voider is implemented by objects that act as void markers, such as a
// trailing line break kept to give an empty block some height.
type Voider interface {
	IsVoid() bool
}

// IsVoid reports whether o is a void marker.
func IsVoid(o Object) bool {
	v, ok := o.(Voider)
	return ok && v.IsVoid()
}

// Element is a single entry of a Buffer: a text run or an Object.
type Element struct {
	Text   string
	Object Object
}

// Len returns the number of indices the element occupies.
func (e Element) Len() int {
	if e.Object != nil {
		return 1
	}
	return utf8.RuneCountInString(e.Text)
}

// IsText reports whether the element is a text run.
func (e Element) IsText() bool {
	return e.Object == nil
}

// Buffer is an appendable, sliceable sequence of elements.
type Buffer struct {
	elems  []Element
	length int
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer holding a single text run.
func NewFromString(s string) *Buffer {
	b := New()
	b.AppendText(s)
	return b
}

// Len returns the total length of the buffer.
func (b *Buffer) Len() int {
	return b.length
}

// IsEmpty reports whether the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.length == 0
}

// Elements returns a copy of the buffer's elements.
func (b *Buffer) Elements() []Element {
	out := make([]Element, len(b.elems))
	copy(out, b.elems)
	return out
}

// AppendText appends s, coalescing with a trailing text run.
func (b *Buffer) AppendText(s string) {
	if s == "" {
		return
	}
	n := len(b.elems)
	if n > 0 && b.elems[n-1].IsText() {
		b.elems[n-1].Text += s
	} else {
		b.elems = append(b.elems, Element{Text: s})
	}
	b.length += utf8.RuneCountInString(s)
}

// AppendObject appends o as a single unit.
func (b *Buffer) AppendObject(o Object) {
	if o == nil {
		return
	}
	b.elems = append(b.elems, Element{Object: o})
	b.length++
}

// Append appends an element of either kind.
func (b *Buffer) Append(e Element) {
	if e.Object != nil {
		b.AppendObject(e.Object)
		return
	}
	b.AppendText(e.Text)
}

// InsertText inserts s at index. Index is clamped to [0, Len].
func (b *Buffer) InsertText(index int, s string) {
	if s == "" {
		return
	}
	b.insert(b.clamp(index), Element{Text: s})
}

// InsertObject inserts o at index. Index is clamped to [0, Len].
func (b *Buffer) InsertObject(index int, o Object) {
	if o == nil {
		return
	}
	b.insert(b.clamp(index), Element{Object: o})
}

func (b *Buffer) insert(index int, e Element) {
	at := b.split(index)
	b.elems = append(b.elems, Element{})
	copy(b.elems[at+1:], b.elems[at:])
	b.elems[at] = e
	b.length += e.Len()
	b.coalesce()
}

// Delete removes [start, end) and returns the removed elements.
func (b *Buffer) Delete(start, end int) []Element {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return nil
	}
	from := b.split(start)
	to := b.split(end)
	removed := make([]Element, to-from)
	copy(removed, b.elems[from:to])
	b.elems = append(b.elems[:from], b.elems[to:]...)
	b.length -= end - start
	b.coalesce()
	return removed
}

// Slice returns the elements covering [start, end) without mutating the buffer.
func (b *Buffer) Slice(start, end int) []Element {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return nil
	}
	var out []Element
	pos := 0
	for _, e := range b.elems {
		l := e.Len()
		s, t := max(start, pos), min(end, pos+l)
		if s < t {
			if e.Object != nil {
				out = append(out, e)
			} else {
				out = append(out, Element{Text: runeSlice(e.Text, s-pos, t-pos)})
			}
		}
		pos += l
		if pos >= end {
			break
		}
	}
	return out
}

// At returns the unit at index: a one-rune text element or an object.
func (b *Buffer) At(index int) (Element, bool) {
	if index < 0 || index >= b.length {
		return Element{}, false
	}
	els := b.Slice(index, index+1)
	if len(els) != 1 {
		return Element{}, false
	}
	return els[0], true
}

// ObjectAt returns the object at index, if the unit there is an object.
func (b *Buffer) ObjectAt(index int) (Object, bool) {
	e, ok := b.At(index)
	if !ok || e.Object == nil {
		return nil, false
	}
	return e.Object, true
}

// IndexOf returns the index of o, or -1.
func (b *Buffer) IndexOf(o Object) int {
	pos := 0
	for _, e := range b.elems {
		if e.Object != nil && e.Object == o {
			return pos
		}
		pos += e.Len()
	}
	return -1
}

// Objects returns the embedded objects in order.
func (b *Buffer) Objects() []Object {
	var out []Object
	for _, e := range b.elems {
		if e.Object != nil {
			out = append(out, e.Object)
		}
	}
	return out
}

// Text returns the buffer as a string, objects rendered as ObjectReplacement.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for _, e := range b.elems {
		if e.Object != nil {
			sb.WriteRune(ObjectReplacement)
			continue
		}
		sb.WriteString(e.Text)
	}
	return sb.String()
}

// Clone returns a copy of the buffer. cloneObject is applied to every object;
// a nil cloneObject shares objects with the original.
func (b *Buffer) Clone(cloneObject func(Object) Object) *Buffer {
	c := &Buffer{elems: make([]Element, len(b.elems)), length: b.length}
	for i, e := range b.elems {
		if e.Object != nil && cloneObject != nil {
			e.Object = cloneObject(e.Object)
		}
		c.elems[i] = e
	}
	return c
}

// NextBoundary returns the index after the grapheme cluster or object that
// starts at index.
func (b *Buffer) NextBoundary(index int) int {
	if index >= b.length {
		return b.length
	}
	if index < 0 {
		return 0
	}
	pos := 0
	for _, e := range b.elems {
		l := e.Len()
		if index < pos+l {
			if e.Object != nil {
				return pos + 1
			}
			rest := runeSlice(e.Text, index-pos, l)
			cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
			return index + max(1, utf8.RuneCountInString(cluster))
		}
		pos += l
	}
	return b.length
}

// PrevBoundary returns the start of the grapheme cluster or object that ends
// at index.
func (b *Buffer) PrevBoundary(index int) int {
	if index <= 0 {
		return 0
	}
	if index > b.length {
		return b.length
	}
	pos := 0
	for _, e := range b.elems {
		l := e.Len()
		if index <= pos+l {
			if e.Object != nil {
				return pos
			}
			local := index - pos
			last := 0
			at := 0
			state := -1
			rest := e.Text
			for rest != "" && at < local {
				var cluster string
				cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
				last = at
				at += utf8.RuneCountInString(cluster)
			}
			return pos + last
		}
		pos += l
	}
	return b.length
}

// split makes index an element boundary and returns the element position that
// starts there.
func (b *Buffer) split(index int) int {
	pos := 0
	for i, e := range b.elems {
		if index == pos {
			return i
		}
		l := e.Len()
		if index < pos+l {
			// Objects have length one, so only text runs can be split.
			local := index - pos
			head := Element{Text: runeSlice(e.Text, 0, local)}
			tail := Element{Text: runeSlice(e.Text, local, l)}
			b.elems = append(b.elems, Element{})
			copy(b.elems[i+2:], b.elems[i+1:])
			b.elems[i] = head
			b.elems[i+1] = tail
			return i + 1
		}
		pos += l
	}
	return len(b.elems)
}

// coalesce merges adjacent text runs and drops empty ones.
func (b *Buffer) coalesce() {
	out := b.elems[:0]
	for _, e := range b.elems {
		if e.Object == nil && e.Text == "" {
			continue
		}
		if n := len(out); n > 0 && e.Object == nil && out[n-1].Object == nil {
			out[n-1].Text += e.Text
			continue
		}
		out = append(out, e)
	}
	for i := len(out); i < len(b.elems); i++ {
		b.elems[i] = Element{}
	}
	b.elems = out
}

func (b *Buffer) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > b.length {
		return b.length
	}
	return index
}

// runeSlice returns s[start:end] measured in runes.
func runeSlice(s string, start, end int) string {
	if start >= end {
		return ""
	}
	i, from, to := 0, len(s), len(s)
	for off := range s {
		if i == start {
			from = off
		}
		if i == end {
			to = off
			break
		}
		i++
	}
	return s[from:to]
}
