package memhost

import (
	"slices"

	"github.com/dshills/inkwell/internal/port"
)

// RootTag is the tag of the host root element.
const RootTag = "root"

// DefaultBlockTags are the tags laid out on their own lines.
var DefaultBlockTags = []string{
	RootTag, "p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "blockquote", "pre", "hr", "table", "tr", "section",
}

// Counters records host mutations.
type Counters struct {
	Created   int
	Inserted  int
	Destroyed int
}

type node struct {
	handle   port.Handle
	text     bool
	tag      string
	value    string
	attrs    map[string]string
	styles   map[string]string
	parent   *node
	children []*node
}

// Host is an in-memory rendering host.
type Host struct {
	nodes    map[port.Handle]*node
	next     port.Handle
	root     *node
	width    int
	tabWidth int
	blocks   map[string]bool

	ranges   []port.NativeRange
	counters Counters

	layout *layout
}

// Option configures a Host.
type Option func(*Host)

// WithWidth sets the layout width in cells.
func WithWidth(width int) Option {
	return func(h *Host) {
		if width > 0 {
			h.width = width
		}
	}
}

// WithTabWidth sets the width of a tab stop.
func WithTabWidth(width int) Option {
	return func(h *Host) {
		if width > 0 {
			h.tabWidth = width
		}
	}
}

// WithBlockTags replaces the set of block-level tags.
func WithBlockTags(tags ...string) Option {
	return func(h *Host) {
		h.blocks = make(map[string]bool, len(tags)+1)
		h.blocks[RootTag] = true
		for _, t := range tags {
			h.blocks[t] = true
		}
	}
}

// New creates a host with an empty root element.
func New(opts ...Option) *Host {
	h := &Host{
		nodes:    make(map[port.Handle]*node),
		width:    80,
		tabWidth: 4,
	}
	WithBlockTags(DefaultBlockTags...)(h)
	for _, opt := range opts {
		opt(h)
	}
	h.root = h.newNode(&node{tag: RootTag})
	return h
}

// Root returns the root element.
func (h *Host) Root() port.Handle { return h.root.handle }

// Width returns the layout width.
func (h *Host) Width() int { return h.width }

// Counters returns the mutation counters.
func (h *Host) Counters() Counters { return h.counters }

// ResetCounters zeroes the mutation counters.
func (h *Host) ResetCounters() { h.counters = Counters{} }

// Len returns the number of live nodes, the root included.
func (h *Host) Len() int { return len(h.nodes) }

func (h *Host) newNode(n *node) *node {
	h.next++
	n.handle = h.next
	h.nodes[n.handle] = n
	return n
}

// CreateElement creates a detached element.
func (h *Host) CreateElement(tag string, attrs, styles map[string]string) port.Handle {
	h.counters.Created++
	return h.newNode(&node{tag: tag, attrs: clone(attrs), styles: clone(styles)}).handle
}

// CreateText creates a detached text node.
func (h *Host) CreateText(text string) port.Handle {
	h.counters.Created++
	return h.newNode(&node{text: true, value: text}).handle
}

// Insert places child at index among parent's children. Indices past the end
// append.
func (h *Host) Insert(parent, child port.Handle, index int) {
	p, c := h.nodes[parent], h.nodes[child]
	if p == nil || c == nil || p.text {
		return
	}
	h.counters.Inserted++
	h.detach(c)
	index = max(0, min(index, len(p.children)))
	p.children = slices.Insert(p.children, index, c)
	c.parent = p
	h.layout = nil
}

// Append places child after parent's last child.
func (h *Host) Append(parent, child port.Handle) {
	if p := h.nodes[parent]; p != nil {
		h.Insert(parent, child, len(p.children))
	}
}

// Destroy detaches and discards a node and its subtree. The root cannot be
// destroyed.
func (h *Host) Destroy(handle port.Handle) {
	n := h.nodes[handle]
	if n == nil || n == h.root {
		return
	}
	h.counters.Destroyed++
	h.detach(n)
	var drop func(*node)
	drop = func(n *node) {
		delete(h.nodes, n.handle)
		for _, c := range n.children {
			drop(c)
		}
	}
	drop(n)
	h.layout = nil
}

func (h *Host) detach(n *node) {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *node) bool { return c == n })
	n.parent = nil
}

// SetText replaces the value of a text node, as a user typing would.
func (h *Host) SetText(handle port.Handle, text string) {
	if n := h.nodes[handle]; n != nil && n.text {
		n.value = text
		h.layout = nil
	}
}

// Info describes a node.
func (h *Host) Info(handle port.Handle) (port.NodeInfo, bool) {
	n := h.nodes[handle]
	if n == nil {
		return port.NodeInfo{}, false
	}
	return port.NodeInfo{
		Text:   n.text,
		Tag:    n.tag,
		Value:  n.value,
		Attrs:  clone(n.attrs),
		Styles: clone(n.styles),
	}, true
}

// Children returns the children of a node.
func (h *Host) Children(handle port.Handle) []port.Handle {
	n := h.nodes[handle]
	if n == nil {
		return nil
	}
	out := make([]port.Handle, len(n.children))
	for i, c := range n.children {
		out[i] = c.handle
	}
	return out
}

// Parent returns the parent of a node, or port.None.
func (h *Host) Parent(handle port.Handle) port.Handle {
	if n := h.nodes[handle]; n != nil && n.parent != nil {
		return n.parent.handle
	}
	return port.None
}

// Walk visits the subtree of handle depth-first. Returning false skips a
// node's children.
func (h *Host) Walk(handle port.Handle, fn func(handle port.Handle, info port.NodeInfo) bool) {
	var visit func(n *node)
	visit = func(n *node) {
		info, _ := h.Info(n.handle)
		if !fn(n.handle, info) {
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	if n := h.nodes[handle]; n != nil {
		visit(n)
	}
}

// FindText returns the first text node under the root holding text.
func (h *Host) FindText(text string) (port.Handle, bool) {
	found := port.None
	h.Walk(h.Root(), func(handle port.Handle, info port.NodeInfo) bool {
		if found.Valid() {
			return false
		}
		if info.Text && info.Value == text {
			found = handle
		}
		return true
	})
	return found, found.Valid()
}

// NativeRanges returns the current native selection.
func (h *Host) NativeRanges() []port.NativeRange {
	return slices.Clone(h.ranges)
}

// SetNativeRanges replaces the native selection.
func (h *Host) SetNativeRanges(ranges []port.NativeRange) {
	h.ranges = slices.Clone(ranges)
}

func clone(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
