package vdom

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/port"
)

// Kind discriminates render nodes.
type Kind int

const (
	// Container nodes wrap children in the elements of their formats.
	Container Kind = iota
	// Leaf nodes hold a text run or a component.
	Leaf
)

// Node is a virtual render node.
type Node struct {
	Kind Kind

	// Formats are the ranges that apply to this container, outermost first.
	Formats []format.Range

	// Elements is the host element chain, outermost first. Empty when the
	// formats render nothing.
	Elements []port.Element

	// Text is the literal run of a text leaf.
	Text string

	// Component is set on component leaves.
	Component *doc.Component

	// Start and End locate the node in its fragment's index space.
	Start, End int

	// Fragment tags the root container of a fragment.
	Fragment doc.FragmentID

	// Children are the container's children, or a component leaf's slot roots.
	Children []*Node

	// Parent is a non-owning back link within the tree.
	Parent *Node

	// El is the outermost host node, Inner the host node receiving children.
	// Both are assigned by the reconciler.
	El    port.Handle
	Inner port.Handle
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n.Kind == Leaf && n.Component == nil
}

// Len returns the length of n in its fragment's index space.
func (n *Node) Len() int {
	return n.End - n.Start
}

// IsFragmentRoot reports whether n is the root of a fragment's tree.
func (n *Node) IsFragmentRoot() bool {
	return n.Fragment != ""
}

// adopt links children back to n.
func (n *Node) adopt() {
	for _, c := range n.Children {
		c.Parent = n
	}
}

// Walk visits n and its descendants depth-first. Returning false skips the
// node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// String renders a compact form of the tree for debugging and tests, e.g.
// paragraph[bold["Hello"] " World"].
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch {
	case n.IsText():
		fmt.Fprintf(sb, "%q", n.Text)
		return
	case n.Kind == Leaf:
		sb.WriteString("<" + n.Component.Tag())
		for _, c := range n.Children {
			sb.WriteByte(' ')
			c.write(sb)
		}
		sb.WriteString(">")
		return
	}
	keys := make([]string, 0, len(n.Formats))
	for _, r := range n.Formats {
		k := string(r.Key)
		if r.State != format.Valid {
			k += ":" + r.State.String()
		}
		keys = append(keys, k)
	}
	sb.WriteString(strings.Join(keys, "+"))
	sb.WriteByte('[')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		c.write(sb)
	}
	sb.WriteByte(']')
}

func textLen(s string) int {
	return utf8.RuneCountInString(s)
}
