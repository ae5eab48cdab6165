// Package port defines the boundary contracts between the document engine and
// its rendering host.
//
// The engine never touches a concrete rendering surface. The reconciler
// mutates the host only through Tree, selection state crosses the boundary
// through SelectionHost, and geometry comes back through BoundingBox and
// CaretRect.
package port

// Handle identifies a host node. The zero Handle means "no node".
type Handle uint64

// None is the zero handle.
const None Handle = 0

// Valid reports whether h refers to a node.
func (h Handle) Valid() bool { return h != None }

// Rect is a host-reported box.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Element describes a host element to create.
type Element struct {
	Tag    string
	Attrs  map[string]string
	Styles map[string]string
}

// Tree is the host tree port the reconciler mutates.
type Tree interface {
	// CreateElement creates a detached element.
	CreateElement(tag string, attrs, styles map[string]string) Handle

	// CreateText creates a detached text node.
	CreateText(text string) Handle

	// Insert places child at index among parent's children. A child that is
	// already attached is moved.
	Insert(parent, child Handle, index int)

	// Append places child after parent's last child.
	Append(parent, child Handle)

	// Destroy detaches and discards a node and its subtree.
	Destroy(h Handle)

	// BoundingBox returns the box of a node.
	BoundingBox(h Handle) Rect
}

// NodeInfo describes an existing host node.
type NodeInfo struct {
	Text   bool
	Tag    string
	Value  string
	Attrs  map[string]string
	Styles map[string]string
}

// Inspector reads an existing host tree, used to turn host markup back into
// the document model.
type Inspector interface {
	Info(h Handle) (NodeInfo, bool)
	Children(h Handle) []Handle
}

// Anchor is a native selection endpoint. For text nodes Offset counts code
// points; for elements it counts children.
type Anchor struct {
	Node   Handle
	Offset int
}

// NativeRange is a native selection range. Anchor is where the selection
// started and Focus where it ends, in either document direction.
type NativeRange struct {
	Anchor Anchor
	Focus  Anchor
}

// SelectionHost reads and writes native selection state.
type SelectionHost interface {
	// NativeRanges returns the current native ranges in insertion order.
	NativeRanges() []NativeRange

	// SetNativeRanges replaces the native selection.
	SetNativeRanges(ranges []NativeRange)

	// CaretRect returns the box of a collapsed caret at a.
	CaretRect(a Anchor) (Rect, bool)
}
