package doc

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// ComponentID identifies a component across clones.
type ComponentID string

// NewComponentID returns a fresh component id.
func NewComponentID() ComponentID {
	return ComponentID(uuid.NewString())
}

// Kind discriminates component shapes.
type Kind int

const (
	// Leaf components have no slots.
	Leaf Kind = iota
	// Division components have exactly one slot.
	Division
	// Branch components have an ordered, editable list of slots.
	Branch
	// Backbone components have an indexable sequence of structural slots.
	Backbone
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Division:
		return "division"
	case Branch:
		return "branch"
	case Backbone:
		return "backbone"
	default:
		return "unknown"
	}
}

// Component is a structural node embedded in a fragment's content.
type Component struct {
	id    ComponentID
	kind  Kind
	tag   string
	attrs map[string]string
	void  bool
	slots []*Fragment
}

// NewLeaf creates a leaf component.
func NewLeaf(tag string, attrs map[string]string) *Component {
	return &Component{id: NewComponentID(), kind: Leaf, tag: tag, attrs: maps.Clone(attrs)}
}

// NewVoid creates a leaf component that acts as a void marker.
func NewVoid(tag string) *Component {
	c := NewLeaf(tag, nil)
	c.void = true
	return c
}

// NewDivision creates a division owning slot. A nil slot gets an empty fragment.
func NewDivision(tag string, slot *Fragment) *Component {
	if slot == nil {
		slot = NewFragment()
	}
	return &Component{id: NewComponentID(), kind: Division, tag: tag, slots: []*Fragment{slot}}
}

// NewBranch creates a branch with the given slots.
func NewBranch(tag string, slots ...*Fragment) *Component {
	return &Component{id: NewComponentID(), kind: Branch, tag: tag, slots: slices.Clone(slots)}
}

// NewBackbone creates a backbone with the given slots.
func NewBackbone(tag string, slots ...*Fragment) *Component {
	return &Component{id: NewComponentID(), kind: Backbone, tag: tag, slots: slices.Clone(slots)}
}

// ID returns the component id.
func (c *Component) ID() ComponentID { return c.id }

// Kind returns the component kind.
func (c *Component) Kind() Kind { return c.kind }

// Tag implements content.Object.
func (c *Component) Tag() string { return c.tag }

// IsVoid implements content.Voider.
func (c *Component) IsVoid() bool { return c.void }

// Attrs returns a copy of the component attributes.
func (c *Component) Attrs() map[string]string { return maps.Clone(c.attrs) }

// Attr returns a single attribute.
func (c *Component) Attr(name string) string { return c.attrs[name] }

// SetAttr sets an attribute.
func (c *Component) SetAttr(name, value string) {
	if c.attrs == nil {
		c.attrs = make(map[string]string)
	}
	c.attrs[name] = value
}

// HasSlots reports whether the component owns child fragments.
func (c *Component) HasSlots() bool { return len(c.slots) > 0 }

// Slots returns the child fragments in order.
func (c *Component) Slots() []*Fragment { return slices.Clone(c.slots) }

// SlotCount returns the number of slots.
func (c *Component) SlotCount() int { return len(c.slots) }

// Slot returns the slot at i.
func (c *Component) Slot(i int) (*Fragment, bool) {
	if i < 0 || i >= len(c.slots) {
		return nil, false
	}
	return c.slots[i], true
}

// SlotIndex returns the index of f among the slots, or -1.
func (c *Component) SlotIndex(f *Fragment) int {
	return slices.Index(c.slots, f)
}

// All iterates the slots with their indices.
func (c *Component) All() iter.Seq2[int, *Fragment] {
	return func(yield func(int, *Fragment) bool) {
		for i, f := range c.slots {
			if !yield(i, f) {
				return
			}
		}
	}
}

// InsertSlot inserts a slot at i. Only branches and backbones accept new slots.
func (c *Component) InsertSlot(i int, f *Fragment) error {
	switch c.kind {
	case Branch, Backbone:
	case Leaf, Division:
		return fmt.Errorf("insert slot into %s: %w", c.kind, ErrWrongKind)
	}
	if i < 0 || i > len(c.slots) {
		return fmt.Errorf("insert slot %d: %w", i, ErrSlotOutOfRange)
	}
	c.slots = slices.Insert(c.slots, i, f)
	return nil
}

// RemoveSlot removes the slot at i and returns it.
func (c *Component) RemoveSlot(i int) (*Fragment, error) {
	switch c.kind {
	case Branch, Backbone:
	case Leaf, Division:
		return nil, fmt.Errorf("remove slot from %s: %w", c.kind, ErrWrongKind)
	}
	if i < 0 || i >= len(c.slots) {
		return nil, fmt.Errorf("remove slot %d: %w", i, ErrSlotOutOfRange)
	}
	f := c.slots[i]
	c.slots = slices.Delete(c.slots, i, i+1)
	return f, nil
}

// ReplaceSlot swaps the slot at i. Divisions accept only index 0.
func (c *Component) ReplaceSlot(i int, f *Fragment) error {
	if c.kind == Leaf {
		return fmt.Errorf("replace slot of %s: %w", c.kind, ErrWrongKind)
	}
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("replace slot %d: %w", i, ErrSlotOutOfRange)
	}
	c.slots[i] = f
	return nil
}

// Clone returns a deep copy preserving ids.
func (c *Component) Clone() *Component {
	cp := &Component{
		id:    c.id,
		kind:  c.kind,
		tag:   c.tag,
		attrs: maps.Clone(c.attrs),
		void:  c.void,
	}
	if len(c.slots) > 0 {
		cp.slots = make([]*Fragment, len(c.slots))
		for i, s := range c.slots {
			cp.slots[i] = s.Clone()
		}
	}
	return cp
}
