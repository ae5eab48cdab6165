package format

import (
	"fmt"
	"maps"
)

// State is the state of a format range.
type State int

const (
	// Valid means the format applies.
	Valid State = iota
	// Invalid means the format is explicitly removed. Invalid ranges are never
	// retained in a table.
	Invalid
	// Inherit means the format follows its surroundings.
	Inherit
	// Exclude suppresses this and every lower-priority format at a point.
	Exclude
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Inherit:
		return "inherit"
	case Exclude:
		return "exclude"
	default:
		return "unknown"
	}
}

// ParseState parses a state name. Unknown names yield Invalid and false.
func ParseState(s string) (State, bool) {
	switch s {
	case "valid", "":
		return Valid, true
	case "invalid":
		return Invalid, true
	case "inherit":
		return Inherit, true
	case "exclude":
		return Exclude, true
	default:
		return Invalid, false
	}
}

// Key identifies a formatter.
type Key string

// Data carries formatter-specific attributes, e.g. {"color": "red"}.
type Data map[string]string

// Equal reports whether two data sets are structurally equal. Nil and empty
// data are equal.
func (d Data) Equal(other Data) bool {
	if len(d) == 0 && len(other) == 0 {
		return true
	}
	return maps.Equal(d, other)
}

// Clone returns an independent copy of d.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Range is a formatted interval [Start, End) of a fragment.
type Range struct {
	Key   Key
	Start int
	End   int
	State State
	Data  Data
}

// Len returns the length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Collapsed reports whether the range is a point mark.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// Same reports whether two ranges carry the same state and data.
func (r Range) Same(other Range) bool {
	return r.State == other.State && r.Data.Equal(other.Data)
}

// Equal reports whether two ranges are identical.
func (r Range) Equal(other Range) bool {
	return r.Key == other.Key && r.Start == other.Start && r.End == other.End && r.Same(other)
}

// Contains reports whether index lies inside [Start, End).
func (r Range) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// Clone returns a copy of the range with independent data.
func (r Range) Clone() Range {
	r.Data = r.Data.Clone()
	return r
}

// String returns a compact representation of the range.
func (r Range) String() string {
	if len(r.Data) == 0 {
		return fmt.Sprintf("%s[%d,%d)%s", r.Key, r.Start, r.End, r.State)
	}
	return fmt.Sprintf("%s[%d,%d)%s%v", r.Key, r.Start, r.End, r.State, map[string]string(r.Data))
}

// Class is the priority class of a formatter, outermost first.
type Class int

const (
	// Structural formatters wrap a whole fragment, one per fragment.
	Structural Class = iota
	// BlockStyle formatters decorate the structural wrapper.
	BlockStyle
	// InlineWrapper formatters create a nested element for their span.
	InlineWrapper
	// InlineProperty formatters decorate the innermost inline wrapper.
	InlineProperty
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case Structural:
		return "structural"
	case BlockStyle:
		return "block-style"
	case InlineWrapper:
		return "inline-wrapper"
	case InlineProperty:
		return "inline-property"
	default:
		return "unknown"
	}
}

// IsBlock reports whether ranges of this class span a whole fragment.
func (c Class) IsBlock() bool {
	return c == Structural || c == BlockStyle
}
