package selection

import (
	"slices"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/port"
)

// Selection is an ordered set of ranges. The last range is primary.
type Selection struct {
	ranges []*Range
}

// New creates a selection holding ranges.
func New(ranges ...*Range) *Selection {
	return &Selection{ranges: ranges}
}

// Ranges returns the ranges in insertion order.
func (s *Selection) Ranges() []*Range {
	return slices.Clone(s.ranges)
}

// Len returns the number of ranges.
func (s *Selection) Len() int { return len(s.ranges) }

// IsEmpty reports whether the selection has no ranges.
func (s *Selection) IsEmpty() bool { return len(s.ranges) == 0 }

// Primary returns the primary range, or nil.
func (s *Selection) Primary() *Range {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[len(s.ranges)-1]
}

// Add appends a range.
func (s *Selection) Add(r *Range) {
	s.ranges = append(s.ranges, r)
}

// Set replaces all ranges.
func (s *Selection) Set(ranges ...*Range) {
	s.ranges = ranges
}

// Clear removes all ranges.
func (s *Selection) Clear() {
	s.ranges = nil
}

// Collapsed reports whether every range is collapsed.
func (s *Selection) Collapsed() bool {
	for _, r := range s.ranges {
		if !r.Collapsed() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	c := &Selection{ranges: make([]*Range, len(s.ranges))}
	for i, r := range s.ranges {
		c.ranges[i] = r.Clone()
	}
	return c
}

// Equal reports whether two selections have the same endpoints.
func (s *Selection) Equal(o *Selection) bool {
	return slices.EqualFunc(s.ranges, o.ranges, func(a, b *Range) bool {
		return a.start == b.start && a.end == b.end && a.backward == b.backward
	})
}

// Sorted returns the ranges in reverse document order of their start, the
// order edits that change content length must be applied in.
func (s *Selection) Sorted(d *doc.Document) []*Range {
	out := slices.Clone(s.ranges)
	slices.SortStableFunc(out, func(a, b *Range) int {
		return d.Compare(b.start, a.start)
	})
	return out
}

// Bind replaces the ranges with the host's native selection.
func (s *Selection) Bind(d *doc.Document, m Mapper, host port.SelectionHost) error {
	natives := host.NativeRanges()
	ranges := make([]*Range, 0, len(natives))
	for _, n := range natives {
		r := NewRange()
		if err := r.Bind(d, m, n); err != nil {
			return err
		}
		ranges = append(ranges, r)
	}
	s.ranges = ranges
	return nil
}

// Apply writes the ranges to the host.
func (s *Selection) Apply(m Mapper, host port.SelectionHost) error {
	natives := make([]port.NativeRange, 0, len(s.ranges))
	for _, r := range s.ranges {
		n, err := r.Apply(m)
		if err != nil {
			return err
		}
		natives = append(natives, n)
	}
	host.SetNativeRanges(natives)
	return nil
}
