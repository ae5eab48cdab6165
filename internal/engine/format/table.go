package format

import (
	"slices"
	"sort"
)

// Table maps formatter keys to their disjoint range lists. Keys are kept in
// the order they were first added.
type Table struct {
	keys   []Key
	ranges map[Key][]Range
	block  map[Key]bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		ranges: make(map[Key][]Range),
		block:  make(map[Key]bool),
	}
}

// Keys returns the keys present in the table in insertion order.
func (t *Table) Keys() []Key {
	return slices.Clone(t.keys)
}

// Has reports whether key has any range.
func (t *Table) Has(key Key) bool {
	_, ok := t.ranges[key]
	return ok
}

// IsBlock reports whether key was merged as a block-level formatter.
func (t *Table) IsBlock(key Key) bool {
	return t.block[key]
}

// Ranges returns a copy of the ranges for key.
func (t *Table) Ranges(key Key) []Range {
	rs := t.ranges[key]
	out := make([]Range, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// All returns every range, grouped by key in insertion order.
func (t *Table) All() []Range {
	var out []Range
	for _, k := range t.keys {
		out = append(out, t.Ranges(k)...)
	}
	return out
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Delete removes key from the table.
func (t *Table) Delete(key Key) {
	if _, ok := t.ranges[key]; !ok {
		return
	}
	delete(t.ranges, key)
	delete(t.block, key)
	t.keys = slices.DeleteFunc(t.keys, func(k Key) bool { return k == key })
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	for _, k := range t.keys {
		c.keys = append(c.keys, k)
		c.ranges[k] = t.Ranges(k)
		if t.block[k] {
			c.block[k] = true
		}
	}
	return c
}

// Merge applies r to the ranges of r.Key. Block-level classes replace the
// key's range outright; inline classes go through the mark-array merge.
// An Invalid result removes the key.
func (t *Table) Merge(r Range, class Class, important bool) {
	if class.IsBlock() {
		if r.State == Invalid {
			t.Delete(r.Key)
			return
		}
		t.set(r.Key, []Range{r.Clone()})
		t.block[r.Key] = true
		return
	}
	merged := mergeRanges(r.Key, t.ranges[r.Key], r, important)
	if len(merged) == 0 {
		t.Delete(r.Key)
		return
	}
	t.set(r.Key, merged)
}

// MergeWith merges r using the class registered for its key.
func (t *Table) MergeWith(reg *Registry, r Range, important bool) {
	t.Merge(r, reg.Class(r.Key), important)
}

// At returns the range of key applying at index. A point mark at index takes
// precedence over the interval containing it.
func (t *Table) At(key Key, index int) (Range, bool) {
	var found *Range
	for i, r := range t.ranges[key] {
		if t.block[key] {
			return r.Clone(), true
		}
		if r.Collapsed() && r.Start == index {
			return r.Clone(), true
		}
		if r.Contains(index) && found == nil {
			found = &t.ranges[key][i]
		}
	}
	if found == nil {
		return Range{}, false
	}
	return found.Clone(), true
}

// Covers reports whether [start, end) is fully covered by Valid ranges of key.
// For a collapsed span the unit before start decides, falling back to the unit
// at start.
func (t *Table) Covers(key Key, start, end int) bool {
	if t.block[key] {
		r, ok := t.At(key, start)
		return ok && r.State == Valid
	}
	if start >= end {
		if r, ok := t.At(key, start); ok && r.Collapsed() {
			return r.State == Valid
		}
		if start > 0 {
			if r, ok := t.At(key, start-1); ok {
				return r.State == Valid
			}
		}
		r, ok := t.At(key, start)
		return ok && r.State == Valid
	}
	pos := start
	for _, r := range t.ranges[key] {
		if r.Collapsed() || r.End <= pos {
			continue
		}
		if r.Start > pos || r.State != Valid {
			return false
		}
		pos = r.End
		if pos >= end {
			return true
		}
	}
	return false
}

// Shift adjusts ranges for delta units inserted at index. Intervals ending at
// index grow, intervals starting at index move. A point mark at index expands
// over the inserted units; the preceding interval does not grow and an
// interval running through index is split around the mark.
// Block-level ranges always grow.
func (t *Table) Shift(index, delta int) {
	if delta <= 0 {
		return
	}
	for _, k := range t.keys {
		rs := t.ranges[k]
		pending := slices.ContainsFunc(rs, func(r Range) bool {
			return r.Collapsed() && r.Start == index
		})
		out := make([]Range, 0, len(rs)+1)
		for _, r := range rs {
			switch {
			case t.block[k]:
				r.End += delta
			case r.Collapsed() && r.Start == index:
				r.End += delta
			case r.Start >= index:
				r.Start += delta
				r.End += delta
			case pending && r.End > index:
				head := r.Clone()
				head.End = index
				out = append(out, head)
				r.Start = index + delta
				r.End += delta
			case r.End > index || (r.End == index && !pending):
				r.End += delta
			}
			out = append(out, r)
		}
		t.ranges[k] = normalize(k, out)
	}
}

// Cut adjusts ranges for the removal of [start, end). Intervals that become
// empty are dropped. Point marks inside the cut collapse onto start and are
// dropped when they land under a Valid interval.
func (t *Table) Cut(start, end int) {
	if start >= end {
		return
	}
	d := end - start
	move := func(x int) int {
		switch {
		case x <= start:
			return x
		case x <= end:
			return start
		default:
			return x - d
		}
	}
	for _, k := range slices.Clone(t.keys) {
		var out []Range
		for _, r := range t.ranges[k] {
			wasPoint := r.Collapsed()
			r.Start, r.End = move(r.Start), move(r.End)
			if t.block[k] {
				r.Start = 0
			}
			if r.Collapsed() && !wasPoint && !t.block[k] {
				continue
			}
			out = append(out, r)
		}
		if len(out) == 0 {
			t.Delete(k)
			continue
		}
		t.ranges[k] = normalize(k, out)
	}
}

func (t *Table) set(key Key, rs []Range) {
	if _, ok := t.ranges[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.ranges[key] = rs
}

// mergeRanges flattens existing plus r into a disjoint, coalesced list.
// Ranges are applied oldest first and r last, unless important is set, in
// which case r is applied first.
func mergeRanges(key Key, existing []Range, r Range, important bool) []Range {
	ordered := make([]Range, 0, len(existing)+1)
	if important {
		ordered = append(ordered, r)
		ordered = append(ordered, existing...)
	} else {
		ordered = append(ordered, existing...)
		ordered = append(ordered, r)
	}

	var spans, points []Range
	length := 0
	for _, o := range ordered {
		if o.Collapsed() {
			points = append(points, o)
			continue
		}
		spans = append(spans, o)
		length = max(length, o.End)
	}

	marks := make([]*Range, length)
	for i := range spans {
		s := &spans[i]
		for j := max(0, s.Start); j < s.End; j++ {
			marks[j] = s
		}
	}

	var out []Range
	var cur *Range
	flush := func() {
		if cur != nil && cur.State != Invalid {
			out = append(out, *cur)
		}
		cur = nil
	}
	for i, m := range marks {
		if m == nil {
			flush()
			continue
		}
		if cur != nil && cur.Same(*m) {
			cur.End = i + 1
			continue
		}
		flush()
		cur = &Range{Key: key, Start: i, End: i + 1, State: m.State, Data: m.Data.Clone()}
	}
	flush()

	last := make(map[int]Range)
	for _, p := range points {
		last[p.Start] = p
	}
	for at, p := range last {
		if p.State == Invalid || coveredByValid(out, at) {
			continue
		}
		p.Key = key
		out = append(out, p.Clone())
	}

	sortRanges(out)
	return out
}

// coveredByValid reports whether a Valid interval contains index. A mark at
// the end of an interval still decides what text typed there gets.
func coveredByValid(rs []Range, index int) bool {
	for _, r := range rs {
		if r.State == Valid && r.Contains(index) {
			return true
		}
	}
	return false
}

// normalize sorts rs and coalesces adjacent intervals with equal state and
// data. Point marks under a Valid interval are dropped and at most one mark
// is kept per index.
func normalize(key Key, rs []Range) []Range {
	sortRanges(rs)
	var spans, points []Range
	for _, r := range rs {
		r.Key = key
		if r.Collapsed() {
			points = append(points, r)
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].End == r.Start && spans[n-1].Same(r) {
			spans[n-1].End = r.End
			continue
		}
		spans = append(spans, r)
	}
	out := spans
	for i, p := range points {
		if i+1 < len(points) && points[i+1].Start == p.Start {
			continue
		}
		if coveredByValid(spans, p.Start) {
			continue
		}
		out = append(out, p)
	}
	sortRanges(out)
	return out
}

func sortRanges(rs []Range) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Start != rs[j].Start {
			return rs[i].Start < rs[j].Start
		}
		return rs[i].End < rs[j].End
	})
}
