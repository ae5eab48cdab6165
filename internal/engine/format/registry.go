package format

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateFormatter is returned when a key is registered twice.
var ErrDuplicateFormatter = errors.New("formatter already registered")

// Formatter describes a formatting rule.
type Formatter interface {
	// Key returns the unique key of the formatter.
	Key() Key

	// Class returns the priority class.
	Class() Class

	// Priority orders formatters of the same class, lower values outermost.
	Priority() int
}

// Registry holds formatters in registration order.
type Registry struct {
	order []Formatter
	byKey map[Key]int
}

// NewRegistry creates a registry with the given formatters.
func NewRegistry(formatters ...Formatter) (*Registry, error) {
	r := &Registry{byKey: make(map[Key]int)}
	for _, f := range formatters {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a formatter.
func (r *Registry) Register(f Formatter) error {
	if _, ok := r.byKey[f.Key()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFormatter, f.Key())
	}
	r.byKey[f.Key()] = len(r.order)
	r.order = append(r.order, f)
	return nil
}

// Lookup returns the formatter registered for key.
func (r *Registry) Lookup(key Key) (Formatter, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return r.order[i], true
}

// Class returns the class of key. Unknown keys are treated as inline wrappers.
func (r *Registry) Class(key Key) Class {
	if f, ok := r.Lookup(key); ok {
		return f.Class()
	}
	return InlineWrapper
}

// Formatters returns all formatters in registration order.
func (r *Registry) Formatters() []Formatter {
	out := make([]Formatter, len(r.order))
	copy(out, r.order)
	return out
}

// Less orders two keys by class, then priority, then registration order.
// Unknown keys sort last.
func (r *Registry) Less(a, b Key) bool {
	ia, oka := r.byKey[a]
	ib, okb := r.byKey[b]
	switch {
	case !oka && !okb:
		return a < b
	case !oka:
		return false
	case !okb:
		return true
	}
	fa, fb := r.order[ia], r.order[ib]
	if fa.Class() != fb.Class() {
		return fa.Class() < fb.Class()
	}
	if fa.Priority() != fb.Priority() {
		return fa.Priority() < fb.Priority()
	}
	return ia < ib
}

// SortRanges sorts ranges outermost first using Less. The sort is stable.
func (r *Registry) SortRanges(ranges []Range) {
	sort.SliceStable(ranges, func(i, j int) bool {
		return r.Less(ranges[i].Key, ranges[j].Key)
	})
}
