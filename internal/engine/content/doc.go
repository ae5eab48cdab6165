// Package content provides the linear content buffer that backs every fragment.
//
// A Buffer is an ordered sequence of elements. Each element is either a run of
// text or a single embedded Object. Text is measured in Unicode code points, an
// Object always occupies exactly one index. Adjacent text runs are always
// coalesced, so two text elements are never neighbours.
//
// # Index Space
//
// The index space is contiguous and zero-based; Len is the sum of all element
// lengths. Slicing or inserting at an index inside a text run splits the run
// without affecting the ownership of any Object.
//
// # Graphemes
//
// NextBoundary and PrevBoundary step over whole grapheme clusters (as defined by
// UAX #29) inside text runs, and over single Objects.
package content
