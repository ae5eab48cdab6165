// Package format implements formatting ranges and the per-fragment format table.
//
// A Range annotates an interval of a fragment's index space with a State and
// optional Data for a single formatter Key. A Table maps every Key to an
// ordered list of ranges. After Merge the list for a key is sorted,
// non-overlapping, and adjacent ranges with equal state and data are coalesced.
//
// # Priority Classes
//
// Every formatter belongs to one Class. Structural and BlockStyle formatters
// apply to a whole fragment and bypass the interval machinery: merging a
// block-level range replaces the key's single range. InlineWrapper and
// InlineProperty formatters are merged with a per-index mark array where the
// last applied range wins. An important range is applied first, so any
// existing range overwrites it.
//
// # Point Marks
//
// A collapsed range (Start == End) is a point mark. Point marks survive a merge
// only when no Valid interval of the same key strictly surrounds their index. On an empty
// fragment the only possible range is the point mark [0,0).
package format
