package vdom

import (
	"sort"

	"github.com/dshills/inkwell/internal/engine/format"
)

// ReadBack recovers the per-key format ranges expressed by a fragment's
// render tree. Slot subtrees of component leaves are not visited.
func ReadBack(root *Node) map[format.Key][]format.Range {
	out := make(map[format.Key][]format.Range)
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.Kind != Container {
			return
		}
		for _, r := range n.Formats {
			seg := r.Clone()
			seg.Start, seg.End = n.Start, n.End
			out[r.Key] = append(out[r.Key], seg)
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)

	for k, rs := range out {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })
		merged := rs[:1]
		for _, r := range rs[1:] {
			last := &merged[len(merged)-1]
			if last.End == r.Start && last.Same(r) {
				last.End = r.End
				continue
			}
			merged = append(merged, r)
		}
		out[k] = merged
	}
	return out
}
