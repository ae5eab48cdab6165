package selection

import (
	"slices"

	"github.com/dshills/inkwell/internal/engine/doc"
)

// rootward returns the ancestor chain of the fragment at id, root first, or
// nil when d does not index it.
func rootward(d *doc.Document, id doc.FragmentID) []*doc.Fragment {
	f, ok := d.Fragment(id)
	if !ok {
		return nil
	}
	chain := d.Ancestors(f)
	slices.Reverse(chain)
	return chain
}

// agree returns the last fragment all chains share, walking from the root.
func agree(chains [][]*doc.Fragment) *doc.Fragment {
	if len(chains) == 0 {
		return nil
	}
	var last *doc.Fragment
	for i := 0; ; i++ {
		var frontier *doc.Fragment
		for _, c := range chains {
			if i >= len(c) {
				return last
			}
			switch {
			case frontier == nil:
				frontier = c[i]
			case frontier != c[i]:
				return last
			}
		}
		last = frontier
	}
}

// CommonAncestor returns the nearest fragment containing both endpoints of
// r, or nil.
func CommonAncestor(d *doc.Document, r *Range) *doc.Fragment {
	if r.state == Detached {
		return nil
	}
	a, b := rootward(d, r.start.Fragment), rootward(d, r.end.Fragment)
	if a == nil || b == nil {
		return nil
	}
	return agree([][]*doc.Fragment{a, b})
}

// CommonAncestorFragment returns the nearest fragment containing every range
// of s, or nil when there is none.
func CommonAncestorFragment(d *doc.Document, s *Selection) *doc.Fragment {
	if s.IsEmpty() {
		return nil
	}
	chains := make([][]*doc.Fragment, 0, len(s.ranges))
	for _, r := range s.ranges {
		ca := CommonAncestor(d, r)
		if ca == nil {
			return nil
		}
		chains = append(chains, rootward(d, ca.ID()))
	}
	return agree(chains)
}

// CommonAncestorComponent returns the component owning the common ancestor
// fragment of s, or nil when that fragment is the root or there is none.
func CommonAncestorComponent(d *doc.Document, s *Selection) *doc.Component {
	f := CommonAncestorFragment(d, s)
	if f == nil {
		return nil
	}
	return d.ParentComponent(f)
}
