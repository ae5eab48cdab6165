package doc

import "fmt"

// Position is an index inside a fragment.
type Position struct {
	Fragment FragmentID
	Index    int
}

// At is shorthand for a position in f.
func At(f *Fragment, index int) Position {
	return Position{Fragment: f.ID(), Index: index}
}

// String returns a compact representation of the position.
func (p Position) String() string {
	id := string(p.Fragment)
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s:%d", id, p.Index)
}
