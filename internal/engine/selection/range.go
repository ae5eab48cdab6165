package selection

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/port"
)

// State is the lifecycle state of a Range.
type State int

const (
	// Detached ranges have no coordinates.
	Detached State = iota
	// Bound ranges have document coordinates.
	Bound
	// Applied ranges have been written to the host.
	Applied
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Detached:
		return "detached"
	case Bound:
		return "bound"
	case Applied:
		return "applied"
	default:
		return "unknown"
	}
}

// Mapper converts between host anchors and document positions.
type Mapper interface {
	Position(a port.Anchor) (doc.Position, error)
	Anchor(p doc.Position) (port.Anchor, error)
	CaretRect(p doc.Position) (port.Rect, bool)
}

// Range is a span between two document positions.
type Range struct {
	state    State
	start    doc.Position
	end      doc.Position
	backward bool
}

// NewRange returns a detached range.
func NewRange() *Range {
	return &Range{}
}

// Caret returns a collapsed range at p.
func Caret(p doc.Position) *Range {
	return &Range{state: Bound, start: p, end: p}
}

// Span returns a forward range from start to end. start must not follow end.
func Span(start, end doc.Position) *Range {
	return &Range{state: Bound, start: start, end: end}
}

// State returns the lifecycle state.
func (r *Range) State() State { return r.state }

// Start returns the endpoint that comes first in the document.
func (r *Range) Start() doc.Position { return r.start }

// End returns the endpoint that comes last in the document.
func (r *Range) End() doc.Position { return r.end }

// Backward reports whether the focus precedes the anchor.
func (r *Range) Backward() bool { return r.backward }

// Anchor returns the fixed endpoint.
func (r *Range) Anchor() doc.Position {
	if r.backward {
		return r.end
	}
	return r.start
}

// Focus returns the moving endpoint.
func (r *Range) Focus() doc.Position {
	if r.backward {
		return r.start
	}
	return r.end
}

// Collapsed reports whether both endpoints are equal.
func (r *Range) Collapsed() bool {
	return r.start == r.end
}

// Set binds the range to anchor and focus, ordering them in d.
func (r *Range) Set(d *doc.Document, anchor, focus doc.Position) {
	r.state = Bound
	if d.Compare(anchor, focus) > 0 {
		r.start, r.end, r.backward = focus, anchor, true
		return
	}
	r.start, r.end, r.backward = anchor, focus, false
}

// Collapse binds the range as a caret at p.
func (r *Range) Collapse(p doc.Position) {
	r.state = Bound
	r.start, r.end, r.backward = p, p, false
}

// Extend moves the focus to p, keeping the anchor.
func (r *Range) Extend(d *doc.Document, p doc.Position) {
	r.Set(d, r.Anchor(), p)
}

// Bind resolves a native host range through m.
func (r *Range) Bind(d *doc.Document, m Mapper, native port.NativeRange) error {
	anchor, err := m.Position(native.Anchor)
	if err != nil {
		return fmt.Errorf("bind anchor: %w", err)
	}
	focus, err := m.Position(native.Focus)
	if err != nil {
		return fmt.Errorf("bind focus: %w", err)
	}
	r.Set(d, anchor, focus)
	return nil
}

// Apply converts the range into a native host range and marks it Applied.
func (r *Range) Apply(m Mapper) (port.NativeRange, error) {
	if r.state == Detached {
		return port.NativeRange{}, ErrDetached
	}
	anchor, err := m.Anchor(r.Anchor())
	if err != nil {
		return port.NativeRange{}, fmt.Errorf("apply anchor: %w", err)
	}
	focus, err := m.Anchor(r.Focus())
	if err != nil {
		return port.NativeRange{}, fmt.Errorf("apply focus: %w", err)
	}
	r.state = Applied
	return port.NativeRange{Anchor: anchor, Focus: focus}, nil
}

// Clone returns a copy of the range.
func (r *Range) Clone() *Range {
	c := *r
	return &c
}

// String returns a compact representation of the range.
func (r *Range) String() string {
	if r.state == Detached {
		return "[detached]"
	}
	if r.Collapsed() {
		return fmt.Sprintf("[%s]", r.start)
	}
	return fmt.Sprintf("[%s..%s]", r.start, r.end)
}
