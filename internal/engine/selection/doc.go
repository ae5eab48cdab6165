// Package selection implements document ranges and the queries editing
// operations run against them.
//
// # Range Lifecycle
//
// A Range starts Detached. Binding it, from positions or from a native host
// range through a Mapper, makes it Bound; writing it back to the host makes
// it Applied. Ranges keep their endpoints in document order and remember
// whether the focus precedes the anchor.
//
// # Queries
//
// CommonAncestorFragment finds the nearest fragment containing every
// endpoint of a selection, or nil when the endpoints share no root.
// SelectedScope splits a range into per-fragment scopes in document order.
// SuccessiveContents does the same but reports fully covered components as
// single units instead of descending into them. All queries are read-only.
//
// # Caret Movement
//
// Horizontal movement walks caret stops: grapheme boundaries next to text or
// leaf components, and every position of an empty fragment. The position
// after a void component that ends its fragment is not a stop. Vertical
// movement has no line model; it steps through caret stops comparing host
// caret rectangles against a remembered target column, which decays after a
// period of inactivity.
package selection
