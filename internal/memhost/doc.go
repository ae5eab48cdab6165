// Package memhost provides an in-memory rendering host.
//
// Host implements port.Tree, port.Inspector and port.SelectionHost over a
// plain node tree. It lays the tree out on a monospace grid of a fixed width,
// wrapping text and breaking lines around block elements, so that bounding
// boxes and caret rectangles behave like a real surface for cursor movement.
// Cell widths come from go-runewidth.
//
// Host counts creations, insertions and destructions so tests can assert on
// the amount of work a reconciliation performed, and Dump prints the tree in
// a stable indented form.
package memhost
