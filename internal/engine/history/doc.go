// Package history provides snapshot-based undo and redo.
//
// # Snapshots
//
// A Snapshot is a deep copy of a document and its selection. Taking and
// restoring a snapshot both clone, so a snapshot is never aliased with a live
// document:
//
//	snap := history.Take(d, sel, "bold")
//	d, sel = snap.Restore()
//
// Fragment and component ids survive the round trip, so selections and
// rendered trees keyed by id stay meaningful.
//
// # History Stack
//
// History keeps bounded undo and redo stacks of snapshots. Push records the
// state before an edit; Undo trades the current state for the top of the
// undo stack:
//
//	h := history.New(1000)
//	h.Push(history.Take(d, sel, "insert"))
//	// ... edit ...
//	prev, err := h.Undo(history.Take(d, sel, "insert"))
//
// # Grouping
//
// While a group is open only the first pushed snapshot is kept, so every edit
// in the group undoes in one step:
//
//	h.BeginGroup("Find and Replace")
//	// ... multiple edits ...
//	h.EndGroup()
package history
