package history

// GroupScope provides a convenient way to group edits using defer.
// Usage:
//
//	func doComplexEdit(h *History) {
//	    defer h.GroupScope("Complex Edit").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End ends the group scope. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope and discards its snapshot.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. If fn fails the group is cancelled.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}
	h.EndGroup()
	return nil
}

// Checkpoint marks a depth of the undo stack.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes every step since cp. current is the live state;
// the returned snapshot is the state to restore, or nil when nothing was
// undone.
func (h *History) UndoToCheckpoint(cp Checkpoint, current *Snapshot) (*Snapshot, error) {
	var restore *Snapshot
	for h.UndoCount() > cp.undoDepth {
		prev, err := h.Undo(current)
		if err != nil {
			return restore, err
		}
		restore, current = prev, prev
	}
	return restore, nil
}
