package history

import (
	"time"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// Snapshot is a deep copy of a document and its selection.
type Snapshot struct {
	document    *doc.Document
	selection   *selection.Selection
	description string
	timestamp   time.Time
}

// Take captures d and sel.
func Take(d *doc.Document, sel *selection.Selection, description string) *Snapshot {
	if sel == nil {
		sel = selection.New()
	}
	return &Snapshot{
		document:    d.Clone(),
		selection:   sel.Clone(),
		description: description,
		timestamp:   time.Now(),
	}
}

// Restore returns fresh copies of the captured document and selection.
func (s *Snapshot) Restore() (*doc.Document, *selection.Selection) {
	return s.document.Clone(), s.selection.Clone()
}

// Description returns the label given when the snapshot was taken.
func (s *Snapshot) Description() string { return s.description }

// Timestamp returns when the snapshot was taken.
func (s *Snapshot) Timestamp() time.Time { return s.timestamp }

// Info describes a history entry for display.
type Info struct {
	Description string
	Timestamp   time.Time
}

func (s *Snapshot) info() Info {
	return Info{Description: s.description, Timestamp: s.timestamp}
}
