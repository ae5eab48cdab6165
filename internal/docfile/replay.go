package docfile

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/format"
)

// Apply runs one step against e. Positions resolve through b.
func (b *Built) Apply(e *engine.Editor, s Step) error {
	switch s.Op {
	case "select", "add":
		anchor, err := b.Position(s.Anchor)
		if err != nil {
			return err
		}
		focus := anchor
		if s.Focus != "" {
			if focus, err = b.Position(s.Focus); err != nil {
				return err
			}
		}
		if s.Op == "add" {
			return e.AddRange(anchor, focus)
		}
		return e.Select(anchor, focus)
	case "format":
		state, ok := format.ParseState(s.State)
		if !ok {
			return fmt.Errorf("%w: %q", ErrBadState, s.State)
		}
		var data format.Data
		if len(s.Data) > 0 {
			data = format.Data(s.Data)
		}
		return e.ApplyFormat(format.Key(s.Key), state, data, s.Important)
	case "insert":
		return e.InsertText(s.Text)
	case "delete":
		return e.DeleteSelection()
	case "move":
		switch s.Direction {
		case "left":
			return e.MoveLeft(s.Extend)
		case "right":
			return e.MoveRight(s.Extend)
		case "up":
			return e.MoveUp(s.Extend)
		case "down":
			return e.MoveDown(s.Extend)
		}
		return fmt.Errorf("unknown direction %q", s.Direction)
	case "undo":
		return e.Undo()
	case "redo":
		return e.Redo()
	case "checkpoint":
		return e.Checkpoint(s.Description)
	}
	return fmt.Errorf("unknown step %q", s.Op)
}

// String describes the step for logs and diff headers.
func (s Step) String() string {
	switch s.Op {
	case "select", "add":
		if s.Focus == "" {
			return fmt.Sprintf("%s %s", s.Op, s.Anchor)
		}
		return fmt.Sprintf("%s %s..%s", s.Op, s.Anchor, s.Focus)
	case "format":
		state := s.State
		if state == "" {
			state = "valid"
		}
		return fmt.Sprintf("format %s %s", s.Key, state)
	case "insert":
		return fmt.Sprintf("insert %q", s.Text)
	case "move":
		if s.Extend {
			return "extend " + s.Direction
		}
		return "move " + s.Direction
	}
	return s.Op
}
