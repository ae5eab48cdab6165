package engine

import "github.com/dshills/inkwell/internal/engine/format"

// Command is an editing feature driven by the current selection.
type Command interface {
	// QueryState reports whether the command is active at the selection.
	QueryState(e *Editor) (format.State, format.Data, error)

	// Apply runs the command. Important ranges lose ties with existing ones.
	Apply(e *Editor, important bool, params format.Data) error
}

// FormatCommand applies one formatter key. With Toggle set, applying to a
// selection where the key is already active removes it.
type FormatCommand struct {
	Key    format.Key
	Toggle bool
}

// QueryState implements Command.
func (c FormatCommand) QueryState(e *Editor) (format.State, format.Data, error) {
	return e.QueryFormat(c.Key)
}

// Apply implements Command.
func (c FormatCommand) Apply(e *Editor, important bool, params format.Data) error {
	state := format.Valid
	if c.Toggle {
		current, _, err := e.QueryFormat(c.Key)
		if err != nil {
			return err
		}
		if current == format.Valid {
			state = format.Invalid
		}
	}
	return e.ApplyFormat(c.Key, state, params, important)
}
