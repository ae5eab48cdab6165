package engine

import (
	"github.com/dshills/inkwell/internal/engine/differ"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/hook"
)

// CommandEvent is delivered before a mutating command runs.
type CommandEvent struct {
	// Name is the command name: "format", "insert", "delete" or "restore".
	Name string
	// Key and State are set for "format".
	Key   format.Key
	State format.State
	// Text is set for "insert".
	Text string
	// Selection is a copy of the selection the command will act on.
	Selection *selection.Selection
}

// SelectionEvent is delivered after the model selection changed.
type SelectionEvent struct {
	Selection *selection.Selection
}

// RenderEvent is delivered after a render reached the host.
type RenderEvent struct {
	Stats differ.Stats
}

// HistoryAction names a history transition.
type HistoryAction string

// History actions.
const (
	HistoryPush HistoryAction = "push"
	HistoryUndo HistoryAction = "undo"
	HistoryRedo HistoryAction = "redo"
)

// HistoryEvent is delivered after the undo stacks changed.
type HistoryEvent struct {
	Action      HistoryAction
	Description string
	UndoCount   int
	RedoCount   int
}

// Hooks holds the editor's listener pipelines.
type Hooks struct {
	// BeforeCommand listeners may cancel a command by returning false.
	BeforeCommand *hook.Pipeline[CommandEvent]
	// SelectionChange runs after SyncSelection, moves and edits.
	SelectionChange *hook.Pipeline[SelectionEvent]
	// AfterRender runs after every render.
	AfterRender *hook.Pipeline[RenderEvent]
	// HistoryChange runs after push, undo and redo.
	HistoryChange *hook.Pipeline[HistoryEvent]
}

// NewHooks creates empty pipelines.
func NewHooks() *Hooks {
	return &Hooks{
		BeforeCommand:   hook.NewPipeline[CommandEvent](),
		SelectionChange: hook.NewPipeline[SelectionEvent](),
		AfterRender:     hook.NewPipeline[RenderEvent](),
		HistoryChange:   hook.NewPipeline[HistoryEvent](),
	}
}
