package tui

import "github.com/gdamore/tcell/v2"

// Action is an editor action bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionExtendLeft
	ActionExtendRight
	ActionExtendUp
	ActionExtendDown
	ActionDelete
	ActionNewline
	ActionBold
	ActionItalic
	ActionCode
	ActionUndo
	ActionRedo
	ActionInsert
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionQuit:        "quit",
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionUp:          "up",
	ActionDown:        "down",
	ActionExtendLeft:  "extend-left",
	ActionExtendRight: "extend-right",
	ActionExtendUp:    "extend-up",
	ActionExtendDown:  "extend-down",
	ActionDelete:      "delete",
	ActionNewline:     "newline",
	ActionBold:        "bold",
	ActionItalic:      "italic",
	ActionCode:        "code",
	ActionUndo:        "undo",
	ActionRedo:        "redo",
	ActionInsert:      "insert",
}

// String returns the action name.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

type binding struct {
	key tcell.Key
	mod tcell.ModMask
}

// Keymap maps keys to actions. Printable runes without a binding insert
// themselves.
type Keymap struct {
	bindings map[binding]Action
}

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() *Keymap {
	km := &Keymap{bindings: make(map[binding]Action)}
	km.Bind(tcell.KeyCtrlQ, tcell.ModNone, ActionQuit)
	km.Bind(tcell.KeyEscape, tcell.ModNone, ActionQuit)
	km.Bind(tcell.KeyLeft, tcell.ModNone, ActionLeft)
	km.Bind(tcell.KeyRight, tcell.ModNone, ActionRight)
	km.Bind(tcell.KeyUp, tcell.ModNone, ActionUp)
	km.Bind(tcell.KeyDown, tcell.ModNone, ActionDown)
	km.Bind(tcell.KeyLeft, tcell.ModShift, ActionExtendLeft)
	km.Bind(tcell.KeyRight, tcell.ModShift, ActionExtendRight)
	km.Bind(tcell.KeyUp, tcell.ModShift, ActionExtendUp)
	km.Bind(tcell.KeyDown, tcell.ModShift, ActionExtendDown)
	km.Bind(tcell.KeyBackspace, tcell.ModNone, ActionDelete)
	km.Bind(tcell.KeyBackspace2, tcell.ModNone, ActionDelete)
	km.Bind(tcell.KeyEnter, tcell.ModNone, ActionNewline)
	km.Bind(tcell.KeyCtrlB, tcell.ModCtrl, ActionBold)
	km.Bind(tcell.KeyCtrlT, tcell.ModCtrl, ActionItalic)
	km.Bind(tcell.KeyCtrlK, tcell.ModCtrl, ActionCode)
	km.Bind(tcell.KeyCtrlZ, tcell.ModCtrl, ActionUndo)
	km.Bind(tcell.KeyCtrlY, tcell.ModCtrl, ActionRedo)
	return km
}

// Bind binds key with modifiers to a. Control keys match with or without
// ModCtrl since terminals differ in reporting it.
func (km *Keymap) Bind(key tcell.Key, mod tcell.ModMask, a Action) {
	km.bindings[binding{key, mod}] = a
}

// Lookup returns the action for ev.
func (km *Keymap) Lookup(ev *tcell.EventKey) Action {
	mod := ev.Modifiers() &^ tcell.ModMeta
	if a, ok := km.bindings[binding{ev.Key(), mod}]; ok {
		return a
	}
	if a, ok := km.bindings[binding{ev.Key(), mod ^ tcell.ModCtrl}]; ok && isControl(ev.Key()) {
		return a
	}
	if ev.Key() == tcell.KeyRune && mod&^tcell.ModShift == 0 {
		return ActionInsert
	}
	return ActionNone
}

func isControl(k tcell.Key) bool {
	return k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ
}
