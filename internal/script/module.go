package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/hook"
)

// ModuleName is the global the editing API is installed under.
const ModuleName = "ink"

// listenerPriority orders script listeners after system listeners.
const listenerPriority = hook.PriorityUser

type listener struct {
	name       string
	unregister func()
}

func (r *Runner) register() {
	mod := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"select":     r.selectRange,
		"add":        r.addRange,
		"format":     r.format,
		"toggle":     r.toggle,
		"insert":     r.insert,
		"delete":     r.delete,
		"move":       r.move,
		"undo":       r.undo,
		"redo":       r.redo,
		"checkpoint": r.checkpoint,
		"query":      r.query,
		"text":       r.text,
		"dump":       r.dump,
		"selection":  r.selection,
		"on_command": r.onCommand,
		"on_history": r.onHistory,
		"log":        r.logMessage,
	})
	r.L.SetGlobal(ModuleName, mod)
}

// check raises err as a Lua error prefixed with op.
func check(L *lua.LState, op string, err error) {
	if err != nil {
		L.RaiseError("%s: %v", op, err)
	}
}

func (r *Runner) position(L *lua.LState, n int) doc.Position {
	p, err := r.session.Position(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return p
}

// positions reads an anchor and an optional focus, which defaults to the
// anchor.
func (r *Runner) positions(L *lua.LState) (doc.Position, doc.Position) {
	anchor := r.position(L, 1)
	focus := anchor
	if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
		focus = r.position(L, 2)
	}
	return anchor, focus
}

// select(anchor, focus?)
func (r *Runner) selectRange(L *lua.LState) int {
	anchor, focus := r.positions(L)
	check(L, "select", r.session.Editor.Select(anchor, focus))
	return 0
}

// add(anchor, focus?)
func (r *Runner) addRange(L *lua.LState) int {
	anchor, focus := r.positions(L)
	check(L, "add", r.session.Editor.AddRange(anchor, focus))
	return 0
}

// format(key, state?, data?, important?)
func (r *Runner) format(L *lua.LState) int {
	key := format.Key(L.CheckString(1))
	state, ok := format.ParseState(L.OptString(2, ""))
	if !ok {
		L.ArgError(2, fmt.Sprintf("unknown state %q", L.OptString(2, "")))
		return 0
	}
	data := toData(L.OptTable(3, nil))
	important := L.OptBool(4, false)
	check(L, "format", r.session.Editor.ApplyFormat(key, state, data, important))
	return 0
}

// toggle(key, important?)
func (r *Runner) toggle(L *lua.LState) int {
	cmd := engine.FormatCommand{Key: format.Key(L.CheckString(1)), Toggle: true}
	check(L, "toggle", cmd.Apply(r.session.Editor, L.OptBool(2, false), nil))
	return 0
}

// insert(text)
func (r *Runner) insert(L *lua.LState) int {
	check(L, "insert", r.session.Editor.InsertText(L.CheckString(1)))
	return 0
}

// delete()
func (r *Runner) delete(L *lua.LState) int {
	check(L, "delete", r.session.Editor.DeleteSelection())
	return 0
}

// move(direction, extend?)
func (r *Runner) move(L *lua.LState) int {
	e := r.session.Editor
	extend := L.OptBool(2, false)
	var err error
	switch dir := L.CheckString(1); dir {
	case "left":
		err = e.MoveLeft(extend)
	case "right":
		err = e.MoveRight(extend)
	case "up":
		err = e.MoveUp(extend)
	case "down":
		err = e.MoveDown(extend)
	default:
		L.ArgError(1, fmt.Sprintf("unknown direction %q", dir))
		return 0
	}
	check(L, "move", err)
	return 0
}

// undo() -> bool
// Returns false when there is nothing to undo.
func (r *Runner) undo(L *lua.LState) int {
	return r.travel(L, "undo", r.session.Editor.Undo, engine.ErrNothingToUndo)
}

// redo() -> bool
func (r *Runner) redo(L *lua.LState) int {
	return r.travel(L, "redo", r.session.Editor.Redo, engine.ErrNothingToRedo)
}

func (r *Runner) travel(L *lua.LState, op string, fn func() error, empty error) int {
	err := fn()
	if errors.Is(err, empty) {
		L.Push(lua.LFalse)
		return 1
	}
	check(L, op, err)
	L.Push(lua.LTrue)
	return 1
}

// checkpoint(description?)
func (r *Runner) checkpoint(L *lua.LState) int {
	check(L, "checkpoint", r.session.Editor.Checkpoint(L.OptString(1, "script")))
	return 0
}

// query(key) -> state, data
func (r *Runner) query(L *lua.LState) int {
	state, data, err := r.session.Editor.QueryFormat(format.Key(L.CheckString(1)))
	check(L, "query", err)
	L.Push(lua.LString(state.String()))
	if data == nil {
		L.Push(lua.LNil)
	} else {
		L.Push(fromData(L, data))
	}
	return 2
}

// text(name) -> string
func (r *Runner) text(L *lua.LState) int {
	name := L.CheckString(1)
	id, ok := r.session.Names[name]
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown fragment %q", name))
		return 0
	}
	f, ok := r.session.Editor.Document().Fragment(id)
	if !ok {
		L.RaiseError("text: fragment %q was removed", name)
		return 0
	}
	L.Push(lua.LString(f.Text()))
	return 1
}

// dump() -> string
func (r *Runner) dump(L *lua.LState) int {
	L.Push(lua.LString(r.session.Host.Dump()))
	return 1
}

// selection() -> {{anchor=, focus=}, ...}
func (r *Runner) selection(L *lua.LState) int {
	out := L.NewTable()
	for _, rg := range r.session.Editor.Selection().Ranges() {
		t := L.NewTable()
		t.RawSetString("anchor", lua.LString(r.session.Name(rg.Anchor())))
		t.RawSetString("focus", lua.LString(r.session.Name(rg.Focus())))
		t.RawSetString("collapsed", lua.LBool(rg.Collapsed()))
		out.Append(t)
	}
	L.Push(out)
	return 1
}

// on_command(fn)
// fn receives {name, key, state, text}. Returning false cancels the command.
func (r *Runner) onCommand(L *lua.LState) int {
	fn := L.CheckFunction(1)
	name := r.listenerName("command")
	pipeline := r.session.Editor.Hooks().BeforeCommand
	pipeline.Register(hook.Func(name, listenerPriority, func(ev engine.CommandEvent) bool {
		t := r.L.NewTable()
		t.RawSetString("name", lua.LString(ev.Name))
		t.RawSetString("key", lua.LString(ev.Key))
		if ev.Name == "format" {
			t.RawSetString("state", lua.LString(ev.State.String()))
		}
		t.RawSetString("text", lua.LString(ev.Text))
		ret, ok := r.call(name, fn, t)
		if !ok {
			return true
		}
		return ret != lua.LFalse
	}))
	r.listeners = append(r.listeners, listener{name: name, unregister: func() { pipeline.Unregister(name) }})
	return 0
}

// on_history(fn)
// fn receives {action, description, undo, redo}.
func (r *Runner) onHistory(L *lua.LState) int {
	fn := L.CheckFunction(1)
	name := r.listenerName("history")
	pipeline := r.session.Editor.Hooks().HistoryChange
	pipeline.Register(hook.Observer(name, listenerPriority, func(ev engine.HistoryEvent) {
		t := r.L.NewTable()
		t.RawSetString("action", lua.LString(ev.Action))
		t.RawSetString("description", lua.LString(ev.Description))
		t.RawSetString("undo", lua.LNumber(ev.UndoCount))
		t.RawSetString("redo", lua.LNumber(ev.RedoCount))
		r.call(name, fn, t)
	}))
	r.listeners = append(r.listeners, listener{name: name, unregister: func() { pipeline.Unregister(name) }})
	return 0
}

func (r *Runner) listenerName(kind string) string {
	return fmt.Sprintf("script.%s.%d", kind, len(r.listeners)+1)
}

// call invokes a listener callback. Failures are logged and reported as
// not ok.
func (r *Runner) call(name string, fn *lua.LFunction, arg lua.LValue) (lua.LValue, bool) {
	if r.closed {
		return lua.LNil, false
	}
	err := r.doWithRecovery(func() error {
		return r.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, arg)
	})
	if err != nil {
		r.log.Warn("listener failed", "listener", name, "err", err)
		return lua.LNil, false
	}
	ret := r.L.Get(-1)
	r.L.Pop(1)
	return ret, true
}

// log(message)
func (r *Runner) logMessage(L *lua.LState) int {
	r.log.Info(L.CheckString(1))
	return 0
}

func toData(t *lua.LTable) format.Data {
	if t == nil {
		return nil
	}
	data := make(format.Data)
	t.ForEach(func(k, v lua.LValue) {
		data[k.String()] = v.String()
	})
	return data
}

func fromData(L *lua.LState, data format.Data) *lua.LTable {
	t := L.NewTable()
	for k, v := range data {
		t.RawSetString(k, lua.LString(v))
	}
	return t
}
