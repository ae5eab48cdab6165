package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/docfile"
)

const fixture = `
root:
  name: root
  content:
    - component:
        tag: box
        slots:
          - name: a
            text: Hello World
            formats:
              - key: paragraph
    - component:
        tag: box
        slots:
          - name: b
            text: Mid
            formats:
              - key: paragraph
`

func newRunner(t *testing.T, opts ...Option) (*Runner, *docfile.Session) {
	t.Helper()
	f, err := docfile.Parse([]byte(fixture))
	require.NoError(t, err)
	s, err := f.Open(docfile.OpenOptions{Width: 40})
	require.NoError(t, err)
	r := New(s, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, s
}

func fragmentText(t *testing.T, s *docfile.Session, name string) string {
	t.Helper()
	f, ok := s.Editor.Document().Fragment(s.Names[name])
	require.True(t, ok)
	return f.Text()
}

func TestRunnerEdits(t *testing.T) {
	r, s := newRunner(t)

	err := r.Run(context.Background(), "edit", `
		ink.select("a:0", "a:5")
		ink.format("bold")
		ink.select("b:3")
		ink.insert("!")
	`)
	require.NoError(t, err)

	assert.Equal(t, "Mid!", fragmentText(t, s, "b"))
	assert.Contains(t, s.Host.Dump(), "<strong>")
	assert.Equal(t, 2, s.Editor.History().UndoCount())
}

func TestRunnerQueryAndSelection(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, WithOutput(&out))

	err := r.Run(context.Background(), "query", `
		ink.select("a:0", "a:5")
		ink.toggle("italic")
		local state = ink.query("italic")
		print(state)
		ink.toggle("italic")
		print(ink.query("italic"))
		local sel = ink.selection()
		print(#sel, sel[1].anchor, sel[1].focus, sel[1].collapsed)
		print(ink.text("a"))
	`)
	require.NoError(t, err)
	assert.Equal(t, "valid\ninvalid\tnil\n1\ta:0\ta:5\tfalse\nHello World\n", out.String())
}

func TestRunnerUndoRedo(t *testing.T) {
	var out bytes.Buffer
	r, s := newRunner(t, WithOutput(&out))

	err := r.Run(context.Background(), "history", `
		print(ink.undo())
		ink.select("a:11")
		ink.insert("?")
		print(ink.undo(), ink.text("a"))
		print(ink.redo(), ink.text("a"))
		print(ink.redo())
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\tHello World\ntrue\tHello World?\nfalse\n", out.String())
	assert.Equal(t, "Hello World?", fragmentText(t, s, "a"))
}

func TestRunnerMoveAndDelete(t *testing.T) {
	r, s := newRunner(t)

	err := r.Run(context.Background(), "move", `
		ink.select("a:5")
		ink.move("right", true)
		ink.move("right", true)
		ink.delete()
	`)
	require.NoError(t, err)
	assert.Equal(t, "Helloorld", fragmentText(t, s, "a"))
}

func TestRunnerErrorsAreCatchable(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, WithOutput(&out))

	err := r.Run(context.Background(), "pcall", `
		local ok, err = pcall(ink.format, "nope")
		print(ok)
		ok = pcall(ink.select, "zz:0")
		print(ok)
		ok = pcall(ink.move, "sideways")
		print(ok)
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\nfalse\n", out.String())
}

func TestRunnerScriptError(t *testing.T) {
	r, _ := newRunner(t)

	err := r.Run(context.Background(), "bad", `ink.insert("x")`)
	require.ErrorIs(t, err, ErrScript)
	assert.Contains(t, err.Error(), "running bad")
	assert.Contains(t, err.Error(), "insert")

	err = r.Run(context.Background(), "syntax", `ink.select(`)
	require.ErrorIs(t, err, ErrScript)
}

func TestRunnerSandbox(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, WithOutput(&out))

	err := r.Run(context.Background(), "sandbox", `
		print(io, os, require, dofile, loadstring, debug)
		print(string.upper("ok"), math.max(1, 2), table.concat({"a", "b"}, ","))
	`)
	require.NoError(t, err)
	assert.Equal(t, "nil\tnil\tnil\tnil\tnil\tnil\nOK\t2\ta,b\n", out.String())
}

func TestRunnerTimeout(t *testing.T) {
	r, _ := newRunner(t, WithTimeout(50*time.Millisecond))

	err := r.Run(context.Background(), "loop", `while true do end`)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The state stays usable after a timeout.
	require.NoError(t, r.Run(context.Background(), "after", `ink.select("a:0")`))
}

func TestRunnerOnCommandCancels(t *testing.T) {
	var out bytes.Buffer
	r, s := newRunner(t, WithOutput(&out))

	err := r.Run(context.Background(), "guard", `
		ink.on_command(function(ev)
			print(ev.name, ev.key, ev.state)
			return ev.key ~= "code"
		end)
		ink.select("a:0", "a:5")
		ink.format("bold")
		local ok = pcall(ink.format, "code")
		print(ok)
	`)
	require.NoError(t, err)
	assert.Equal(t, "format\tbold\tvalid\nformat\tcode\tvalid\nfalse\n", out.String())
	assert.Equal(t, 1, s.Editor.History().UndoCount())

	// Listeners outlive the run until Close.
	require.NoError(t, s.Editor.InsertText("x"))
	assert.Contains(t, out.String(), "insert")

	require.NoError(t, r.Close())
	assert.Equal(t, 0, s.Editor.Hooks().BeforeCommand.Len())
	assert.ErrorIs(t, r.Run(context.Background(), "closed", ""), ErrClosed)
}

func TestRunnerOnHistory(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, WithOutput(&out))

	err := r.Run(context.Background(), "history", `
		ink.on_history(function(ev)
			print(ev.action, ev.undo, ev.redo)
		end)
		ink.select("a:0")
		ink.insert("x")
		ink.undo()
	`)
	require.NoError(t, err)
	assert.Equal(t, "push\t1\t0\nundo\t0\t1\n", out.String())
}

func TestRunnerFailingListenerDoesNotCancel(t *testing.T) {
	r, s := newRunner(t)

	err := r.Run(context.Background(), "broken", `
		ink.on_command(function(ev) error("boom") end)
		ink.select("a:0")
		ink.insert("x")
	`)
	require.NoError(t, err)
	assert.Equal(t, "xHello World", fragmentText(t, s, "a"))
}

func TestRunnerRunFile(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, WithOutput(&out))

	path := filepath.Join(t.TempDir(), "dump.lua")
	require.NoError(t, os.WriteFile(path, []byte(`print(ink.dump())`), 0o644))
	require.NoError(t, r.RunFile(context.Background(), path))
	assert.Contains(t, out.String(), `"Hello World"`)

	err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorContains(t, err, "reading script")
}
