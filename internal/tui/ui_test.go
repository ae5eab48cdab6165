package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
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

func newUI(t *testing.T) (*UI, tcell.SimulationScreen) {
	t.Helper()
	f, err := docfile.Parse([]byte(fixture))
	require.NoError(t, err)
	s, err := f.Open(docfile.OpenOptions{Width: 20})
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 4)
	return New(screen, s), screen
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func cellStyle(screen tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := screen.GetContents()
	return cells[y*w+x].Style
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func shift(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModShift)
}

func typeRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestUIDraw(t *testing.T) {
	u, screen := newUI(t)
	u.Draw()

	assert.Equal(t, "Hello World", row(screen, 0))
	assert.Equal(t, "Mid", row(screen, 1))
	assert.Contains(t, row(screen, 3), "a:0")
	assert.Contains(t, row(screen, 3), "undo:0 redo:0")

	x, y, visible := screen.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestUITyping(t *testing.T) {
	u, screen := newUI(t)

	assert.False(t, u.HandleEvent(key(tcell.KeyRight)))
	assert.False(t, u.HandleEvent(typeRune('X')))
	u.Draw()

	assert.Equal(t, "HXello World", row(screen, 0))
	p, ok := u.Position()
	require.True(t, ok)
	assert.Equal(t, 2, p.Index)
	x, _, _ := screen.GetCursor()
	assert.Equal(t, 2, x)

	u.HandleEvent(key(tcell.KeyBackspace2))
	u.Draw()
	assert.Equal(t, "Hello World", row(screen, 0))

	u.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	u.Draw()
	assert.Equal(t, "HXello World", row(screen, 0))
	assert.Contains(t, row(screen, 3), "redo:1")
}

func TestUIBoldSelection(t *testing.T) {
	u, screen := newUI(t)

	for range 5 {
		u.HandleEvent(shift(tcell.KeyRight))
	}
	u.Draw()
	assert.Contains(t, row(screen, 3), "a:0..a:5")
	assert.Equal(t, tcell.StyleDefault.Reverse(true), cellStyle(screen, 0, 0))
	assert.Equal(t, tcell.StyleDefault, cellStyle(screen, 5, 0))

	u.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl))
	u.Draw()
	assert.Contains(t, row(screen, 3), "[B]")
	assert.Contains(t, row(screen, 3), "undo:1")

	u.HandleEvent(key(tcell.KeyRight))
	u.Draw()
	assert.Equal(t, tcell.StyleDefault.Bold(true), cellStyle(screen, 0, 0))
	assert.Equal(t, tcell.StyleDefault, cellStyle(screen, 6, 0))
}

func TestUIClick(t *testing.T) {
	u, screen := newUI(t)

	u.HandleEvent(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone))
	u.Draw()
	assert.Contains(t, row(screen, 3), "b:2")

	// Past the end of the row lands after the last glyph.
	u.HandleEvent(tcell.NewEventMouse(15, 1, tcell.Button1, tcell.ModNone))
	u.Draw()
	assert.Contains(t, row(screen, 3), "b:3")
	x, y, _ := screen.GetCursor()
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)
}

func TestUIErrorsShowInStatus(t *testing.T) {
	u, screen := newUI(t)

	u.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	u.Draw()
	assert.Contains(t, row(screen, 3), "nothing to redo")
	assert.Equal(t, DefaultTheme().Error, cellStyle(screen, 0, 3))

	u.HandleEvent(key(tcell.KeyLeft))
	u.Draw()
	assert.NotContains(t, row(screen, 3), "nothing to redo")
	assert.Equal(t, DefaultTheme().Status, cellStyle(screen, 0, 3))
}

func TestUIQuit(t *testing.T) {
	u, _ := newUI(t)
	assert.True(t, u.HandleEvent(key(tcell.KeyEscape)))
	assert.True(t, u.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)))
}

func TestUIRun(t *testing.T) {
	u, screen := newUI(t)

	done := make(chan error, 1)
	go func() { done <- u.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'Z', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	u.Draw()
	assert.Equal(t, "ZHello World", row(screen, 0))
}

func TestUIRunStopsOnCancel(t *testing.T) {
	u, _ := newUI(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- u.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestKeymapLookup(t *testing.T) {
	km := DefaultKeymap()
	assert.Equal(t, ActionInsert, km.Lookup(typeRune('a')))
	assert.Equal(t, ActionInsert, km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift)))
	assert.Equal(t, ActionNone, km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt)))
	assert.Equal(t, ActionBold, km.Lookup(tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl)))
	assert.Equal(t, ActionExtendLeft, km.Lookup(shift(tcell.KeyLeft)))
	assert.Equal(t, ActionDelete, km.Lookup(key(tcell.KeyBackspace)))

	km.Bind(tcell.KeyF2, tcell.ModNone, ActionQuit)
	assert.Equal(t, ActionQuit, km.Lookup(key(tcell.KeyF2)))
	assert.Equal(t, "extend-left", ActionExtendLeft.String())
}
