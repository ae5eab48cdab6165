package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkwell/internal/docfile"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/formats"
	"github.com/dshills/inkwell/internal/logging"
	"github.com/dshills/inkwell/internal/memhost"
	"github.com/dshills/inkwell/internal/port"
)

// UI is an interactive terminal editor over a document session.
type UI struct {
	screen  tcell.Screen
	session *docfile.Session
	keymap  *Keymap
	theme   Theme
	log     *logging.Logger

	// top is the first document row shown.
	top     int
	message string
	failed  bool
}

// Option configures a UI.
type Option func(*UI)

// WithKeymap replaces the default keymap.
func WithKeymap(km *Keymap) Option {
	return func(u *UI) { u.keymap = km }
}

// WithTheme replaces the default theme.
func WithTheme(t Theme) Option {
	return func(u *UI) { u.theme = t }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(u *UI) { u.log = l }
}

// New creates a UI drawing on an initialized screen.
func New(screen tcell.Screen, s *docfile.Session, opts ...Option) *UI {
	u := &UI{
		screen:  screen,
		session: s,
		keymap:  DefaultKeymap(),
		theme:   DefaultTheme(),
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.log = u.log.WithComponent("tui")
	if s.Editor.Selection().IsEmpty() {
		u.placeCaretAtStart()
	}
	return u
}

// Run draws the document and handles events until the user quits or ctx
// is done.
func (u *UI) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	u.Draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return nil
		}
		if u.HandleEvent(ev) {
			return nil
		}
		u.Draw()
	}
}

// HandleEvent applies one event and reports whether the UI should quit.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := u.keymap.Lookup(ev)
		if a == ActionQuit {
			return true
		}
		u.report(a, u.perform(a, ev.Rune()))
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			u.report(ActionNone, u.click(x, y+u.top))
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return false
}

func (u *UI) perform(a Action, r rune) error {
	e := u.session.Editor
	switch a {
	case ActionLeft:
		return e.MoveLeft(false)
	case ActionRight:
		return e.MoveRight(false)
	case ActionUp:
		return e.MoveUp(false)
	case ActionDown:
		return e.MoveDown(false)
	case ActionExtendLeft:
		return e.MoveLeft(true)
	case ActionExtendRight:
		return e.MoveRight(true)
	case ActionExtendUp:
		return e.MoveUp(true)
	case ActionExtendDown:
		return e.MoveDown(true)
	case ActionDelete:
		return e.DeleteSelection()
	case ActionNewline:
		return e.InsertText("\n")
	case ActionInsert:
		return e.InsertText(string(r))
	case ActionBold:
		return engine.FormatCommand{Key: formats.Bold, Toggle: true}.Apply(e, false, nil)
	case ActionItalic:
		return engine.FormatCommand{Key: formats.Italic, Toggle: true}.Apply(e, false, nil)
	case ActionCode:
		return engine.FormatCommand{Key: formats.Code, Toggle: true}.Apply(e, false, nil)
	case ActionUndo:
		return e.Undo()
	case ActionRedo:
		return e.Redo()
	}
	return nil
}

func (u *UI) report(a Action, err error) {
	u.failed = err != nil
	switch {
	case err == nil:
		u.message = ""
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		u.message = err.Error()
	default:
		u.message = fmt.Sprintf("%s: %v", a, err)
		u.log.Warn("action failed", "action", a, "err", err)
	}
	if u.failed {
		_ = u.screen.Beep()
	}
}

// placeCaretAtStart puts a caret before the first visible glyph.
func (u *UI) placeCaretAtStart() {
	gs := u.session.Host.Glyphs()
	if len(gs) == 0 {
		return
	}
	u.report(ActionNone, u.caretAt(gs[0], false))
}

// click moves the caret to the glyph at document cell (x, y), or after the
// last glyph left of x on that row.
func (u *UI) click(x, y int) error {
	var hit *memhost.Glyph
	gs := u.session.Host.Glyphs()
	for i := range gs {
		g := &gs[i]
		if g.Y == y && g.X <= x {
			hit = g
		}
	}
	if hit == nil {
		return nil
	}
	return u.caretAt(*hit, x > hit.X)
}

// caretAt collapses the selection before g, or after it when after is set.
func (u *UI) caretAt(g memhost.Glyph, after bool) error {
	v := u.session.Editor.View()
	a := port.Anchor{Node: g.Node, Offset: g.Offset}
	if after && g.Rune != memhost.ObjectRune {
		a.Offset++
	}
	p, err := v.Position(a)
	if err != nil {
		return err
	}
	if after && g.Rune == memhost.ObjectRune {
		if n, ok := v.Node(g.Node); ok {
			p.Index = n.End
		}
	}
	return u.session.Editor.Select(p, p)
}

// Draw paints the document and status line.
func (u *UI) Draw() {
	u.screen.Clear()
	width, height := u.screen.Size()
	rows := height - 1
	if rows < 1 {
		u.screen.Show()
		return
	}

	h := u.session.Host
	caretX, caretY, caret := u.caret()
	if caret {
		if caretY < u.top {
			u.top = caretY
		}
		if caretY >= u.top+rows {
			u.top = caretY - rows + 1
		}
	}

	spans := u.selectedSpans()
	for _, g := range h.Glyphs() {
		y := g.Y - u.top
		if y < 0 || y >= rows || g.X >= width {
			continue
		}
		style := styleFor(h, g.Node, u.theme.Text)
		r := g.Rune
		if r == memhost.ObjectRune {
			style = styleFor(h, g.Node, u.theme.Object)
			r = '□'
		}
		if inSpans(spans, g.X, g.Y) {
			style = style.Reverse(true)
		}
		u.screen.SetContent(g.X, y, r, nil, style)
	}

	u.drawStatus(width, height-1)

	if caret && caretY-u.top < rows && caretX < width {
		u.screen.ShowCursor(caretX, caretY-u.top)
	} else {
		u.screen.HideCursor()
	}
	u.screen.Show()
}

// caret returns the grid position of the primary focus.
func (u *UI) caret() (x, y int, ok bool) {
	r := u.session.Editor.Selection().Primary()
	if r == nil {
		return 0, 0, false
	}
	rect, ok := u.session.Editor.View().CaretRect(r.Focus())
	if !ok {
		return 0, 0, false
	}
	return rect.Left, rect.Top, true
}

type span struct {
	x0, y0, x1, y1 int
}

func (u *UI) selectedSpans() []span {
	v := u.session.Editor.View()
	var out []span
	for _, r := range u.session.Editor.Selection().Ranges() {
		if r.Collapsed() {
			continue
		}
		s, ok1 := v.CaretRect(r.Start())
		e, ok2 := v.CaretRect(r.End())
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, span{s.Left, s.Top, e.Left, e.Top})
	}
	return out
}

func inSpans(spans []span, x, y int) bool {
	for _, s := range spans {
		after := y > s.y0 || (y == s.y0 && x >= s.x0)
		before := y < s.y1 || (y == s.y1 && x < s.x1)
		if after && before {
			return true
		}
	}
	return false
}

func (u *UI) drawStatus(width, y int) {
	style := u.theme.Status
	text := u.status()
	if u.failed {
		style = u.theme.Error
	}
	x := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x+w > width {
			break
		}
		u.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, y, ' ', nil, style)
	}
}

// status describes the selection, active formats and history depth.
func (u *UI) status() string {
	e := u.session.Editor
	var parts []string

	if r := e.Selection().Primary(); r != nil {
		if r.Collapsed() {
			parts = append(parts, u.session.Name(r.Focus()))
		} else {
			parts = append(parts, u.session.Name(r.Anchor())+".."+u.session.Name(r.Focus()))
		}
		var active []string
		for _, f := range []struct {
			key   format.Key
			label string
		}{{formats.Bold, "B"}, {formats.Italic, "I"}, {formats.Code, "C"}} {
			if state, _, err := e.QueryFormat(f.key); err == nil && state == format.Valid {
				active = append(active, f.label)
			}
		}
		if len(active) > 0 {
			parts = append(parts, "["+strings.Join(active, "")+"]")
		}
	}
	parts = append(parts, fmt.Sprintf("undo:%d redo:%d", e.History().UndoCount(), e.History().RedoCount()))
	if u.message != "" {
		parts = append(parts, u.message)
	}
	return " " + strings.Join(parts, "  ")
}

// Position returns the model position of the primary caret, for tests.
func (u *UI) Position() (doc.Position, bool) {
	r := u.session.Editor.Selection().Primary()
	if r == nil {
		return doc.Position{}, false
	}
	return r.Focus(), true
}
