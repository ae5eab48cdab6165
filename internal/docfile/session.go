package docfile

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/view"
	"github.com/dshills/inkwell/internal/formats"
	"github.com/dshills/inkwell/internal/memhost"
)

// Session is a fixture rendered into an in-memory host.
type Session struct {
	*Built
	File   *File
	Host   *memhost.Host
	Editor *engine.Editor
}

// OpenOptions configures Open.
type OpenOptions struct {
	// Width overrides the fixture width when positive.
	Width    int
	TabWidth int
	Engine   []engine.Option
}

// Open builds f with the standard formatters, renders it into a fresh
// memhost and returns the editor driving it.
func (f *File) Open(o OpenOptions) (*Session, error) {
	reg, err := formats.NewRegistry()
	if err != nil {
		return nil, err
	}
	b, err := f.Build(reg)
	if err != nil {
		return nil, err
	}

	width := o.Width
	if width <= 0 {
		width = f.Width
	}
	var hostOpts []memhost.Option
	if width > 0 {
		hostOpts = append(hostOpts, memhost.WithWidth(width))
	}
	if o.TabWidth > 0 {
		hostOpts = append(hostOpts, memhost.WithTabWidth(o.TabWidth))
	}
	h := memhost.New(hostOpts...)
	v := view.New(h, formats.NewBuilder(reg), h.Root())
	e := engine.New(b.Doc, v, o.Engine...)
	if _, err := e.Render(); err != nil {
		return nil, fmt.Errorf("initial render: %w", err)
	}
	return &Session{Built: b, File: f, Host: h, Editor: e}, nil
}

// Step applies s to the session editor.
func (s *Session) Step(step Step) error {
	return s.Apply(s.Editor, step)
}
