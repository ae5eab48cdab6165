package docfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
)

// Errors returned while building a document.
var (
	ErrDuplicateName = errors.New("duplicate fragment name")
	ErrUnknownName   = errors.New("unknown fragment name")
	ErrBadPosition   = errors.New("malformed position")
	ErrBadKind       = errors.New("unknown component kind")
	ErrBadState      = errors.New("unknown format state")
)

// Built is a document built from a fixture.
type Built struct {
	Doc   *doc.Document
	Names map[string]doc.FragmentID
}

// Build creates the document described by f.
func (f *File) Build(reg *format.Registry) (*Built, error) {
	b := &Built{Names: make(map[string]doc.FragmentID)}
	root, err := b.fragment(reg, f.Root)
	if err != nil {
		return nil, err
	}
	b.Doc = doc.New(root)
	return b, nil
}

func (b *Built) fragment(reg *format.Registry, def Fragment) (*doc.Fragment, error) {
	f := doc.NewFragment()
	if def.Name != "" {
		if _, dup := b.Names[def.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, def.Name)
		}
		b.Names[def.Name] = f.ID()
	}

	if len(def.Content) == 0 {
		f.AppendText(def.Text)
	}
	for _, item := range def.Content {
		if item.Component == nil {
			f.AppendText(item.Text)
			continue
		}
		c, err := b.component(reg, *item.Component)
		if err != nil {
			return nil, err
		}
		f.AppendComponent(c)
	}

	for _, fs := range def.Formats {
		state, ok := format.ParseState(fs.State)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadState, fs.State)
		}
		r := format.Range{Key: format.Key(fs.Key), Start: fs.Start, End: f.Len(), State: state}
		if fs.End != nil {
			r.End = *fs.End
		}
		if len(fs.Data) > 0 {
			r.Data = format.Data(fs.Data)
		}
		f.Merge(reg, r, fs.Important)
	}
	return f, nil
}

func (b *Built) component(reg *format.Registry, def Component) (*doc.Component, error) {
	slots := make([]*doc.Fragment, 0, len(def.Slots))
	for _, s := range def.Slots {
		f, err := b.fragment(reg, s)
		if err != nil {
			return nil, err
		}
		slots = append(slots, f)
	}

	kind := def.Kind
	if kind == "" {
		kind = "leaf"
		if len(slots) == 1 {
			kind = "division"
		}
	}

	var c *doc.Component
	switch kind {
	case "leaf":
		if def.Void {
			c = doc.NewVoid(def.Tag)
		} else {
			c = doc.NewLeaf(def.Tag, def.Attrs)
		}
	case "division":
		if len(slots) > 1 {
			return nil, fmt.Errorf("%w: division %s with %d slots", ErrBadKind, def.Tag, len(slots))
		}
		var slot *doc.Fragment
		if len(slots) == 1 {
			slot = slots[0]
		}
		c = doc.NewDivision(def.Tag, slot)
	case "branch":
		c = doc.NewBranch(def.Tag, slots...)
	case "backbone":
		c = doc.NewBackbone(def.Tag, slots...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadKind, kind)
	}
	for k, v := range def.Attrs {
		c.SetAttr(k, v)
	}
	return c, nil
}

// Position parses "name:index".
func (b *Built) Position(s string) (doc.Position, error) {
	name, idx, ok := strings.Cut(s, ":")
	if !ok {
		return doc.Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	i, err := strconv.Atoi(idx)
	if err != nil {
		return doc.Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	id, ok := b.Names[name]
	if !ok {
		return doc.Position{}, fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	return doc.Position{Fragment: id, Index: i}, nil
}

// Name formats p as "name:index" when its fragment is named.
func (b *Built) Name(p doc.Position) string {
	for name, id := range b.Names {
		if id == p.Fragment {
			return name + ":" + strconv.Itoa(p.Index)
		}
	}
	return p.String()
}
