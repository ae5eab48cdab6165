package vdom

import (
	"maps"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/port"
)

// OutputKind tells the builder what a formatter produced.
type OutputKind int

const (
	// NoNode adds no element. The formatter may have decorated the previous
	// element in place.
	NoNode OutputKind = iota
	// ReplaceNode discards the previous element and substitutes Element.
	ReplaceNode
	// ChildSlotNode nests Element inside the previous element; children go
	// into Element.
	ChildSlotNode
)

// Output is the result of rendering one format range.
type Output struct {
	Kind    OutputKind
	Element port.Element
}

// Renderer is a formatter that can render its ranges.
type Renderer interface {
	format.Formatter

	// Render produces the element for a range. prev is the innermost element
	// produced so far for the same container, or nil.
	Render(state format.State, data format.Data, prev *port.Element) Output
}

// Matcher is a formatter that recognises its own host elements.
type Matcher interface {
	format.Formatter

	// Match inspects a host element and reports the state it encodes.
	// Invalid means no match.
	Match(info port.NodeInfo) (format.State, format.Data)
}

// ComponentRenderFunc renders a component to a host element. Returning nil
// renders nothing; slots are then placed directly in the surrounding element.
type ComponentRenderFunc func(c *doc.Component) *port.Element

// DefaultComponentRender renders a component as an element named by its tag.
func DefaultComponentRender(c *doc.Component) *port.Element {
	return &port.Element{Tag: c.Tag(), Attrs: c.Attrs()}
}

// elements renders formats into a host element chain, outermost first. It
// stops at the first Exclude range.
func elements(reg *format.Registry, formats []format.Range) []port.Element {
	var chain []port.Element
	for _, r := range formats {
		if excluded(r) {
			break
		}
		f, ok := reg.Lookup(r.Key)
		if !ok {
			continue
		}
		rn, ok := f.(Renderer)
		if !ok {
			continue
		}
		var prev *port.Element
		if n := len(chain); n > 0 {
			prev = &chain[n-1]
		}
		out := rn.Render(r.State, r.Data, prev)
		switch out.Kind {
		case ReplaceNode:
			if prev != nil {
				chain[len(chain)-1] = cloneElement(out.Element)
			} else {
				chain = append(chain, cloneElement(out.Element))
			}
		case ChildSlotNode:
			chain = append(chain, cloneElement(out.Element))
		case NoNode:
		}
	}
	return chain
}

func cloneElement(e port.Element) port.Element {
	return port.Element{Tag: e.Tag, Attrs: maps.Clone(e.Attrs), Styles: maps.Clone(e.Styles)}
}
