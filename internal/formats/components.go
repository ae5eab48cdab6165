package formats

import (
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/vdom"
	"github.com/dshills/inkwell/internal/port"
)

// Stock component tags.
const (
	Image   = "image"
	Divider = "divider"
	Box     = "box"
	Row     = "row"
	Marker  = "marker"
)

// Components returns the stock component renderers by tag. Markers render
// nothing; they exist for matching only.
func Components() map[string]vdom.ComponentRenderFunc {
	return map[string]vdom.ComponentRenderFunc{
		Image: func(c *doc.Component) *port.Element {
			return &port.Element{Tag: "img", Attrs: c.Attrs()}
		},
		Divider: func(*doc.Component) *port.Element {
			return &port.Element{Tag: "hr"}
		},
		Box: func(c *doc.Component) *port.Element {
			return &port.Element{Tag: "div", Attrs: c.Attrs()}
		},
		Row: func(c *doc.Component) *port.Element {
			return &port.Element{Tag: "section", Attrs: c.Attrs()}
		},
		Marker: func(*doc.Component) *port.Element {
			return nil
		},
	}
}

// NewBuilder returns a render tree builder for reg with the stock component
// renderers registered.
func NewBuilder(reg *format.Registry) *vdom.Builder {
	b := vdom.NewBuilder(reg)
	for tag, fn := range Components() {
		b.RegisterComponent(tag, fn)
	}
	return b
}
