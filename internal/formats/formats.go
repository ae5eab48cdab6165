package formats

import (
	"slices"
	"strconv"

	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/vdom"
	"github.com/dshills/inkwell/internal/port"
)

// Stock formatter keys.
const (
	Paragraph format.Key = "paragraph"
	Heading   format.Key = "heading"
	Align     format.Key = "align"
	Link      format.Key = "link"
	Bold      format.Key = "bold"
	Italic    format.Key = "italic"
	Code      format.Key = "code"
	Color     format.Key = "color"
)

// Formatter is a formatter that renders and matches host markup.
type Formatter interface {
	vdom.Renderer
	vdom.Matcher
}

// Block is a structural formatter rendering to one element.
type Block struct {
	FormatKey format.Key
	Order     int
	Tag       string
}

func (b Block) Key() format.Key     { return b.FormatKey }
func (b Block) Class() format.Class { return format.Structural }
func (b Block) Priority() int       { return b.Order }

// Render replaces any previous structural element.
func (b Block) Render(state format.State, _ format.Data, _ *port.Element) vdom.Output {
	if state != format.Valid {
		return vdom.Output{Kind: vdom.NoNode}
	}
	return vdom.Output{Kind: vdom.ReplaceNode, Element: port.Element{Tag: b.Tag}}
}

// Match matches elements with the block's tag.
func (b Block) Match(info port.NodeInfo) (format.State, format.Data) {
	if !info.Text && info.Tag == b.Tag {
		return format.Valid, nil
	}
	return format.Invalid, nil
}

// HeadingBlock renders headings of the level given in the range data.
type HeadingBlock struct{}

func (HeadingBlock) Key() format.Key     { return Heading }
func (HeadingBlock) Class() format.Class { return format.Structural }
func (HeadingBlock) Priority() int       { return 10 }

// Render replaces the previous structural element with <hN>.
func (HeadingBlock) Render(state format.State, data format.Data, _ *port.Element) vdom.Output {
	if state != format.Valid {
		return vdom.Output{Kind: vdom.NoNode}
	}
	level, err := strconv.Atoi(data["level"])
	if err != nil || level < 1 || level > 6 {
		level = 1
	}
	return vdom.Output{Kind: vdom.ReplaceNode, Element: port.Element{Tag: "h" + strconv.Itoa(level)}}
}

// Match matches <h1> through <h6>.
func (HeadingBlock) Match(info port.NodeInfo) (format.State, format.Data) {
	if info.Text || len(info.Tag) != 2 || info.Tag[0] != 'h' || info.Tag[1] < '1' || info.Tag[1] > '6' {
		return format.Invalid, nil
	}
	return format.Valid, format.Data{"level": info.Tag[1:]}
}

// Inline is an inline wrapper rendering to one nested element.
type Inline struct {
	FormatKey format.Key
	Order     int
	Tag       string
	// Aliases are further tags Match accepts.
	Aliases []string
	// Attrs names element attributes carried in the range data.
	Attrs []string
}

func (w Inline) Key() format.Key     { return w.FormatKey }
func (w Inline) Class() format.Class { return format.InlineWrapper }
func (w Inline) Priority() int       { return w.Order }

// Render nests a new element. Inherit renders nothing.
func (w Inline) Render(state format.State, data format.Data, _ *port.Element) vdom.Output {
	if state != format.Valid {
		return vdom.Output{Kind: vdom.NoNode}
	}
	el := port.Element{Tag: w.Tag}
	for _, a := range w.Attrs {
		if v, ok := data[a]; ok {
			if el.Attrs == nil {
				el.Attrs = make(map[string]string)
			}
			el.Attrs[a] = v
		}
	}
	return vdom.Output{Kind: vdom.ChildSlotNode, Element: el}
}

// Match matches the wrapper's tag and aliases.
func (w Inline) Match(info port.NodeInfo) (format.State, format.Data) {
	if info.Text || (info.Tag != w.Tag && !slices.Contains(w.Aliases, info.Tag)) {
		return format.Invalid, nil
	}
	var data format.Data
	for _, a := range w.Attrs {
		if v, ok := info.Attrs[a]; ok {
			if data == nil {
				data = make(format.Data)
			}
			data[a] = v
		}
	}
	return format.Valid, data
}

// Style sets one style property. As a BlockStyle it decorates the structural
// element; as an InlineProperty it decorates the innermost wrapper or opens a
// <span> when there is none.
type Style struct {
	FormatKey format.Key
	Cls       format.Class
	Order     int
	Property  string
}

func (s Style) Key() format.Key     { return s.FormatKey }
func (s Style) Class() format.Class { return s.Cls }
func (s Style) Priority() int       { return s.Order }

// Render writes the property from data[key].
func (s Style) Render(state format.State, data format.Data, prev *port.Element) vdom.Output {
	value := data[string(s.FormatKey)]
	if state != format.Valid || value == "" {
		return vdom.Output{Kind: vdom.NoNode}
	}
	if prev != nil {
		if prev.Styles == nil {
			prev.Styles = make(map[string]string)
		}
		prev.Styles[s.Property] = value
		return vdom.Output{Kind: vdom.NoNode}
	}
	if s.Cls != format.InlineProperty {
		return vdom.Output{Kind: vdom.NoNode}
	}
	return vdom.Output{
		Kind:    vdom.ChildSlotNode,
		Element: port.Element{Tag: "span", Styles: map[string]string{s.Property: value}},
	}
}

// Match matches any element carrying the property.
func (s Style) Match(info port.NodeInfo) (format.State, format.Data) {
	if info.Text {
		return format.Invalid, nil
	}
	if v := info.Styles[s.Property]; v != "" {
		return format.Valid, format.Data{string(s.FormatKey): v}
	}
	return format.Invalid, nil
}

// All returns the stock formatters.
func All() []Formatter {
	return []Formatter{
		Block{FormatKey: Paragraph, Tag: "p"},
		HeadingBlock{},
		Style{FormatKey: Align, Cls: format.BlockStyle, Property: "text-align"},
		Inline{FormatKey: Link, Tag: "a", Attrs: []string{"href"}},
		Inline{FormatKey: Bold, Order: 10, Tag: "strong", Aliases: []string{"b"}},
		Inline{FormatKey: Italic, Order: 20, Tag: "em", Aliases: []string{"i"}},
		Inline{FormatKey: Code, Order: 30, Tag: "code"},
		Style{FormatKey: Color, Cls: format.InlineProperty, Property: "color"},
	}
}

// NewRegistry returns a registry holding the stock formatters followed by
// extra.
func NewRegistry(extra ...format.Formatter) (*format.Registry, error) {
	var all []format.Formatter
	for _, f := range All() {
		all = append(all, f)
	}
	return format.NewRegistry(append(all, extra...)...)
}
