package view

import (
	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/vdom"
	"github.com/dshills/inkwell/internal/port"
)

// Parse reads the host subtree at h into a new fragment. Every element is
// offered to each Matcher in reg; matches become format ranges over the
// element's content, outer elements applied before inner ones. Childless
// elements no formatter claims become leaf components. Elements that match
// nothing and have children are transparent.
func Parse(insp port.Inspector, h port.Handle, reg *format.Registry) *doc.Fragment {
	p := &parser{insp: insp, reg: reg, frag: doc.NewFragment()}
	p.visit(h)
	for _, r := range p.ranges {
		if reg.Class(r.Key).IsBlock() {
			r.Start, r.End = 0, p.frag.Len()
		} else if r.Collapsed() {
			continue
		}
		p.frag.Merge(reg, r, false)
	}
	return p.frag
}

type parser struct {
	insp   port.Inspector
	reg    *format.Registry
	frag   *doc.Fragment
	ranges []format.Range
}

func (p *parser) visit(h port.Handle) {
	info, ok := p.insp.Info(h)
	if !ok {
		return
	}
	if info.Text {
		p.frag.AppendText(info.Value)
		return
	}

	matched := p.match(info)
	kids := p.insp.Children(h)
	if len(matched) == 0 && len(kids) == 0 {
		p.frag.AppendComponent(doc.NewLeaf(info.Tag, info.Attrs))
		return
	}

	start := p.frag.Len()
	first := len(p.ranges)
	p.ranges = append(p.ranges, matched...)
	for _, c := range kids {
		p.visit(c)
	}
	for i := first; i < first+len(matched); i++ {
		p.ranges[i].Start, p.ranges[i].End = start, p.frag.Len()
	}
}

func (p *parser) match(info port.NodeInfo) []format.Range {
	var out []format.Range
	for _, f := range p.reg.Formatters() {
		m, ok := f.(vdom.Matcher)
		if !ok {
			continue
		}
		state, data := m.Match(info)
		if state == format.Invalid {
			continue
		}
		out = append(out, format.Range{Key: f.Key(), State: state, Data: data})
	}
	return out
}
