package engine

import (
	"fmt"
	"testing"

	"github.com/dshills/inkwell/internal/engine/doc"
	"github.com/dshills/inkwell/internal/engine/format"
	"github.com/dshills/inkwell/internal/engine/view"
	"github.com/dshills/inkwell/internal/formats"
	"github.com/dshills/inkwell/internal/memhost"
)

// benchEditor renders n boxed paragraphs with alternating bold words.
func benchEditor(b *testing.B, n int) (*Editor, []*doc.Fragment) {
	b.Helper()
	reg, err := formats.NewRegistry()
	if err != nil {
		b.Fatal(err)
	}

	root := doc.NewFragment()
	frags := make([]*doc.Fragment, n)
	for i := range frags {
		f := doc.NewTextFragment(fmt.Sprintf("paragraph %d with some text to format", i))
		f.Merge(reg, format.Range{Key: formats.Paragraph, End: f.Len()}, false)
		f.Merge(reg, format.Range{Key: formats.Bold, Start: 0, End: 9}, false)
		root.AppendComponent(doc.NewDivision(formats.Box, f))
		frags[i] = f
	}

	h := memhost.New(memhost.WithWidth(60))
	e := New(doc.New(root), view.New(h, formats.NewBuilder(reg), h.Root()))
	if _, err := e.Render(); err != nil {
		b.Fatal(err)
	}
	return e, frags
}

func BenchmarkRenderUnchanged(b *testing.B) {
	e, _ := benchEditor(b, 200)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.Render(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApplyFormatAcrossDocument(b *testing.B) {
	e, frags := benchEditor(b, 100)
	first, last := frags[0], frags[len(frags)-1]
	if err := e.Select(doc.At(first, 3), doc.At(last, 5)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		state := format.Valid
		if i%2 == 1 {
			state = format.Invalid
		}
		if err := e.ApplyFormat(formats.Italic, state, nil, false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInsertText(b *testing.B) {
	e, frags := benchEditor(b, 50)
	if err := e.Select(doc.At(frags[25], 4), doc.At(frags[25], 4)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := e.InsertText("x"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMoveRight(b *testing.B) {
	e, frags := benchEditor(b, 50)
	if err := e.Select(doc.At(frags[0], 0), doc.At(frags[0], 0)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := e.MoveRight(false); err != nil {
			b.Fatal(err)
		}
	}
}
