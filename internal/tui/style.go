package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/memhost"
	"github.com/dshills/inkwell/internal/port"
)

// Theme holds the styles used to paint the document.
type Theme struct {
	Text   tcell.Style
	Object tcell.Style
	Status tcell.Style
	Error  tcell.Style
}

// DefaultTheme returns the standard theme.
func DefaultTheme() Theme {
	return Theme{
		Text:   tcell.StyleDefault,
		Object: tcell.StyleDefault.Dim(true),
		Status: tcell.StyleDefault.Reverse(true),
		Error:  tcell.StyleDefault.Reverse(true).Bold(true),
	}
}

// styleFor derives the style of node from its element ancestors.
func styleFor(h *memhost.Host, node port.Handle, base tcell.Style) tcell.Style {
	s := base
	for n := h.Parent(node); n != port.None; n = h.Parent(n) {
		info, ok := h.Info(n)
		if !ok {
			break
		}
		s = applyElement(s, info)
	}
	return s
}

func applyElement(s tcell.Style, info port.NodeInfo) tcell.Style {
	switch info.Tag {
	case "strong", "b", "h1", "h2", "h3", "h4", "h5", "h6":
		s = s.Bold(true)
	case "em", "i":
		s = s.Italic(true)
	case "a", "u":
		s = s.Underline(true)
	case "code":
		s = s.Dim(true)
	case "s", "del":
		s = s.StrikeThrough(true)
	}
	if c := info.Styles["color"]; c != "" {
		if color := tcell.GetColor(c); color != tcell.ColorDefault {
			s = s.Foreground(color)
		}
	}
	return s
}
