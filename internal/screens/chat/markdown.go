package chat

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/abhisek/lingo/internal/profile"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// markdown renders tutor replies. Renderers are rebuilt when the width or
// theme changes, and finished replies are cached by text.
type markdown struct {
	width int
	style string
	r     *glamour.TermRenderer
	cache map[string]string
}

func (m *markdown) render(text string, width int) string {
	style := "dark"
	if theme.Current() == profile.Light {
		style = "light"
	}
	if m.r == nil || m.width != width || m.style != style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return plain(text, width)
		}
		m.r, m.width, m.style = r, width, style
		m.cache = make(map[string]string)
	}
	if out, ok := m.cache[text]; ok {
		return out
	}

	out, err := m.r.Render(text)
	if err != nil {
		return plain(text, width)
	}
	out = strings.Trim(out, "\n")
	m.cache[text] = out
	return out
}

// plain wraps text without markdown, used while a reply is still streaming.
func plain(text string, width int) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(text)
}
