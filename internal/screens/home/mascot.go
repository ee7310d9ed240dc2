package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Default
	MascotThinking                      // Content is loading
	MascotAlert                         // Something failed
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │ Hi!
│  ◡  │
│ abc │
└─────┘`

const mascotThinking = `┌─────┐
│ ◔ ◔ │ …
│  ─  │
│ abc │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ abc │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotThinking:
		art = mascotThinking
		fg = theme.Secondary
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
