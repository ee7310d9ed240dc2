// Package profile holds the learner's persisted identity: name, UI
// language, theme and English level.
package profile

import (
	"fmt"
	"strings"
)

// Level is an English proficiency band assigned by the placement test.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Levels lists every valid level in ascending order.
var Levels = []Level{Beginner, Intermediate, Advanced}

// ParseLevel accepts a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Valid reports whether l is one of the three levels.
func (l Level) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Theme selects the terminal colour palette.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == Dark || t == Light
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Profile is what the app knows about the learner. An empty EnglishLevel
// means the placement test has not been passed yet.
type Profile struct {
	UserName     string
	UILanguage   string
	Theme        Theme
	EnglishLevel Level
}

// HasLevel reports whether a placement result is on record.
func (p Profile) HasLevel() bool {
	return p.EnglishLevel.Valid()
}
