// Package speech reads text aloud through whatever synthesizer the host
// provides. It is optional: callers check Supported before offering it.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnsupported is returned by Speak when no synthesizer is available.
var ErrUnsupported = errors.New("speech: no synthesizer available")

// Synthesizer speaks text in a language.
type Synthesizer interface {
	Supported() bool
	Speak(ctx context.Context, text, lang string) error
}

// Unsupported is the synthesizer used when the host has none.
type Unsupported struct{}

func (Unsupported) Supported() bool { return false }

func (Unsupported) Speak(context.Context, string, string) error { return ErrUnsupported }

// Command speaks by running an external program.
type Command struct {
	Path string
	args func(text, lang string) []string
}

func (c *Command) Supported() bool { return true }

// Speak blocks until the program exits or ctx is done.
func (c *Command) Speak(ctx context.Context, text, lang string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, c.Path, c.args(text, lang)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speech: %s: %w: %s", c.Path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type candidate struct {
	name string
	args func(text, lang string) []string
}

// candidates are probed in order. say is macOS; espeak-ng and espeak are
// the common Linux engines.
var candidates = []candidate{
	{name: "say", args: func(text, _ string) []string { return []string{text} }},
	{name: "espeak-ng", args: espeakArgs},
	{name: "espeak", args: espeakArgs},
}

func espeakArgs(text, lang string) []string {
	if lang == "" {
		lang = "en"
	}
	return []string{"-v", lang, text}
}

var lookPath = exec.LookPath

// System returns the first synthesizer found on PATH, or Unsupported.
func System() Synthesizer {
	for _, c := range candidates {
		if path, err := lookPath(c.name); err == nil {
			return &Command{Path: path, args: c.args}
		}
	}
	return Unsupported{}
}
