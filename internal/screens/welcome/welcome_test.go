package welcome

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
)

func TestWelcome_ShowsBannerWhileLoading(t *testing.T) {
	w := New()
	view := w.View(80, 24)
	if !strings.Contains(view, "██╗") {
		t.Error("expected banner art at 80 columns")
	}
	if !strings.Contains(view, "Loading") {
		t.Error("expected loading indicator")
	}
}

func TestWelcome_CompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "L I N G O") {
		t.Error("expected compact banner below 44 columns")
	}
}

func TestWelcome_StartError(t *testing.T) {
	w := New()
	w.Update(screen.DoneMsg{Action: "other", Err: errors.New("ignored")})
	if w.err != nil {
		t.Fatal("errors from other actions must be ignored")
	}

	w.Update(screen.DoneMsg{Action: StartAction, Err: errors.New("schema version 9")})
	view := w.View(80, 24)
	if !strings.Contains(view, "schema version 9") {
		t.Errorf("expected start error in view, got %q", view)
	}
	if strings.Contains(view, "Loading") {
		t.Error("loading indicator should be gone after a failure")
	}
}

func TestWelcome_SpinnerTicks(t *testing.T) {
	w := New()
	before := w.View(80, 24)
	w.Update(components.SpinnerTickMsg{})
	if w.View(80, 24) == before {
		t.Error("expected the spinner frame to change")
	}
}
