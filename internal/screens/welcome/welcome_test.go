package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/viva/internal/router"
	"github.com/abhisek/viva/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "assess" }
func (s *stubScreen) Title() string                           { return "Assessment" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New("anthropic", "claude-sonnet-4-5", factory), &callCount
}

func TestEnterEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter keypress")
	}

	msg := cmd()
	replaceMsg, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("second enter should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestOtherKeysDoNotTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("non-enter keypress should not produce a command")
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called, got %d", *callCount)
	}
}

func TestQuitKey(t *testing.T) {
	w, callCount := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command from q keypress")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); ok {
		t.Error("q should quit, not transition")
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called on quit, got %d", *callCount)
	}
}

func TestViewShowsBackend(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(80, 24)
	if !strings.Contains(view, "anthropic") {
		t.Error("view should show the provider name")
	}
	if !strings.Contains(view, "claude-sonnet-4-5") {
		t.Error("view should show the model name")
	}
	if !strings.Contains(view, "Assessment") {
		t.Error("view should show the tagline")
	}
}

func TestBannerCompactFallback(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, "V I V A") {
		t.Errorf("expected compact banner below threshold, got %q", got)
	}
	if got := RenderBanner(80); !strings.Contains(got, "██") {
		t.Error("expected full banner art at standard width")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
