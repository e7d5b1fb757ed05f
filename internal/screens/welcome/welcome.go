package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/viva/internal/router"
	"github.com/abhisek/viva/internal/screen"
	"github.com/abhisek/viva/internal/ui/components"
	"github.com/abhisek/viva/internal/ui/layout"
	"github.com/abhisek/viva/internal/ui/theme"
)

// WelcomeScreen greets the examiner and hands off to a fresh assessment.
type WelcomeScreen struct {
	assessFactory func() screen.Screen
	provider      string
	model         string
	start         components.Button
	transitioned  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced by assessFactory.
func New(provider, model string, assessFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		assessFactory: assessFactory,
		provider:      provider,
		model:         model,
	}
	w.start = components.NewButton("Begin Assessment", true, w.transition)
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Begin"},
		{Key: "Q", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "q" {
			return w, tea.Quit
		}
		var cmd tea.Cmd
		w.start, cmd = w.start.Update(kmsg)
		return w, cmd
	}
	return w, nil
}

// transition produces the replacement command exactly once.
func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.assessFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("AI-Powered Assessment System")
	sections = append(sections, tagline)

	backend := w.provider
	if w.model != "" {
		backend += " · " + w.model
	}
	sections = append(sections, theme.Subtitle.Render(backend))

	sections = append(sections, "", w.start.View(), "")

	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("press enter to begin")
	sections = append(sections, hint)

	content := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
