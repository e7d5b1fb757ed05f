package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/viva/internal/metrics"
	"github.com/abhisek/viva/internal/router"
	"github.com/abhisek/viva/internal/screen"
	"github.com/abhisek/viva/internal/screens/assess"
	"github.com/abhisek/viva/internal/screens/welcome"
	"github.com/abhisek/viva/internal/structured"
	"github.com/abhisek/viva/internal/ui/layout"
)

// Config carries the wired dependencies for the TUI.
type Config struct {
	Generator *structured.Generator
	Collector *metrics.Collector
	Provider  string
	Model     string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	provider string
	model    string
	width    int
	height   int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(cfg Config) AppModel {
	assessFactory := func() screen.Screen {
		return assess.New(cfg.Generator, cfg.Collector)
	}
	welcomeScreen := welcome.New(cfg.Provider, cfg.Model, assessFactory)
	return AppModel{
		router:   router.New(welcomeScreen),
		provider: cfg.Provider,
		model:    cfg.Model,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens size their editors from the window dimensions.
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.provider, m.model, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(cfg Config) error {
	p := tea.NewProgram(newAppModel(cfg))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
