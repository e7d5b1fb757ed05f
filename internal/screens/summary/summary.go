package summary

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/viva/internal/assessment"
	"github.com/abhisek/viva/internal/export"
	"github.com/abhisek/viva/internal/metrics"
	"github.com/abhisek/viva/internal/router"
	"github.com/abhisek/viva/internal/screen"
	"github.com/abhisek/viva/internal/ui/components"
	"github.com/abhisek/viva/internal/ui/layout"
	"github.com/abhisek/viva/internal/ui/theme"
)

// SummaryScreen displays the finished assessment record and the run
// metrics, and offers export to disk.
type SummaryScreen struct {
	record  *assessment.Record
	metrics metrics.Summary
	restart func() screen.Screen

	saveMsg string
	saveErr bool

	writeFile func(name string, data []byte, perm os.FileMode) error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a finished record. restart builds the
// next assessment screen when the examiner starts over.
func New(record *assessment.Record, m metrics.Summary, restart func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		record:    record,
		metrics:   m,
		restart:   restart,
		writeFile: os.WriteFile,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Save to file"},
		{Key: "N", Description: "New assessment"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "s":
			s.save()
			return s, nil
		case "n":
			if s.restart == nil {
				return s, nil
			}
			next := s.restart()
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: next}
			}
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

// save writes both export formats next to the working directory.
func (s *SummaryScreen) save() {
	base := export.SuggestedFilename(s.record.Subject, s.record.Topic)

	data, err := export.ToJSON(s.record)
	if err == nil {
		err = s.writeFile(base+".json", data, 0o644)
	}
	if err == nil {
		err = s.writeFile(base+".txt", []byte(export.ToText(s.record)), 0o644)
	}
	if err != nil {
		s.saveMsg = fmt.Sprintf("Save failed: %v", err)
		s.saveErr = true
		return
	}

	s.saveMsg = fmt.Sprintf("Saved %s.json and %s.txt", base, base)
	s.saveErr = false
}

func (s *SummaryScreen) View(width, height int) string {
	rec := s.record
	if rec == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Assessment complete!"))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", rec.Subject, rec.Topic)))
	b.WriteString("\n\n")

	// Score line.
	level := string(rec.Score.ScoreLevel)
	scoreLine := lipgloss.NewStyle().Foreground(theme.Text).Render("Score: ") +
		theme.Level(level).Render(strings.ToUpper(level))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scoreLine))
	b.WriteString("\n\n")

	// Confidence bar.
	bar := components.ProgressBar{
		Label:       "Confidence",
		Percent:     rec.Score.Confidence,
		ShowPercent: true,
		Width:       44,
		Fill:        levelColor(rec.Score.ScoreLevel),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Rationale.
	rationale := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Render(rec.Score.Rationale)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rationale))
	b.WriteString("\n\n")

	if !rec.Metadata.JSONValidated {
		notice := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("Fallback content was used; treat this score as a placeholder.")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, notice))
		b.WriteString("\n\n")
	}

	// Metrics panel.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Operational Metrics")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	m := s.metrics
	lines := []string{
		metricLine("API calls", fmt.Sprintf("%d", m.APICalls)),
		metricLine("Network retries", fmt.Sprintf("%d", m.NetworkRetries)),
		metricLine("Validation success", fmt.Sprintf("%.0f%%", m.ValidationSuccessRate*100)),
		metricLine("First attempt", fmt.Sprintf("%.0f%%", m.FirstAttemptSuccessRate*100)),
		metricLine("Feedback retries", fmt.Sprintf("%d", m.Retries)),
		metricLine("Fallbacks", fmt.Sprintf("%d", m.Fallbacks)),
		metricLine("Tokens", fmt.Sprintf("%d in / %d out", m.InputTokens, m.OutputTokens)),
		metricLine("Estimated cost", fmt.Sprintf("$%.4f", m.EstimatedCost)),
	}
	block := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	if s.saveMsg != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.saveErr {
			style = style.Foreground(theme.Error)
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(s.saveMsg)))
		b.WriteString("\n")
	}

	return b.String()
}

func metricLine(label, value string) string {
	return fmt.Sprintf("%-22s %s", label, value)
}

// levelColor returns the theme color for a score level.
func levelColor(level assessment.ScoreLevel) color.Color {
	switch level {
	case assessment.ScorePoor:
		return theme.Error
	case assessment.ScoreAdequate:
		return theme.Accent
	case assessment.ScoreExcellent:
		return theme.Success
	default:
		return theme.TextDim
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
