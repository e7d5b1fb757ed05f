package assess

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/viva/internal/assessment"
	"github.com/abhisek/viva/internal/ui/theme"
)

func (a *AssessScreen) View(width, height int) string {
	switch a.phase {
	case phaseSubject:
		return a.renderPrompt(width, "What subject should the question cover?")
	case phaseTopic:
		return a.renderPrompt(width, fmt.Sprintf("Which %s topic?", a.subject))
	case phaseGenerating:
		return a.renderWaiting(width, "Generating question")
	case phaseResponding:
		return a.renderQuestion(width)
	case phaseScoring:
		return a.renderWaiting(width, "Scoring response")
	case phaseAborted:
		return a.renderAborted(width)
	}
	return ""
}

// renderPrompt renders a centered question with the text input below it.
func (a *AssessScreen) renderPrompt(width int, prompt string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, a.input.View()))

	if a.errLine != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(a.errLine))
	}

	return b.String()
}

// renderWaiting renders the spinner while a generation phase is in flight.
func (a *AssessScreen) renderWaiting(width int, label string) string {
	frame := spinnerFrames[a.tick%len(spinnerFrames)]
	line := lipgloss.NewStyle().Foreground(theme.Primary).Render(frame) +
		" " +
		lipgloss.NewStyle().Foreground(theme.Text).Render(label+"...")

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", a.session.Subject(), a.session.Topic())))

	return b.String()
}

// renderQuestion renders the generated question, the rubric, and the
// response editor.
func (a *AssessScreen) renderQuestion(width int) string {
	q := a.session.Question()
	if q == nil {
		return ""
	}

	var b strings.Builder

	header := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Subject, q.Topic))
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(editorWidth(width)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Question)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderRubric(&q.Rubric, editorWidth(width))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, a.response.View()))
	b.WriteString("\n")

	if a.errLine != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(a.errLine))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Ctrl+D submits the response"))

	return b.String()
}

// renderRubric renders the three scoring tiers. Examples stay out of the
// terminal view; they are part of the exported record.
func renderRubric(r *assessment.Rubric, width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Scoring rubric"))
	b.WriteString("\n")
	writeRubricLine(&b, width, theme.LevelPoor.Render("POOR"), r.Poor)
	writeRubricLine(&b, width, theme.LevelAdequate.Render("ADEQUATE"), r.Adequate)
	writeRubricLine(&b, width, theme.LevelExcellent.Render("EXCELLENT"), r.Excellent)

	return theme.Card.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func writeRubricLine(b *strings.Builder, width int, label string, level assessment.RubricLevel) {
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(max(width-6, 10)).
		Foreground(theme.Text).
		Render(level.Criteria))
	b.WriteString("\n")
}

// renderAborted renders the fatal-error state.
func (a *AssessScreen) renderAborted(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Assessment aborted"))
	b.WriteString("\n\n")

	if a.abortErr != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(a.abortErr.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("[N] New assessment    [Q] Quit"))

	return b.String()
}
