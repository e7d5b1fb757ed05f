package assess

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/viva/internal/metrics"
	"github.com/abhisek/viva/internal/router"
	"github.com/abhisek/viva/internal/screen"
	"github.com/abhisek/viva/internal/screens/summary"
	sess "github.com/abhisek/viva/internal/session"
	"github.com/abhisek/viva/internal/structured"
	"github.com/abhisek/viva/internal/ui/components"
	"github.com/abhisek/viva/internal/ui/layout"
)

// phase mirrors the session state machine for display purposes.
type phase int

const (
	phaseSubject    phase = iota // Collecting the subject
	phaseTopic                   // Collecting the topic
	phaseGenerating              // Question generation in flight
	phaseResponding              // Question shown, collecting the response
	phaseScoring                 // Scoring in flight
	phaseAborted                 // Fatal provider error
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// AssessScreen drives one assessment from subject entry to scoring,
// then hands the finished record to the results screen.
type AssessScreen struct {
	session   *sess.Session
	gen       *structured.Generator
	collector *metrics.Collector

	phase    phase
	subject  string
	input    components.TextInput
	response components.TextArea
	errLine  string
	abortErr error
	tick     int
	width    int
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)

// New creates an AssessScreen with a fresh session on the given generator.
func New(gen *structured.Generator, collector *metrics.Collector) *AssessScreen {
	return &AssessScreen{
		session:   sess.New(gen, nil),
		gen:       gen,
		collector: collector,
		phase:     phaseSubject,
		input:     components.NewTextInput("e.g. History", 80),
		width:     layout.MinWidth,
	}
}

func (a *AssessScreen) Init() tea.Cmd {
	return a.input.Init()
}

func (a *AssessScreen) Title() string {
	return "Assessment"
}

func (a *AssessScreen) KeyHints() []layout.KeyHint {
	switch a.phase {
	case phaseSubject, phaseTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
		}
	case phaseResponding:
		return []layout.KeyHint{
			{Key: "Ctrl+D", Description: "Submit response"},
		}
	case phaseAborted:
		return []layout.KeyHint{
			{Key: "N", Description: "New assessment"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return nil
}

func (a *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		if a.phase == phaseResponding {
			a.response.SetWidth(editorWidth(msg.Width))
		}
		return a, nil

	case questionReadyMsg:
		return a.handleQuestionReady(msg)

	case scoreReadyMsg:
		return a.handleScoreReady(msg)

	case generateFailedMsg:
		a.phase = phaseAborted
		a.abortErr = msg.Err
		return a, nil

	case spinnerTickMsg:
		if a.phase != phaseGenerating && a.phase != phaseScoring {
			return a, nil
		}
		a.tick++
		return a, spinnerTick()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.forwardToEditor(msg)
}

func (a *AssessScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch a.phase {
	case phaseSubject:
		if key == "enter" {
			subject := strings.TrimSpace(a.input.Value())
			if subject == "" {
				a.errLine = "Subject cannot be empty."
				return a, nil
			}
			a.subject = subject
			a.errLine = ""
			a.phase = phaseTopic
			a.input = components.NewTextInput("e.g. World War II", 80)
			return a, a.input.Init()
		}

	case phaseTopic:
		if key == "enter" {
			topic := strings.TrimSpace(a.input.Value())
			if topic == "" {
				a.errLine = "Topic cannot be empty."
				return a, nil
			}
			if err := a.session.Begin(a.subject, topic); err != nil {
				a.errLine = err.Error()
				return a, nil
			}
			a.errLine = ""
			a.phase = phaseGenerating
			return a, tea.Batch(a.generateQuestion(), spinnerTick())
		}

	case phaseResponding:
		if key == "ctrl+d" {
			return a.submitResponse()
		}

	case phaseAborted:
		switch key {
		case "n":
			next := a.restart()
			return a, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: next}
			}
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	return a, a.forwardToEditor(msg)
}

// forwardToEditor routes a message to whichever editor is active.
func (a *AssessScreen) forwardToEditor(msg tea.Msg) tea.Cmd {
	switch a.phase {
	case phaseSubject, phaseTopic:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return cmd
	case phaseResponding:
		var cmd tea.Cmd
		a.response, cmd = a.response.Update(msg)
		return cmd
	}
	return nil
}

func (a *AssessScreen) submitResponse() (screen.Screen, tea.Cmd) {
	if err := a.session.SubmitResponse(a.response.Value()); err != nil {
		var empty *sess.ErrEmptyInput
		if errors.As(err, &empty) {
			a.errLine = "Response cannot be empty."
		} else {
			a.errLine = err.Error()
		}
		return a, nil
	}
	a.errLine = ""
	a.phase = phaseScoring
	return a, tea.Batch(a.score(), spinnerTick())
}

func (a *AssessScreen) handleQuestionReady(questionReadyMsg) (screen.Screen, tea.Cmd) {
	a.phase = phaseResponding
	a.response = components.NewTextArea("Type the student's response...", 2000, editorWidth(a.width), 5)
	return a, a.response.Init()
}

func (a *AssessScreen) handleScoreReady(msg scoreReadyMsg) (screen.Screen, tea.Cmd) {
	next := summary.New(msg.Record, a.collector.Summary(), a.restart)
	return a, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// restart builds a fresh assessment on the same generator and collector.
// Metrics accumulate across assessments within one program run.
func (a *AssessScreen) restart() screen.Screen {
	return New(a.gen, a.collector)
}

// generateQuestion runs question generation off the update loop.
func (a *AssessScreen) generateQuestion() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		qr, err := s.GenerateQuestion(context.Background())
		if err != nil {
			return generateFailedMsg{Err: err}
		}
		return questionReadyMsg{Question: qr}
	}
}

// score runs scoring off the update loop and assembles the record.
func (a *AssessScreen) score() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		score, err := s.Score(context.Background())
		if err != nil {
			return generateFailedMsg{Err: err}
		}
		record, err := s.Record()
		if err != nil {
			return generateFailedMsg{Err: err}
		}
		return scoreReadyMsg{Score: score, Record: record}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// editorWidth bounds the response editor to a readable column.
func editorWidth(width int) int {
	w := width - 8
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}
