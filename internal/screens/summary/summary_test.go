package summary

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/viva/internal/assessment"
	"github.com/abhisek/viva/internal/metrics"
	"github.com/abhisek/viva/internal/router"
	"github.com/abhisek/viva/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "assess" }
func (s *stubScreen) Title() string                           { return "Assessment" }

func testRecord() *assessment.Record {
	qr := &assessment.QuestionRubric{
		Subject:  "Biology",
		Topic:    "Cell Division",
		Question: "Describe the main phases of mitosis and what happens in each.",
		Rubric: assessment.Rubric{
			Poor:      assessment.RubricLevel{Criteria: "Names no phases", Example: "Cells just split"},
			Adequate:  assessment.RubricLevel{Criteria: "Names phases in order", Example: "Prophase, metaphase, anaphase, telophase"},
			Excellent: assessment.RubricLevel{Criteria: "Explains each phase accurately", Example: "Chromosomes condense in prophase, align in metaphase..."},
		},
	}
	score := &assessment.ScoreResult{
		ScoreLevel: assessment.ScoreExcellent,
		Confidence: 0.9,
		Rationale:  "Covers each phase with accurate detail.",
	}
	return assessment.NewRecord(qr, "Chromosomes condense, align, separate, and the cell divides.", score, true, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
}

func testScreen() *SummaryScreen {
	m := metrics.Summary{
		APICalls:                3,
		Invocations:             2,
		ValidationSuccessRate:   1.0,
		FirstAttemptSuccessRate: 0.5,
		Retries:                 1,
		InputTokens:             900,
		OutputTokens:            310,
		EstimatedCost:           0.0214,
	}
	return New(testRecord(), m, func() screen.Screen { return &stubScreen{} })
}

func TestSummaryScreen_Title(t *testing.T) {
	s := testScreen()
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := testScreen()
	view := s.View(80, 24)

	if !strings.Contains(view, "Assessment complete!") {
		t.Error("view should announce completion")
	}
	if !strings.Contains(view, "Biology · Cell Division") {
		t.Error("view should show subject and topic")
	}
	if !strings.Contains(view, "EXCELLENT") {
		t.Error("view should show the score level")
	}
	if !strings.Contains(view, "Covers each phase") {
		t.Error("view should show the rationale")
	}
	if !strings.Contains(view, "Operational Metrics") {
		t.Error("view should show the metrics panel")
	}
	if !strings.Contains(view, "$0.0214") {
		t.Error("view should show the estimated cost")
	}
	if strings.Contains(view, "Fallback content") {
		t.Error("validated record should not show the fallback notice")
	}
}

func TestSummaryScreen_FallbackNotice(t *testing.T) {
	s := testScreen()
	s.record.Metadata.JSONValidated = false

	if !strings.Contains(s.View(80, 24), "Fallback content") {
		t.Error("unvalidated record should show the fallback notice")
	}
}

func TestSummaryScreen_Save(t *testing.T) {
	s := testScreen()

	written := map[string][]byte{}
	s.writeFile = func(name string, data []byte, _ os.FileMode) error {
		written[name] = data
		return nil
	}

	s.Update(keyPress('s'))

	jsonData, ok := written["assessment_biology_cell_division.json"]
	if !ok {
		t.Fatalf("expected JSON export to be written, got files %v", fileNames(written))
	}
	if !strings.Contains(string(jsonData), `"score_level": "excellent"`) {
		t.Error("JSON export should carry the score level")
	}

	textData, ok := written["assessment_biology_cell_division.txt"]
	if !ok {
		t.Fatalf("expected text export to be written, got files %v", fileNames(written))
	}
	if !strings.Contains(string(textData), "ASSESSMENT RESULTS") {
		t.Error("text export should carry the report header")
	}

	if s.saveErr {
		t.Errorf("save should succeed, got error message %q", s.saveMsg)
	}
	if !strings.Contains(s.View(80, 24), "Saved assessment_biology_cell_division.json") {
		t.Error("view should confirm the save")
	}
}

func TestSummaryScreen_SaveFailure(t *testing.T) {
	s := testScreen()
	s.writeFile = func(string, []byte, os.FileMode) error {
		return errors.New("disk full")
	}

	s.Update(keyPress('s'))

	if !s.saveErr {
		t.Fatal("expected save failure to be recorded")
	}
	if !strings.Contains(s.saveMsg, "disk full") {
		t.Errorf("save message = %q, want the write error", s.saveMsg)
	}
}

func TestSummaryScreen_NewAssessment(t *testing.T) {
	s := testScreen()

	_, cmd := s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected a command from n")
	}
	replaceMsg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if replaceMsg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
}

func TestSummaryScreen_Quit(t *testing.T) {
	s := testScreen()

	_, cmd := s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected a quit command from q")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); ok {
		t.Error("q should quit, not restart")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := testScreen()
	hints := s.KeyHints()
	if len(hints) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(hints))
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func fileNames(m map[string][]byte) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}
