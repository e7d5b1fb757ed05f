package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/viva/internal/assessment"
)

func testRecord() *assessment.Record {
	qr := assessment.FallbackQuestion("Biology", "Photosynthesis")
	score := &assessment.ScoreResult{
		ScoreLevel: assessment.ScoreExcellent,
		Confidence: 0.92,
		Rationale:  "The response identifies the key mechanism and explains it with an accurate, well-chosen example.",
	}
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return assessment.NewRecord(qr, "Chlorophyll captures light to build glucose.", score, true, now)
}

func TestToJSON_ContainsContractualFields(t *testing.T) {
	out, err := ToJSON(testRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		`"subject": "Biology"`,
		`"topic": "Photosynthesis"`,
		`"student_response"`,
		`"score_level": "excellent"`,
		`"json_validated": true`,
		`"version": "2.0"`,
		`"timestamp": "2026-03-14 09:26:53"`,
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("JSON output missing %q", want)
		}
	}
}

func TestToJSON_Idempotent(t *testing.T) {
	r := testRecord()
	first, err := ToJSON(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ToJSON(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeated export must produce identical bytes")
	}
}

func TestToText_Layout(t *testing.T) {
	r := testRecord()
	out := ToText(r)

	if !strings.HasPrefix(out, "ASSESSMENT RESULTS\n"+strings.Repeat("=", 60)+"\n\n") {
		t.Fatalf("unexpected header: %q", out[:80])
	}
	for _, want := range []string{
		"Subject: Biology\n",
		"Topic: Photosynthesis\n",
		"Question: " + r.Question,
		"\n  POOR:\n",
		"\n  ADEQUATE:\n",
		"\n  EXCELLENT:\n",
		"- Criteria: " + r.Rubric.Poor.Criteria,
		"Student Response:\nChlorophyll captures light to build glucose.\n",
		"Score: EXCELLENT\n",
		"Confidence: 92.0%\n",
		"Rationale:\n" + r.Score.Rationale,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestToText_Idempotent(t *testing.T) {
	r := testRecord()
	if ToText(r) != ToText(r) {
		t.Fatal("repeated export must produce identical text")
	}
}

func TestSuggestedFilename(t *testing.T) {
	tests := []struct {
		subject string
		topic   string
		want    string
	}{
		{"Biology", "Photosynthesis", "assessment_biology_photosynthesis"},
		{"Computer Science", "Binary Trees", "assessment_computer_science_binary_trees"},
		{"History", "WWII / The Pacific", "assessment_history_wwii___the_pacific"},
		{"Math", `Fractions\Decimals`, "assessment_math_fractions_decimals"},
	}
	for _, tt := range tests {
		got := SuggestedFilename(tt.subject, tt.topic)
		if got != tt.want {
			t.Errorf("SuggestedFilename(%q, %q) = %q, want %q", tt.subject, tt.topic, got, tt.want)
		}
	}
}
