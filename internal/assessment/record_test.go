package assessment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewRecord(t *testing.T) {
	qr := FallbackQuestion("Biology", "Photosynthesis")
	score := &ScoreResult{
		ScoreLevel: ScoreExcellent,
		Confidence: 0.9,
		Rationale:  "The response explains the mechanism thoroughly with an accurate supporting example.",
	}
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	r := NewRecord(qr, "Chlorophyll captures light to build glucose.", score, true, now)

	if _, err := uuid.Parse(r.ID); err != nil {
		t.Fatalf("record ID is not a uuid: %q", r.ID)
	}
	if r.Subject != "Biology" || r.Topic != "Photosynthesis" {
		t.Fatalf("subject/topic not copied: %+v", r)
	}
	if r.Question != qr.Question || r.Rubric != qr.Rubric {
		t.Fatal("question/rubric not copied")
	}
	if r.StudentResponse != "Chlorophyll captures light to build glucose." {
		t.Fatalf("unexpected response: %q", r.StudentResponse)
	}
	if r.Score != *score {
		t.Fatalf("score not copied: %+v", r.Score)
	}
	if r.Metadata.Version != "2.0" {
		t.Fatalf("unexpected version: %q", r.Metadata.Version)
	}
	if !r.Metadata.JSONValidated {
		t.Fatal("expected json_validated true")
	}
	if r.Metadata.Timestamp != "2026-03-14 09:26:53" {
		t.Fatalf("unexpected timestamp: %q", r.Metadata.Timestamp)
	}
}

func TestNewRecord_FallbackClearsValidatedFlag(t *testing.T) {
	r := NewRecord(FallbackQuestion("Biology", "Photosynthesis"), "answer", FallbackScore(), false, time.Now())
	if r.Metadata.JSONValidated {
		t.Fatal("expected json_validated false after fallback")
	}
}

// The persisted field names are contractual; downstream consumers parse
// them by name.
func TestRecord_PersistedFieldNames(t *testing.T) {
	r := NewRecord(FallbackQuestion("Biology", "Photosynthesis"), "answer", FallbackScore(), true, time.Now())

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "subject", "topic", "question", "rubric", "student_response", "score", "metadata"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	rubric := doc["rubric"].(map[string]any)
	for _, level := range []string{"poor", "adequate", "excellent"} {
		entry, ok := rubric[level].(map[string]any)
		if !ok {
			t.Fatalf("missing rubric level %q", level)
		}
		if _, ok := entry["criteria"]; !ok {
			t.Errorf("rubric level %q missing criteria", level)
		}
		if _, ok := entry["example"]; !ok {
			t.Errorf("rubric level %q missing example", level)
		}
	}

	score := doc["score"].(map[string]any)
	for _, key := range []string{"score_level", "confidence", "rationale"} {
		if _, ok := score[key]; !ok {
			t.Errorf("score missing key %q", key)
		}
	}

	meta := doc["metadata"].(map[string]any)
	for _, key := range []string{"version", "json_validated", "timestamp"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("metadata missing key %q", key)
		}
	}
}
