// Package export renders finished assessment records for persistence.
// All functions are pure; writing the output anywhere is the caller's
// job.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/viva/internal/assessment"
)

const rule = "============================================================"

// ToJSON renders the record as indented JSON. The field names are the
// persisted contract; see assessment.Record.
func ToJSON(r *assessment.Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToText renders the record in the human-readable report layout.
func ToText(r *assessment.Record) string {
	var b strings.Builder

	b.WriteString("ASSESSMENT RESULTS\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", r.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", r.Topic)
	fmt.Fprintf(&b, "\nQuestion: %s\n", r.Question)

	b.WriteString("\nScoring Rubric:\n")
	writeRubricLevel(&b, "POOR", r.Rubric.Poor)
	writeRubricLevel(&b, "ADEQUATE", r.Rubric.Adequate)
	writeRubricLevel(&b, "EXCELLENT", r.Rubric.Excellent)

	fmt.Fprintf(&b, "\nStudent Response:\n%s\n", r.StudentResponse)
	fmt.Fprintf(&b, "\nScore: %s\n", strings.ToUpper(string(r.Score.ScoreLevel)))
	fmt.Fprintf(&b, "Confidence: %.1f%%\n", r.Score.Confidence*100)
	fmt.Fprintf(&b, "\nRationale:\n%s\n", r.Score.Rationale)

	return b.String()
}

func writeRubricLevel(b *strings.Builder, name string, level assessment.RubricLevel) {
	fmt.Fprintf(b, "\n  %s:\n", name)
	fmt.Fprintf(b, "  - Criteria: %s\n", level.Criteria)
	fmt.Fprintf(b, "  - Example: %s\n", level.Example)
}

// SuggestedFilename derives the export base name from subject and topic:
// lowercased, spaces to underscores, path separators stripped. Callers
// append ".json" or ".txt".
func SuggestedFilename(subject, topic string) string {
	base := fmt.Sprintf("assessment_%s_%s", subject, topic)
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.ReplaceAll(base, "/", "_")
	base = strings.ReplaceAll(base, "\\", "_")
	return base
}
