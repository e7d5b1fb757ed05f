package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/viva/internal/llm"
)

const questionSystemPrompt = `You are an educational assessment expert. You write clear, focused assessment questions and fair three-tier scoring rubrics.`

const scoringSystemPrompt = `You are an educational assessment expert. You grade student responses strictly against the provided rubric, consistently and without bias.`

// buildQuestionPrompt constructs the question-generation prompt. The
// schema JSON is embedded so the model sees the exact required shape.
func buildQuestionPrompt(subject, topic string) string {
	var b strings.Builder

	b.WriteString("Generate an educational assessment question and scoring rubric.\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Topic: %s\n\n", topic)
	b.WriteString("You MUST respond with ONLY valid JSON (no markdown code blocks, no explanations).\n\n")
	b.WriteString("Required JSON structure:\n")
	b.WriteString(schemaJSON(QuestionRubricSchema))
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("1. Question must be answerable in approximately 100 words\n")
	b.WriteString("2. Question should test understanding of the topic\n")
	b.WriteString("3. Each rubric level must have clear criteria and a specific example\n\n")
	b.WriteString("Generate the JSON now:")

	return b.String()
}

// buildScoringPrompt constructs the scoring prompt from the question,
// its rubric criteria, and the student response.
func buildScoringPrompt(qr *QuestionRubric, response string) string {
	var b strings.Builder

	b.WriteString("Score the following student response using the provided rubric.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", qr.Question)
	b.WriteString("Scoring Rubric:\n")
	fmt.Fprintf(&b, "- Poor: %s\n", qr.Rubric.Poor.Criteria)
	fmt.Fprintf(&b, "- Adequate: %s\n", qr.Rubric.Adequate.Criteria)
	fmt.Fprintf(&b, "- Excellent: %s\n\n", qr.Rubric.Excellent.Criteria)
	fmt.Fprintf(&b, "Student Response: %s\n\n", response)
	b.WriteString("You MUST respond with ONLY valid JSON (no markdown code blocks, no explanations).\n\n")
	b.WriteString("Required JSON structure:\n")
	b.WriteString(schemaJSON(ScoreResultSchema))
	b.WriteString("\n\nEvaluate and return the JSON score:")

	return b.String()
}

// schemaJSON renders a schema definition as indented JSON for embedding
// in a prompt.
func schemaJSON(s *llm.Schema) string {
	out, err := json.MarshalIndent(s.Definition, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}
