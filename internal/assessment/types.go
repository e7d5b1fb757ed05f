// Package assessment holds the assessment domain: the question/rubric
// and scoring document shapes, their JSON schemas and prompts, the
// fallback documents, and the persisted record.
package assessment

// ScoreLevel grades a student response against the rubric.
type ScoreLevel string

const (
	ScorePoor      ScoreLevel = "poor"
	ScoreAdequate  ScoreLevel = "adequate"
	ScoreExcellent ScoreLevel = "excellent"
)

// RubricLevel describes what a response at one level looks like.
type RubricLevel struct {
	Criteria string `json:"criteria"`
	Example  string `json:"example"`
}

// Rubric defines the three scoring tiers for a question. All three
// levels are always present.
type Rubric struct {
	Poor      RubricLevel `json:"poor"`
	Adequate  RubricLevel `json:"adequate"`
	Excellent RubricLevel `json:"excellent"`
}

// QuestionRubric is a generated assessment question with its scoring
// rubric, tagged with the subject and topic it was generated for. Only
// the question and rubric appear in the generated document.
type QuestionRubric struct {
	Subject  string `json:"-"`
	Topic    string `json:"-"`
	Question string `json:"question"`
	Rubric   Rubric `json:"rubric"`
}

// ScoreResult is the graded evaluation of a student response.
type ScoreResult struct {
	ScoreLevel ScoreLevel `json:"score_level"`
	Confidence float64    `json:"confidence"`
	Rationale  string     `json:"rationale"`
}

// Metadata records how a record was produced. JSONValidated is false
// when either generation served a fallback document.
type Metadata struct {
	Version       string `json:"version"`
	JSONValidated bool   `json:"json_validated"`
	Timestamp     string `json:"timestamp"`
}

// Record is one complete assessment, immutable once assembled. The JSON
// field names are part of the persisted format; downstream consumers
// parse them.
type Record struct {
	ID              string      `json:"id"`
	Subject         string      `json:"subject"`
	Topic           string      `json:"topic"`
	Question        string      `json:"question"`
	Rubric          Rubric      `json:"rubric"`
	StudentResponse string      `json:"student_response"`
	Score           ScoreResult `json:"score"`
	Metadata        Metadata    `json:"metadata"`
}
