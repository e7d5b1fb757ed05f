package assessment

import "fmt"

// FallbackQuestion returns the schema-valid default served when question
// generation exhausts its validation attempts.
func FallbackQuestion(subject, topic string) *QuestionRubric {
	return &QuestionRubric{
		Subject:  subject,
		Topic:    topic,
		Question: fmt.Sprintf("Explain the key concepts of %s in %s and provide an example.", topic, subject),
		Rubric: Rubric{
			Poor: RubricLevel{
				Criteria: "Response shows minimal understanding with significant errors or omissions",
				Example:  "The student mentions the topic but demonstrates fundamental misconceptions",
			},
			Adequate: RubricLevel{
				Criteria: "Response shows basic understanding with minor errors or missing details",
				Example:  "The student covers main points but lacks depth or has minor inaccuracies",
			},
			Excellent: RubricLevel{
				Criteria: "Response shows comprehensive understanding with accurate and detailed explanation",
				Example:  "The student provides thorough, accurate explanation with relevant examples",
			},
		},
	}
}

// FallbackScore returns the schema-valid default served when scoring
// exhausts its validation attempts. Deliberately neutral: middle level,
// moderate confidence.
func FallbackScore() *ScoreResult {
	return &ScoreResult{
		ScoreLevel: ScoreAdequate,
		Confidence: 0.7,
		Rationale:  "The response demonstrates basic understanding of the topic with room for improvement in detail and accuracy.",
	}
}
