package assessment

import "github.com/abhisek/viva/internal/llm"

// QuestionRubricSchema defines the JSON schema for question generation
// responses.
var QuestionRubricSchema = &llm.Schema{
	Name:        "question-rubric",
	Description: "An assessment question with a three-tier scoring rubric",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"question", "rubric"},
		"properties": map[string]any{
			"question": map[string]any{
				"type":      "string",
				"minLength": 20,
				"maxLength": 500,
			},
			"rubric": map[string]any{
				"type":     "object",
				"required": []any{"poor", "adequate", "excellent"},
				"properties": map[string]any{
					"poor":      rubricLevelDef(),
					"adequate":  rubricLevelDef(),
					"excellent": rubricLevelDef(),
				},
			},
		},
	},
}

// ScoreResultSchema defines the JSON schema for scoring responses.
// Confidence outside [0,1] is a violation, never clamped.
var ScoreResultSchema = &llm.Schema{
	Name:        "score-result",
	Description: "A rubric-based score for a student response",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"score_level", "confidence", "rationale"},
		"properties": map[string]any{
			"score_level": map[string]any{
				"type": "string",
				"enum": []any{"poor", "adequate", "excellent"},
			},
			"confidence": map[string]any{
				"type":    "number",
				"minimum": 0.0,
				"maximum": 1.0,
			},
			"rationale": map[string]any{
				"type":      "string",
				"minLength": 50,
			},
		},
	},
}

func rubricLevelDef() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"criteria", "example"},
		"properties": map[string]any{
			"criteria": map[string]any{"type": "string", "minLength": 10},
			"example":  map[string]any{"type": "string", "minLength": 10},
		},
	}
}
