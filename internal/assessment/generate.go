package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/viva/internal/llm"
	"github.com/abhisek/viva/internal/structured"
)

// GenerateQuestion asks the model for a question and rubric covering the
// given subject and topic. Exhausted validation attempts yield the
// fallback question, reported through the result; only provider failures
// return an error.
func GenerateQuestion(ctx context.Context, gen *structured.Generator, subject, topic string) (*QuestionRubric, structured.Result, error) {
	ctx = llm.WithPurpose(ctx, "question-rubric")

	fallback, err := json.Marshal(FallbackQuestion(subject, topic))
	if err != nil {
		return nil, structured.Result{}, fmt.Errorf("marshal fallback question: %w", err)
	}

	doc, result, err := gen.Generate(ctx, structured.Request{
		System:   questionSystemPrompt,
		Prompt:   buildQuestionPrompt(subject, topic),
		Schema:   QuestionRubricSchema,
		Fallback: fallback,
	})
	if err != nil {
		return nil, result, err
	}

	var qr QuestionRubric
	if err := json.Unmarshal(doc, &qr); err != nil {
		return nil, result, fmt.Errorf("parse question document: %w", err)
	}
	qr.Subject = subject
	qr.Topic = topic

	return &qr, result, nil
}

// ScoreResponse asks the model to grade a student response against the
// question's rubric.
func ScoreResponse(ctx context.Context, gen *structured.Generator, qr *QuestionRubric, response string) (*ScoreResult, structured.Result, error) {
	ctx = llm.WithPurpose(ctx, "scoring")

	fallback, err := json.Marshal(FallbackScore())
	if err != nil {
		return nil, structured.Result{}, fmt.Errorf("marshal fallback score: %w", err)
	}

	doc, result, err := gen.Generate(ctx, structured.Request{
		System:   scoringSystemPrompt,
		Prompt:   buildScoringPrompt(qr, response),
		Schema:   ScoreResultSchema,
		Fallback: fallback,
	})
	if err != nil {
		return nil, result, err
	}

	var score ScoreResult
	if err := json.Unmarshal(doc, &score); err != nil {
		return nil, result, fmt.Errorf("parse score document: %w", err)
	}

	return &score, result, nil
}
