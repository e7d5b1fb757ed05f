package structured

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/viva/internal/llm"
	"github.com/abhisek/viva/internal/metrics"
)

func testConfig() Config {
	return Config{MaxAttempts: 3, MaxTokens: 500}
}

func scoreRequest() Request {
	return Request{
		System: "You are an educational assessment expert.",
		Prompt: "Score the following student response.",
		Schema: testScoreSchema(),
		Fallback: json.RawMessage(`{
			"score_level": "adequate",
			"confidence": 0.5,
			"rationale": "Unable to complete automated scoring; defaulting to a neutral assessment."
		}`),
	}
}

func TestGenerate_FirstTrySuccess(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validScoreJSON()},
	)
	collector := metrics.New()
	g := New(mock, collector, testConfig())

	doc, result, err := g.Generate(context.Background(), scoreRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FirstTry || result.UsedFallback {
		t.Fatalf("expected first-try success, got %+v", result)
	}
	if result.Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", result.Attempts)
	}

	var parsed map[string]any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("returned document is not valid JSON: %v", err)
	}
	if parsed["score_level"] != "adequate" {
		t.Fatalf("unexpected document: %v", parsed)
	}

	s := collector.Summary()
	if s.Invocations != 1 || s.FirstAttemptSuccessRate != 1.0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Retries != 0 || s.Fallbacks != 0 {
		t.Fatalf("expected no retries or fallbacks, got %+v", s)
	}
}

func TestGenerate_RetryAfterSchemaViolation(t *testing.T) {
	bad := json.RawMessage(`{"score_level": "outstanding", "confidence": 0.9, "rationale": "Length is fine here but the level is not in the enum."}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: validScoreJSON()},
	)
	collector := metrics.New()
	g := New(mock, collector, testConfig())

	req := scoreRequest()
	_, result, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FirstTry {
		t.Fatal("expected FirstTry to be false after a retry")
	}
	if result.UsedFallback {
		t.Fatal("expected real document, not fallback")
	}
	if result.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", result.Attempts)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 provider calls, got %d", mock.CallCount())
	}
	retryPrompt := mock.Calls[1].Messages[0].Content
	if !strings.HasPrefix(retryPrompt, req.Prompt) {
		t.Fatalf("retry prompt should start with the base prompt, got: %q", retryPrompt)
	}
	if !strings.Contains(retryPrompt, "Previous response had JSON validation errors:") {
		t.Fatalf("retry prompt missing error feedback: %q", retryPrompt)
	}
	if !strings.HasSuffix(retryPrompt, "Please provide valid JSON only.") {
		t.Fatalf("retry prompt missing closing instruction: %q", retryPrompt)
	}

	s := collector.Summary()
	if s.Retries != 1 {
		t.Fatalf("expected 1 retry, got %d", s.Retries)
	}
	if s.ValidationSuccessRate != 1.0 || s.FirstAttemptSuccessRate != 0.0 {
		t.Fatalf("unexpected rates: %+v", s)
	}
}

func TestGenerate_MalformedResponseTreatedAsValidationFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`I am unable to produce JSON right now.`)},
		llm.MockResponse{Content: validScoreJSON()},
	)
	collector := metrics.New()
	g := New(mock, collector, testConfig())

	_, result, err := g.Generate(context.Background(), scoreRequest())
	if err != nil {
		t.Fatalf("malformed output must not surface as an error, got: %v", err)
	}
	if result.FirstTry || result.UsedFallback {
		t.Fatalf("expected retried success, got %+v", result)
	}
	if collector.Summary().Retries != 1 {
		t.Fatalf("expected 1 retry, got %d", collector.Summary().Retries)
	}
}

func TestGenerate_FencedResponseAccepted(t *testing.T) {
	fenced := json.RawMessage("```json\n" + string(validScoreJSON()) + "\n```")
	mock := llm.NewMockProvider(llm.MockResponse{Content: fenced})
	collector := metrics.New()
	g := New(mock, collector, testConfig())

	_, result, err := g.Generate(context.Background(), scoreRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FirstTry {
		t.Fatalf("fenced but valid JSON should pass on the first try, got %+v", result)
	}
}

func TestGenerate_FallbackAfterExhaustion(t *testing.T) {
	bad := llm.MockResponse{Content: json.RawMessage(`{"score_level": "wrong"}`)}
	mock := llm.NewMockProvider(bad, bad, bad)
	collector := metrics.New()
	g := New(mock, collector, testConfig())

	req := scoreRequest()
	doc, result, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("exhaustion must not surface as an error, got: %v", err)
	}
	if !result.UsedFallback {
		t.Fatalf("expected fallback, got %+v", result)
	}
	if result.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", result.Attempts)
	}
	if string(doc) != string(req.Fallback) {
		t.Fatalf("expected fallback document, got: %s", doc)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 provider calls, got %d", mock.CallCount())
	}

	s := collector.Summary()
	if s.Fallbacks != 1 || s.FallbackRate != 1.0 {
		t.Fatalf("unexpected fallback stats: %+v", s)
	}
	// Two feedback retries happen between three attempts.
	if s.Retries != 2 {
		t.Fatalf("expected 2 retries, got %d", s.Retries)
	}
	if s.ValidationSuccessRate != 0.0 {
		t.Fatalf("expected zero success rate, got %v", s.ValidationSuccessRate)
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("service down")}},
	)
	collector := metrics.New()
	g := New(mock, collector, testConfig())

	_, result, err := g.Generate(context.Background(), scoreRequest())
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable in chain, got: %v", err)
	}
	if result.UsedFallback {
		t.Fatal("provider failure must not serve the fallback")
	}

	s := collector.Summary()
	if s.Fallbacks != 0 || s.Invocations != 0 {
		t.Fatalf("provider failure must not count as an invocation: %+v", s)
	}
}

func TestGenerate_ZeroMaxAttemptsUsesDefault(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validScoreJSON()})
	g := New(mock, metrics.New(), Config{})

	_, result, err := g.Generate(context.Background(), scoreRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FirstTry {
		t.Fatalf("expected success, got %+v", result)
	}
}
