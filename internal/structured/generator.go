// Package structured obtains schema-valid JSON documents from an LLM
// provider. Responses that fail to parse or violate the schema are
// retried with error feedback appended to the prompt; when attempts run
// out, a caller-supplied fallback document is served instead.
package structured

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/viva/internal/llm"
	"github.com/abhisek/viva/internal/metrics"
)

// Config controls the generation loop.
type Config struct {
	// MaxAttempts bounds the validation loop, counting the first try.
	MaxAttempts int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		MaxTokens:   1000,
	}
}

// Request describes one structured generation.
type Request struct {
	System string
	Prompt string

	// Schema is what the extracted document must satisfy.
	Schema *llm.Schema

	// Fallback is returned when every attempt fails validation. It must
	// itself satisfy Schema.
	Fallback json.RawMessage
}

// Result reports how the returned document was obtained.
type Result struct {
	Attempts     int
	FirstTry     bool
	UsedFallback bool
}

// Generator drives a provider until it yields a document that passes
// schema validation, or serves the request's fallback.
type Generator struct {
	provider  llm.Provider
	collector *metrics.Collector
	config    Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, collector *metrics.Collector, cfg Config) *Generator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Generator{provider: provider, collector: collector, config: cfg}
}

// Generate requests a document matching req.Schema. A response that
// fails to parse is treated the same as one that violates the schema:
// the next attempt carries the validation errors back to the model.
// Neither failure kind is ever returned as an error; exhausting the
// attempts serves req.Fallback with UsedFallback set. Provider errors
// abort the loop and propagate.
func (g *Generator) Generate(ctx context.Context, req Request) (json.RawMessage, Result, error) {
	prompt := req.Prompt

	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		resp, err := g.provider.Generate(ctx, llm.Request{
			System: req.System,
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: prompt},
			},
			Schema:      req.Schema,
			MaxTokens:   g.config.MaxTokens,
			Temperature: g.config.Temperature,
		})
		if err != nil {
			return nil, Result{Attempts: attempt}, fmt.Errorf("LLM generation failed: %w", err)
		}

		doc := ExtractJSON(resp.Content)
		verr := Validate(req.Schema, doc)
		if verr == nil {
			g.collector.RecordValidationSuccess(attempt == 1)
			return doc, Result{Attempts: attempt, FirstTry: attempt == 1}, nil
		}

		if attempt < g.config.MaxAttempts {
			g.collector.RecordRetry()
			prompt = withErrorFeedback(req.Prompt, verr)
		}
	}

	g.collector.RecordFallback()
	return req.Fallback, Result{Attempts: g.config.MaxAttempts, UsedFallback: true}, nil
}

// withErrorFeedback rebuilds the prompt with the latest validation
// errors. Feedback is not accumulated across attempts; each retry
// carries only the errors from the response before it.
func withErrorFeedback(base string, verr error) string {
	return base + "\n\nPrevious response had JSON validation errors:\n" + verr.Error() + "\nPlease provide valid JSON only."
}
