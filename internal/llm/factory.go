package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/viva/internal/metrics"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with metrics and retry middleware.
func NewProvider(ctx context.Context, cfg Config, collector *metrics.Collector) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → metrics → base, so every
	// physical attempt is counted.
	observed := WithMetrics(base, collector)
	retried := WithRetry(observed, cfg.Retry, collector)

	return retried, nil
}
