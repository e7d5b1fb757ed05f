package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/viva/internal/app"
	"github.com/abhisek/viva/internal/llm"
	"github.com/abhisek/viva/internal/metrics"
	"github.com/abhisek/viva/internal/structured"
)

// resolveLLMConfig builds the provider config from flags and environment.
// Explicit VIVA_* settings win; otherwise standard API key variables are
// probed in priority order. Flags override both.
func resolveLLMConfig(cmd *cobra.Command) (llm.Config, error) {
	cfg := llm.ConfigFromEnv()

	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = p
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		setModel(&cfg, m)
	}

	if err := cfg.Validate(); err != nil {
		return llm.Config{}, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return cfg, nil
}

// setModel applies a model override to whichever provider is selected.
func setModel(cfg *llm.Config, model string) {
	switch cfg.Provider {
	case "anthropic":
		cfg.Anthropic.Model = model
	case "openai":
		cfg.OpenAI.Model = model
	case "gemini":
		cfg.Gemini.Model = model
	case "openrouter":
		cfg.OpenRouter.Model = model
	}
}

// runApp builds the provider stack and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveLLMConfig(cmd)
	if err != nil {
		return err
	}

	collector := metrics.New()
	provider, err := llm.NewProvider(cmd.Context(), cfg, collector)
	if err != nil {
		return fmt.Errorf("initialize provider: %w", err)
	}

	gen := structured.New(provider, collector, structured.DefaultConfig())

	return app.Run(app.Config{
		Generator: gen,
		Collector: collector,
		Provider:  cfg.Provider,
		Model:     provider.ModelID(),
	})
}
