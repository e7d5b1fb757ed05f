package llm

import (
	"context"
	"time"

	"github.com/abhisek/viva/internal/metrics"
)

// MetricsProvider is a decorator that records every physical request in
// the run's metrics collector: call count, token usage, latency, and
// estimated cost, labeled with the purpose attached to the context.
type MetricsProvider struct {
	inner     Provider
	collector *metrics.Collector
}

// WithMetrics wraps a Provider with per-call metrics recording.
func WithMetrics(p Provider, collector *metrics.Collector) Provider {
	return &MetricsProvider{inner: p, collector: collector}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := m.inner.Generate(ctx, req)

	latency := time.Since(start)

	var inputTokens, outputTokens int
	var cost float64
	model := m.inner.ModelID()

	if resp != nil {
		inputTokens = resp.Usage.InputTokens
		outputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			model = resp.Model
		}
	}
	if c := LookupCost(model); c != nil {
		cost = c.Cost(inputTokens, outputTokens)
	}

	// Failed attempts count too.
	m.collector.RecordAPICall(purpose, inputTokens, outputTokens, cost, latency)

	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
