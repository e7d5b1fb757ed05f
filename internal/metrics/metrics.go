// Package metrics tracks operational counters for a single assessment run.
//
// A Collector is constructed explicitly at startup and passed to the
// components that report into it. There is no package-level instance.
package metrics

import (
	"sync"
	"time"
)

// Collector accumulates counters for one process run.
//
// Generation runs inside UI command goroutines while the interface reads
// the summary, so access is guarded by a mutex.
type Collector struct {
	mu sync.Mutex

	apiCalls              int
	networkRetries        int
	validationSuccesses   int
	firstAttemptSuccesses int
	retries               int
	fallbacks             int

	inputTokens  int
	outputTokens int
	cost         float64
	latency      time.Duration

	byPurpose map[string]PurposeStats
}

// PurposeStats breaks down API usage for one request purpose.
type PurposeStats struct {
	Calls        int
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// Summary is a point-in-time snapshot of the collected counters and the
// rates derived from them.
type Summary struct {
	// APICalls counts every physical request to the generation service,
	// including failed attempts and transient retries.
	APICalls int

	// NetworkRetries counts transient-failure retries performed by the
	// provider layer.
	NetworkRetries int

	// Invocations is the number of completed validated generations
	// (successes plus fallbacks).
	Invocations int

	// Rates are counts divided by Invocations; all 0 when Invocations is 0.
	ValidationSuccessRate   float64
	FirstAttemptSuccessRate float64
	FallbackRate            float64

	// Retries counts feedback retries after schema failures.
	Retries int

	// Fallbacks counts generations that exhausted retries and returned
	// the schema-compliant default.
	Fallbacks int

	InputTokens   int
	OutputTokens  int
	EstimatedCost float64
	TotalLatency  time.Duration

	Purposes map[string]PurposeStats
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{byPurpose: make(map[string]PurposeStats)}
}

// RecordAPICall counts one physical request to the generation service,
// successful or not, and accumulates its token usage, estimated cost,
// and latency under the given purpose label.
func (c *Collector) RecordAPICall(purpose string, inputTokens, outputTokens int, cost float64, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiCalls++
	c.inputTokens += inputTokens
	c.outputTokens += outputTokens
	c.cost += cost
	c.latency += latency

	ps := c.byPurpose[purpose]
	ps.Calls++
	ps.InputTokens += inputTokens
	ps.OutputTokens += outputTokens
	ps.Cost += cost
	c.byPurpose[purpose] = ps
}

// RecordNetworkRetry counts one transient-failure retry performed by the
// provider layer before the next attempt.
func (c *Collector) RecordNetworkRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.networkRetries++
}

// RecordValidationSuccess counts a generation whose output passed schema
// validation. firstAttempt marks whether it passed without any retry.
func (c *Collector) RecordValidationSuccess(firstAttempt bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validationSuccesses++
	if firstAttempt {
		c.firstAttemptSuccesses++
	}
}

// RecordRetry counts one feedback retry after a parse or schema failure.
func (c *Collector) RecordRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retries++
}

// RecordFallback counts a generation that exhausted its attempts and
// returned the schema-compliant default document.
func (c *Collector) RecordFallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbacks++
}

// Summary derives the current rates and returns a snapshot. Counters are
// purely additive, so successive calls only ever grow.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		APICalls:       c.apiCalls,
		NetworkRetries: c.networkRetries,
		Retries:        c.retries,
		Fallbacks:      c.fallbacks,
		InputTokens:    c.inputTokens,
		OutputTokens:   c.outputTokens,
		EstimatedCost:  c.cost,
		TotalLatency:   c.latency,
		Purposes:       make(map[string]PurposeStats, len(c.byPurpose)),
	}
	for k, v := range c.byPurpose {
		s.Purposes[k] = v
	}

	s.Invocations = c.validationSuccesses + c.fallbacks
	if s.Invocations > 0 {
		n := float64(s.Invocations)
		s.ValidationSuccessRate = float64(c.validationSuccesses) / n
		s.FirstAttemptSuccessRate = float64(c.firstAttemptSuccesses) / n
		s.FallbackRate = float64(c.fallbacks) / n
	}

	return s
}
