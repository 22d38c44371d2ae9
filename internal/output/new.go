package output

import (
	"context"

	"workspace-query/internal/model"
	"workspace-query/pkg/llmprovider"
	"workspace-query/pkg/log"
)

// Generator renders an execution response as typed display blocks.
type Generator interface {
	// Generate never fails: unusable completions fall back to a deterministic rendering.
	Generate(ctx context.Context, query string, resp model.QueryResponse, input GenerateInput) model.StructuredResponse

	// OptimizeForRendering bounds table rows and chart points. Applying it twice changes nothing.
	OptimizeForRendering(resp model.StructuredResponse) model.StructuredResponse
}

// GenerateInput carries the earlier pipeline stages' output.
type GenerateInput struct {
	Classification model.IntentClassification
	Context        model.QueryContext
	Route          model.RouteDecision
}

// Config tunes rendering limits. Zero values fall back to defaults.
type Config struct {
	MaxTableRows   int
	MaxChartPoints int
}

// LLMGenerator asks a completion service for blocks and validates what comes back.
type LLMGenerator struct {
	llm       llmprovider.Generator
	l         log.Logger
	maxRows   int
	maxPoints int
}

var _ Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator. llm may be nil, in which case every response is rendered deterministically.
func New(llm llmprovider.Generator, l log.Logger, cfg Config) *LLMGenerator {
	if cfg.MaxTableRows <= 0 {
		cfg.MaxTableRows = DefaultMaxTableRows
	}
	if cfg.MaxChartPoints <= 0 {
		cfg.MaxChartPoints = DefaultMaxChartPoints
	}
	return &LLMGenerator{llm: llm, l: l, maxRows: cfg.MaxTableRows, maxPoints: cfg.MaxChartPoints}
}
