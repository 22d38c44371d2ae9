package router

import (
	"context"

	"workspace-query/internal/model"
	"workspace-query/pkg/log"
)

// Router chooses how a classified query is answered. It never fails.
type Router interface {
	DetermineRoute(ctx context.Context, query string, cls model.IntentClassification, qc model.QueryContext) model.RouteDecision
}

// TimeResolver turns a classification's time range into concrete bounds.
type TimeResolver interface {
	ExtractTimeRange(cls model.IntentClassification) *model.TimeWindow
}

// Config tunes routing. Zero values fall back to defaults.
type Config struct {
	LowConfidenceThreshold float64
	MaxDatabases           int
	RowLimit               int
	RAGMaxResults          int
}

// QueryRouter applies the routing rules in priority order.
type QueryRouter struct {
	l     log.Logger
	times TimeResolver
	cfg   Config
}

var _ Router = (*QueryRouter)(nil)

// New creates a new QueryRouter
func New(l log.Logger, times TimeResolver, cfg Config) *QueryRouter {
	if cfg.LowConfidenceThreshold <= 0 {
		cfg.LowConfidenceThreshold = DefaultLowConfidenceThreshold
	}
	if cfg.MaxDatabases <= 0 {
		cfg.MaxDatabases = DefaultMaxDatabases
	}
	if cfg.RowLimit <= 0 {
		cfg.RowLimit = DefaultRowLimit
	}
	if cfg.RAGMaxResults <= 0 {
		cfg.RAGMaxResults = DefaultRAGMaxResults
	}
	return &QueryRouter{l: l, times: times, cfg: cfg}
}
