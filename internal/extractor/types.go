package extractor

import (
	"time"

	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
)

// ExtractInput is everything context extraction needs from earlier stages.
type ExtractInput struct {
	Query          string
	WorkspaceID    string
	UserID         string
	Classification model.IntentClassification
}

// Options tunes the extractor. Zero values fall back to defaults.
type Options struct {
	WorkspaceCacheTTL  time.Duration
	WorkspaceCacheSize int
	PageLimit          int
	Metrics            *metrics.Metrics
}
