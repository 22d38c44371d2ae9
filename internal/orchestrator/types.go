package orchestrator

import (
	"time"

	"workspace-query/internal/metrics"
)

// CacheStats describes the response cache.
type CacheStats struct {
	Size     int   `json:"size"`
	Capacity int   `json:"capacity"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
}

// Options tunes the orchestrator. Zero values fall back to defaults.
type Options struct {
	CacheTTL        time.Duration
	CacheSize       int
	MaxResponseTime time.Duration
	Metrics         *metrics.Metrics
}
