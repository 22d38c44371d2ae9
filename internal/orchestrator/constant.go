package orchestrator

import "time"

// Log prefixes
const (
	LogPrefixProcessQuery = "internal.orchestrator.ProcessQuery"
)

const (
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheSize       = 100
	DefaultMaxResponseTime = 3 * time.Second
)

// MsgRephrase is the only block of a degraded result.
const MsgRephrase = "Sorry, I couldn't process that question. Please try rephrasing it."
