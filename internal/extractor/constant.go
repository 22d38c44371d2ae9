package extractor

import "time"

// Log prefixes
const (
	LogPrefixExtract = "internal.extractor.Extract"
	LogPrefixEnrich  = "internal.extractor.Enrich"
)

// Relevance weights. Scores only ever grow by these amounts.
const (
	WeightEntityExactMatch   = 10.0
	WeightEntityPartialMatch = 5.0
	WeightQueryMention       = 4.0
	WeightColumnMatch        = 3.0
	WeightRecentAccess       = 2.0
	WeightPageRecency        = 2.0
	WeightPageContentMatch   = 1.5
)

const (
	RecentAccessWindow        = 7 * 24 * time.Hour
	PageRecencyHalfLife       = 7 * 24 * time.Hour
	DefaultWorkspaceCacheTTL  = 10 * time.Minute
	DefaultWorkspaceCacheSize = 256
	DefaultPageLimit          = 200
)
