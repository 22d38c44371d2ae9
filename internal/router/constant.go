package router

// Log prefixes
const (
	LogPrefixDetermineRoute = "internal.router.DetermineRoute"
)

// Router configuration
const (
	DefaultLowConfidenceThreshold = 0.5
	DefaultMaxDatabases           = 3
	DefaultRowLimit               = 100
	DefaultRAGMaxResults          = 10

	// Matched entities move confidence this fraction of the way towards 1,
	// unmatched ones this fraction of the way towards 0.
	MatchedEntityBoost     = 0.1
	UnmatchedEntityPenalty = 0.1
)

// Reasoning strings
const (
	ReasonDatabaseQuery  = "data query over %d relevant database(s)"
	ReasonRAGSearch      = "content search over workspace pages"
	ReasonAnalytics      = "analytics with %s over %d numeric database(s)"
	ReasonHybrid         = "%s touches both databases and pages"
	ReasonAction         = "action requested; confirmation required before anything changes"
	ReasonHelp           = "help request answered without touching workspace data"
	ReasonAmbiguous      = "intent is unclear (%s, confidence %.2f); asking for clarification"
	ReasonNoDataFallback = "intent %s is unclear for this workspace: no matching data source"
)

// Clarification suggestions offered by the fallback route.
var (
	DefaultSuggestions = []string{
		"Show my tasks due this week",
		"Find pages about onboarding",
		"Revenue by month for last quarter",
	}
	HelpSuggestions = []string{
		"Ask about records: \"show open deals\"",
		"Search documents: \"find the release checklist\"",
		"Ask for numbers: \"average deal size by month\"",
	}
	DefaultAggregations = []string{"sum", "average", "count"}
)
