package intent

import "time"

// Log prefixes
const (
	LogPrefixClassify         = "internal.intent.Classify"
	LogPrefixExtractTimeRange = "internal.intent.ExtractTimeRange"
)

// Classifier prompts
const (
	PromptClassifierSystem = `You are the intent classifier of a workspace assistant. Users ask questions about their
workspace: structured databases (tables with typed columns) and pages (documents).

Classify the user query. Respond with a single JSON object and nothing else:
{
  "intent": "data_query|content_search|analytics|summary|action|navigation|help|ambiguous",
  "confidence": 0.0-1.0,
  "suggestedFormat": "text|table|chart|list|mixed|action_confirmation",
  "entities": [{"type": "database|page|project|workspace|date_range|metric|entity", "value": "...", "confidence": 0.0-1.0}],
  "timeRange": {"start": "RFC3339, optional", "end": "RFC3339, optional", "relative": "phrase such as last month, optional"},
  "aggregations": ["sum|average|count|min|max"],
  "explanation": "one short sentence"
}

Intents:
- data_query: list or filter records from a database ("show my tasks")
- content_search: find information inside pages ("find documentation about X")
- analytics: aggregates, trends, comparisons over numbers ("revenue by month")
- summary: summarize a page, a database or the workspace
- action: create, update or delete something
- navigation: open or locate a page or database
- help: questions about the assistant itself
- ambiguous: none of the above with reasonable certainty`

	PromptSessionPrefix = "Session context:\n"

	TimeContextTemplate = `

[TIME CONTEXT]
- Today: %s (%s)
- This week: %s to %s
Prefer a "relative" phrase for time expressions; only fill start/end for explicit dates.`
)

// Classifier configuration
const (
	ClassifierTemperature = 0.1
	ClassifierMaxTokens   = 600

	DefaultCacheTTL  = 5 * time.Minute
	DefaultCacheSize = 1000

	DateFormatISO = "2006-01-02"
)

// Fallback reasons
const (
	ReasonLLMFailure      = "Fallback classification: completion service failed"
	ReasonEmptyResponse   = "Fallback classification: empty completion"
	ReasonParsingError    = "Fallback classification: unparsable completion"
	ReasonValidationError = "Fallback classification: invalid completion"
)

var realTimeMarkers = map[string]bool{"today": true, "current": true, "currently": true, "now": true}
