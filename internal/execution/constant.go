package execution

import "time"

// Log prefixes
const (
	LogPrefixExecute        = "internal.execution.Execute"
	LogPrefixIndexWorkspace = "internal.execution.IndexWorkspace"
)

// Response sources.
const (
	SourceDatabase  = "database"
	SourcePages     = "pages"
	SourceAnalytics = "analytics"
	SourceHybrid    = "hybrid"
	SourceAction    = "action"
	SourceAssistant = "assistant"
)

// Aggregation periods understood by the row repository.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Aggregations.
const (
	AggSum     = "sum"
	AggAverage = "average"
	AggCount   = "count"
)

const (
	DefaultRowLimit   = 100
	DefaultMaxResults = 10
	// Windows up to this span are bucketed per day.
	DailyBucketSpan = 31 * 24 * time.Hour
)

// User-facing messages.
const (
	MsgActionConfirm   = "This will act on %d item(s) in your workspace. Please confirm before anything changes."
	MsgActionNoTarget  = "I can help with that action, but I could not tell which item it applies to. Please name the page or database."
	MsgClarify         = "I'm not sure what you are looking for. Could you rephrase or be more specific?"
	MsgHelp            = "I can answer questions about your workspace. Try one of the suggestions below."
	MsgNoPassages      = "No pages matched your question."
	MsgPassagesFound   = "Found %d relevant passage(s) in your pages."
	MsgHybridNoContent = "No related page content was found."
)

// Messages for analytics without a usable source.
const (
	MsgNoNumericData = "None of the relevant databases has a numeric column to aggregate."
)
