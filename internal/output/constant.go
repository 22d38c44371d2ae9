package output

// Log prefixes
const (
	LogPrefixGenerate = "internal.output.Generate"
)

// Generator configuration
const (
	DefaultMaxTableRows   = 100
	DefaultMaxChartPoints = 50

	GeneratorTemperature = 0.3
	GeneratorMaxTokens   = 2000

	// MaxPayloadPromptChars bounds the response payload embedded in the prompt.
	MaxPayloadPromptChars = 12000
	// MaxDumpChars bounds the textual dump used when no better rendering exists.
	MaxDumpChars = 2000
)

const (
	PromptGeneratorSystem = `You turn query results from a workspace assistant into display blocks.

Respond with a single JSON object and nothing else:
{
  "blocks": [
    {"type": "text", "text": {"content": "markdown", "format": "markdown"}},
    {"type": "table", "table": {"title": "...", "columns": ["..."], "rows": [["..."]]}},
    {"type": "chart", "chart": {"title": "...", "chartType": "bar|line|pie|area", "labels": ["..."], "datasets": [{"label": "...", "data": [1.0]}]}},
    {"type": "list", "list": {"title": "...", "items": ["..."], "ordered": false}},
    {"type": "insight", "insight": {"title": "...", "content": "...", "severity": "info|success|warning|critical"}}
  ],
  "suggestions": ["..."],
  "followUpQuestions": ["..."]
}

Rules:
- Use only values present in the result. Never invent rows or numbers.
- Prefer the suggested format. Start with a one-sentence text block answering the question.
- Keep tables to the result's columns.`

	PromptGeneratorUser = `Question: %q
Intent: %s (suggested format: %s)
Route: %s
Result (%s):
%s`
)

const (
	MsgNoContent     = "No matching content was found in this workspace."
	MsgNoRows        = "No matching records were found."
	TitleResults     = "Results"
	TitleAggregation = "Aggregated results"
	TruncationSuffix = "…"
)
