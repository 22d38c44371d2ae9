package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
	"workspace-query/pkg/llmprovider"
)

// Classify determines the intent of a query. Failures of the completion service or an invalid
// completion produce an ambiguous fallback with zero confidence; only valid results are cached.
func (c *LLMClassifier) Classify(ctx context.Context, query string, session model.SessionContext) model.IntentClassification {
	key := cacheKey(query, session)
	if cached, ok := c.cache.Peek(key); ok {
		c.metrics.CacheEvent(metrics.CacheClassification, metrics.EventHit)
		c.l.Debugf(ctx, "%s: cache hit for %q", LogPrefixClassify, query)
		return cached
	}
	c.metrics.CacheEvent(metrics.CacheClassification, metrics.EventMiss)

	now := c.now().In(c.dates.Location())
	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: PromptClassifierSystem + buildTimeContext(now),
		Messages: []llmprovider.Message{
			{Role: llmprovider.RoleUser, Content: buildUserPrompt(query, session)},
		},
		Temperature:    ClassifierTemperature,
		MaxTokens:      ClassifierMaxTokens,
		ResponseFormat: llmprovider.FormatJSONObject,
	})
	if err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ReasonLLMFailure, err)
		return Fallback(ReasonLLMFailure)
	}

	text := stripCodeFence(resp.Text())
	if text == "" {
		c.l.Warnf(ctx, "%s: %s", LogPrefixClassify, ReasonEmptyResponse)
		return Fallback(ReasonEmptyResponse)
	}

	var out model.IntentClassification
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ReasonParsingError, err)
		return Fallback(ReasonParsingError)
	}

	if err := normalize(&out); err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ReasonValidationError, err)
		return Fallback(ReasonValidationError)
	}

	if window := c.resolveTimeRange(out.TimeRange, now); window != nil {
		out.TimeRange.Start = window.Start.Format(timeLayout)
		out.TimeRange.End = window.End.Format(timeLayout)
	}

	c.cache.Add(key, out)
	c.l.Infof(ctx, "%s: classified as %s (confidence: %.2f)", LogPrefixClassify, out.Intent, out.Confidence)
	return out
}

// Fallback is the classification returned whenever a real one cannot be produced.
func Fallback(reason string) model.IntentClassification {
	return model.IntentClassification{
		Intent:          model.IntentAmbiguous,
		Confidence:      0,
		SuggestedFormat: model.FormatText,
		Entities:        []model.Entity{},
		Explanation:     reason,
	}
}

func cacheKey(query string, session model.SessionContext) string {
	raw, _ := json.Marshal(session)
	return query + "|" + string(raw)
}

func buildUserPrompt(query string, session model.SessionContext) string {
	var b strings.Builder
	if session.CurrentPageID != "" || len(session.RecentQueries) > 0 {
		b.WriteString(PromptSessionPrefix)
		if session.CurrentPageID != "" {
			fmt.Fprintf(&b, "- current page: %s\n", session.CurrentPageID)
		}
		for i, q := range session.RecentQueries {
			fmt.Fprintf(&b, "- previous query %d: %s\n", i+1, q)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Query: %q", query)
	return b.String()
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// normalize validates a parsed classification and fills optional fields.
func normalize(c *model.IntentClassification) error {
	if !c.Intent.IsValid() {
		return fmt.Errorf("unknown intent %q", c.Intent)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range", c.Confidence)
	}
	if !c.SuggestedFormat.IsValid() {
		c.SuggestedFormat = defaultFormat(c.Intent)
	}

	entities := make([]model.Entity, 0, len(c.Entities))
	for _, e := range c.Entities {
		e.Value = strings.TrimSpace(e.Value)
		if e.Value == "" {
			continue
		}
		if !e.Type.IsValid() {
			e.Type = model.EntityGeneric
		}
		e.Confidence = clamp(e.Confidence)
		entities = append(entities, e)
	}
	c.Entities = entities

	if c.TimeRange != nil && *c.TimeRange == (model.TimeRange{}) {
		c.TimeRange = nil
	}
	return nil
}

func defaultFormat(intent model.Intent) model.OutputFormat {
	switch intent {
	case model.IntentDataQuery:
		return model.FormatTable
	case model.IntentAnalytics:
		return model.FormatChart
	case model.IntentAction:
		return model.FormatActionConfirmation
	case model.IntentNavigation:
		return model.FormatList
	default:
		return model.FormatText
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
