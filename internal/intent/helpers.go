package intent

import (
	"context"
	"strings"
	"time"
	"unicode"

	"workspace-query/internal/model"
)

const timeLayout = time.RFC3339

// IsRealTimeQuery reports whether the answer depends on live data.
func IsRealTimeQuery(c model.IntentClassification) bool {
	if c.Intent == model.IntentDataQuery || c.Intent == model.IntentAnalytics {
		return true
	}
	for _, e := range c.Entities {
		if e.Type == model.EntityDateRange && mentionsNow(e.Value) {
			return true
		}
	}
	return false
}

// IsCacheable reports whether a classification may be served from a cache.
func IsCacheable(c model.IntentClassification) bool {
	return c.Intent != model.IntentAction && !IsRealTimeQuery(c)
}

// RequiresFreshData reports whether any entity asks for the current state ("now", "current", "today").
func RequiresFreshData(c model.IntentClassification) bool {
	for _, e := range c.Entities {
		if mentionsNow(e.Value) {
			return true
		}
	}
	return false
}

// ExtractDatabaseReferences returns every database entity value.
func ExtractDatabaseReferences(c model.IntentClassification) []string {
	return c.EntitiesOfType(model.EntityDatabase)
}

// ExtractTimeRange resolves the classification's time range against the current time.
func (c *LLMClassifier) ExtractTimeRange(cls model.IntentClassification) *model.TimeWindow {
	return c.resolveTimeRange(cls.TimeRange, c.now().In(c.dates.Location()))
}

// resolveTimeRange resolves the relative phrase first, then lets absolute bounds override it.
func (c *LLMClassifier) resolveTimeRange(tr *model.TimeRange, now time.Time) *model.TimeWindow {
	if tr == nil {
		return nil
	}

	var window model.TimeWindow
	if tr.Relative != "" {
		r, err := c.dates.ResolveRange(tr.Relative, now)
		if err == nil {
			window = model.TimeWindow{Start: r.Start, End: r.End}
		} else {
			c.l.Debugf(context.Background(), "%s: %v", LogPrefixExtractTimeRange, err)
		}
	}

	if start, ok := parseInstant(tr.Start, c.dates.Location()); ok {
		window.Start = start
	}
	if end, ok := parseInstant(tr.End, c.dates.Location()); ok {
		window.End = end
	}

	switch {
	case window.Start.IsZero() && window.End.IsZero():
		return nil
	case window.End.IsZero():
		window.End = now
	case window.Start.IsZero():
		y, m, d := window.End.Date()
		window.Start = time.Date(y, m, d, 0, 0, 0, 0, window.End.Location())
	}
	return &window
}

func parseInstant(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(timeLayout, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(DateFormatISO, value, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// mentionsNow matches whole words only, so "Knowledge Base" does not count.
func mentionsNow(value string) bool {
	words := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if realTimeMarkers[w] {
			return true
		}
	}
	return false
}
