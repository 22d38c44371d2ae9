package intent

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
	"workspace-query/pkg/datemath"
	"workspace-query/pkg/llmprovider"
	"workspace-query/pkg/log"
)

// Classifier turns a raw query into an IntentClassification. It never fails.
type Classifier interface {
	Classify(ctx context.Context, query string, session model.SessionContext) model.IntentClassification
	ExtractTimeRange(c model.IntentClassification) *model.TimeWindow
}

// Options tunes the classifier. Zero values fall back to defaults.
type Options struct {
	CacheTTL  time.Duration
	CacheSize int
	Timezone  string
	Metrics   *metrics.Metrics
}

// LLMClassifier classifies intent with a completion service and caches successful results.
type LLMClassifier struct {
	llm     llmprovider.Generator
	l       log.Logger
	dates   *datemath.Parser
	cache   *expirable.LRU[string, model.IntentClassification]
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ Classifier = (*LLMClassifier)(nil)

// New creates a new LLMClassifier.
func New(llm llmprovider.Generator, l log.Logger, opts Options) (*LLMClassifier, error) {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}

	dates, err := datemath.NewParser(opts.Timezone)
	if err != nil {
		return nil, err
	}

	return &LLMClassifier{
		llm:     llm,
		l:       l,
		dates:   dates,
		cache:   expirable.NewLRU[string, model.IntentClassification](opts.CacheSize, nil, opts.CacheTTL),
		metrics: opts.Metrics,
		now:     time.Now,
	}, nil
}

// CacheLen returns the number of cached classifications.
func (c *LLMClassifier) CacheLen() int {
	return c.cache.Len()
}
