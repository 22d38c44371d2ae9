package usecase

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"workspace-query/internal/execution"
	"workspace-query/internal/extractor"
	"workspace-query/internal/intent"
	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
	"workspace-query/internal/orchestrator"
	"workspace-query/internal/output"
	"workspace-query/internal/router"
	"workspace-query/pkg/log"
)

// Deps are the pipeline stages, in the order they run.
type Deps struct {
	Classifier intent.Classifier
	Extractor  extractor.UseCase
	Router     router.Router
	Executor   execution.Executor
	Generator  output.Generator
}

type implUseCase struct {
	deps            Deps
	l               log.Logger
	metrics         *metrics.Metrics
	cache           *expirable.LRU[string, model.OrchestrationResult]
	capacity        int
	maxResponseTime time.Duration
	hits            atomic.Int64
	misses          atomic.Int64
	now             func() time.Time
}

var _ orchestrator.UseCase = (*implUseCase)(nil)

// New creates the query orchestrator with its own response cache.
func New(deps Deps, l log.Logger, opts orchestrator.Options) *implUseCase {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = orchestrator.DefaultCacheTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = orchestrator.DefaultCacheSize
	}
	if opts.MaxResponseTime <= 0 {
		opts.MaxResponseTime = orchestrator.DefaultMaxResponseTime
	}

	uc := &implUseCase{
		deps:            deps,
		l:               l,
		metrics:         opts.Metrics,
		capacity:        opts.CacheSize,
		maxResponseTime: opts.MaxResponseTime,
		now:             time.Now,
	}
	uc.cache = expirable.NewLRU[string, model.OrchestrationResult](opts.CacheSize, func(string, model.OrchestrationResult) {
		uc.metrics.CacheEvent(metrics.CacheResponse, metrics.EventEvict)
	}, opts.CacheTTL)
	return uc
}
