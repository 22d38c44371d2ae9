package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"workspace-query/internal/extractor"
	"workspace-query/internal/intent"
	"workspace-query/internal/model"
	"workspace-query/internal/orchestrator"
	"workspace-query/internal/output"
	"workspace-query/pkg/log"
)

// run carries the state of one ProcessQuery call between stages.
type run struct {
	start    time.Time
	budget   time.Duration
	timings  model.StageTimings
	exceeded bool
	cls      *model.IntentClassification
	route    *model.RouteDecision
}

// ProcessQuery runs classify, extract+enrich, route, execute and generate+optimize.
// A cached answer for the same workspace and query short-circuits the pipeline.
func (uc *implUseCase) ProcessQuery(ctx context.Context, query, workspaceID, userID string, opts model.ProcessOptions) (result model.OrchestrationResult) {
	requestID := log.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = log.WithRequestID(ctx, requestID)
	}

	r := &run{start: uc.now(), budget: opts.MaxResponseTime}
	if r.budget <= 0 {
		r.budget = uc.maxResponseTime
	}

	defer func() {
		if p := recover(); p != nil {
			uc.l.Errorf(ctx, "%s: recovered from panic: %v", orchestrator.LogPrefixProcessQuery, p)
			result = uc.degraded(ctx, requestID, r, opts, fmt.Errorf("%w: %v", orchestrator.ErrPipelinePanic, p))
		}
	}()

	switch {
	case strings.TrimSpace(query) == "":
		return uc.degraded(ctx, requestID, r, opts, orchestrator.ErrEmptyQuery)
	case strings.TrimSpace(workspaceID) == "":
		return uc.degraded(ctx, requestID, r, opts, orchestrator.ErrMissingWorkspace)
	}

	key := cacheKey(workspaceID, query)
	if !opts.BypassCache {
		if cached, ok := uc.lookup(key); ok {
			uc.l.Infof(ctx, "%s: cache hit for %q", orchestrator.LogPrefixProcessQuery, query)
			return uc.fromCache(cached, requestID, r, opts)
		}
	}

	// Classification never fails.
	var cls model.IntentClassification
	uc.stage(r, model.StageClassification, func() {
		cls = uc.deps.Classifier.Classify(ctx, query, opts.Session)
	})
	r.cls = &cls
	uc.checkBudget(ctx, r, model.StageClassification)

	var qc model.QueryContext
	var err error
	uc.stage(r, model.StageContext, func() {
		qc, err = uc.deps.Extractor.Extract(ctx, extractor.ExtractInput{
			Query:          query,
			WorkspaceID:    workspaceID,
			UserID:         userID,
			Classification: cls,
		})
		if err == nil {
			qc = uc.deps.Extractor.Enrich(ctx, qc, cls)
		}
	})
	if err != nil {
		return uc.degraded(ctx, requestID, r, opts, &orchestrator.StageError{Stage: model.StageContext, Err: err})
	}

	var route model.RouteDecision
	uc.stage(r, model.StageRouting, func() {
		route = uc.deps.Router.DetermineRoute(ctx, query, cls, qc)
	})
	r.route = &route

	var resp model.QueryResponse
	uc.stage(r, model.StageExecution, func() {
		resp, err = uc.deps.Executor.Execute(ctx, model.ExecuteInput{
			Query:       query,
			WorkspaceID: workspaceID,
			UserID:      userID,
			Route:       route,
		})
	})
	if err != nil {
		return uc.degraded(ctx, requestID, r, opts, &orchestrator.StageError{Stage: model.StageExecution, Err: err})
	}

	var structured model.StructuredResponse
	uc.stage(r, model.StageGeneration, func() {
		structured = uc.deps.Generator.Generate(ctx, query, resp, output.GenerateInput{
			Classification: cls,
			Context:        qc,
			Route:          route,
		})
		structured = uc.deps.Generator.OptimizeForRendering(structured)
	})
	uc.checkBudget(ctx, r, model.StageGeneration)

	r.timings.Total = uc.now().Sub(r.start)
	result = model.OrchestrationResult{
		RequestID:      requestID,
		Success:        true,
		Response:       structured,
		Timings:        r.timings,
		BudgetExceeded: r.exceeded,
	}
	debug := uc.debugInfo(r, structured.Metadata.DataSources)
	if opts.IncludeDebug {
		result.Debug = debug
	}

	uc.metrics.RecordRequest(string(cls.Intent), string(route.Primary), true)
	uc.l.Infof(ctx, "%s: %q answered via %s in %s", orchestrator.LogPrefixProcessQuery, query, route.Primary, r.timings.Total)

	if !opts.BypassCache && shouldCache(cls, route) {
		// The entry always carries debug info; fromCache drops it when not asked for.
		entry := result
		entry.Debug = debug
		uc.cache.Add(key, entry)
	}
	return result
}

// stage times fn and records it under the stage name.
func (uc *implUseCase) stage(r *run, name string, fn func()) {
	start := uc.now()
	fn()
	d := uc.now().Sub(start)
	r.timings.Set(name, d)
	uc.metrics.ObserveStage(name, d)
}

// checkBudget flags the run once the elapsed time passes the budget. Stages are never aborted.
func (uc *implUseCase) checkBudget(ctx context.Context, r *run, after string) {
	if r.exceeded {
		return
	}
	if elapsed := uc.now().Sub(r.start); elapsed > r.budget {
		r.exceeded = true
		uc.metrics.BudgetExceeded()
		uc.l.Warnf(ctx, "%s: response budget %s exceeded after %s (%s)", orchestrator.LogPrefixProcessQuery, r.budget, after, elapsed)
	}
}

func (uc *implUseCase) fromCache(cached model.OrchestrationResult, requestID string, r *run, opts model.ProcessOptions) model.OrchestrationResult {
	cached.RequestID = requestID
	cached.Cached = true
	cached.BudgetExceeded = false
	cached.Timings = model.StageTimings{Total: uc.now().Sub(r.start)}
	if !opts.IncludeDebug {
		cached.Debug = nil
	}
	return cached
}

// degraded is the result of a failed run: a single rephrase block, the timings so far, nothing cached.
func (uc *implUseCase) degraded(ctx context.Context, requestID string, r *run, opts model.ProcessOptions, err error) model.OrchestrationResult {
	uc.l.Errorf(ctx, "%s: %v", orchestrator.LogPrefixProcessQuery, err)

	r.timings.Total = uc.now().Sub(r.start)
	result := model.OrchestrationResult{
		RequestID: requestID,
		Success:   false,
		Response: model.StructuredResponse{
			Blocks: []model.Block{model.NewTextBlock(orchestrator.MsgRephrase)},
		},
		Timings:        r.timings,
		BudgetExceeded: r.exceeded,
		Error:          err.Error(),
	}
	if opts.IncludeDebug && r.cls != nil {
		result.Debug = uc.debugInfo(r, nil)
	}

	var intentName, routeName string
	if r.cls != nil {
		intentName = string(r.cls.Intent)
	}
	if r.route != nil {
		routeName = string(r.route.Primary)
	}
	uc.metrics.RecordRequest(intentName, routeName, false)
	return result
}

func (uc *implUseCase) debugInfo(r *run, sources []string) *model.DebugInfo {
	cls := *r.cls
	d := &model.DebugInfo{
		Intent:                   cls.Intent,
		ClassificationConfidence: cls.Confidence,
		Entities:                 cls.Entities,
		DataSources:              sources,
		TimeRange:                uc.deps.Classifier.ExtractTimeRange(cls),
		RealTime:                 intent.IsRealTimeQuery(cls),
		Cacheable:                intent.IsCacheable(cls),
		DatabaseReferences:       intent.ExtractDatabaseReferences(cls),
	}
	if r.route != nil {
		d.Route = r.route.Primary
		d.RouteConfidence = r.route.Confidence
		d.Reasoning = r.route.Reasoning
		d.Parameters = r.route.Parameters
	}
	return d
}
