package usecase

import (
	"context"
	"fmt"

	"workspace-query/internal/execution"
	"workspace-query/internal/model"
)

// Execute dispatches to the handler of the primary route and fills the response metadata.
func (uc *implUseCase) Execute(ctx context.Context, input model.ExecuteInput) (model.QueryResponse, error) {
	start := uc.now()

	var (
		resp model.QueryResponse
		err  error
	)
	switch input.Route.Primary {
	case model.RouteDatabaseQuery:
		resp, err = uc.database(ctx, input)
	case model.RouteRAGSearch:
		resp, err = uc.rag(ctx, input)
	case model.RouteAnalyticsQuery:
		resp, err = uc.analytics(ctx, input)
	case model.RouteHybridQuery:
		resp, err = uc.hybrid(ctx, input)
	case model.RouteActionHandler:
		resp, err = uc.action(input)
	case model.RouteFallback:
		resp, err = uc.fallback(input)
	default:
		err = fmt.Errorf("%w: %q", execution.ErrUnsupportedRoute, input.Route.Primary)
	}
	if err != nil {
		uc.l.Errorf(ctx, "%s: route %s failed: %v", execution.LogPrefixExecute, input.Route.Primary, err)
		return model.QueryResponse{}, err
	}

	resp.Metadata.Confidence = input.Route.Confidence
	resp.Metadata.ProcessingTime = uc.now().Sub(start)
	uc.l.Debugf(ctx, "%s: route %s answered from %s in %s",
		execution.LogPrefixExecute, input.Route.Primary, resp.Metadata.Source, resp.Metadata.ProcessingTime)
	return resp, nil
}

func intPtr(n int) *int {
	return &n
}
