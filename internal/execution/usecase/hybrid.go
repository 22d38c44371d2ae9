package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"workspace-query/internal/execution"
	"workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
)

// hybrid reads rows and passages concurrently. One failing side is tolerated;
// the route only fails when both do.
func (uc *implUseCase) hybrid(ctx context.Context, input model.ExecuteInput) (model.QueryResponse, error) {
	p := input.Route.Parameters.Hybrid
	if p == nil {
		return model.QueryResponse{}, fmt.Errorf("%w: hybrid_query needs parameters", execution.ErrMissingParams)
	}

	var (
		table             *model.TableData
		passages          []model.Passage
		tableErr, pageErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	if len(p.DatabaseIDs) > 0 {
		g.Go(func() error {
			t, err := uc.queryRows(gctx, p.DatabaseIDs[0], p.Limit, nil)
			if err != nil {
				tableErr = err
				return nil
			}
			table = &t
			return nil
		})
	}
	g.Go(func() error {
		limit := p.MaxResults
		if limit <= 0 {
			limit = uc.maxResults
		}
		passages, pageErr = uc.searchPassages(gctx, repository.SearchOptions{
			WorkspaceID: input.WorkspaceID,
			Query:       input.Query,
			Limit:       limit,
			PageIDs:     p.PageIDs,
		})
		return nil
	})
	_ = g.Wait()

	if pageErr != nil && (tableErr != nil || len(p.DatabaseIDs) == 0) {
		return model.QueryResponse{}, errors.Join(tableErr, pageErr)
	}
	if tableErr != nil {
		uc.l.Warnf(ctx, "%s: hybrid continues without rows: %v", execution.LogPrefixExecute, tableErr)
	}
	if pageErr != nil {
		uc.l.Warnf(ctx, "%s: hybrid continues without passages: %v", execution.LogPrefixExecute, pageErr)
	}

	content := &model.ContentData{Passages: passages}
	if len(passages) == 0 {
		content.Text = execution.MsgHybridNoContent
	}
	count := len(passages)
	if table != nil {
		count += len(table.Rows)
	}
	return model.QueryResponse{
		Type: model.ResponseTypeHybrid,
		Data: model.ResponseData{Table: table, Content: content},
		Metadata: model.ExecutionMetadata{
			Source:   execution.SourceHybrid,
			RowCount: intPtr(count),
		},
	}, nil
}
