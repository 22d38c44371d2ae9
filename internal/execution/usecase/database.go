package usecase

import (
	"context"
	"fmt"
	"time"

	"workspace-query/internal/execution"
	"workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
)

// database reads rows of the most relevant database. An empty result falls through
// to the secondary content search when the router proposed one.
func (uc *implUseCase) database(ctx context.Context, input model.ExecuteInput) (model.QueryResponse, error) {
	p := input.Route.Parameters.Database
	if p == nil || len(p.DatabaseIDs) == 0 {
		return model.QueryResponse{}, fmt.Errorf("%w: database_query needs database ids", execution.ErrMissingParams)
	}

	table, err := uc.queryRows(ctx, p.DatabaseIDs[0], p.Limit, p.TimeRange)
	if err != nil {
		return model.QueryResponse{}, err
	}

	if len(table.Rows) == 0 && input.Route.Secondary == model.RouteRAGSearch {
		passages, err := uc.searchPassages(ctx, repository.SearchOptions{
			WorkspaceID: input.WorkspaceID,
			Query:       input.Query,
			Limit:       uc.maxResults,
		})
		if err == nil && len(passages) > 0 {
			uc.l.Infof(ctx, "%s: no rows in %s, answered from %d passages", execution.LogPrefixExecute, p.DatabaseIDs[0], len(passages))
			return contentResponse(passages), nil
		}
	}

	return model.QueryResponse{
		Type: model.ResponseTypeData,
		Data: model.ResponseData{Table: &table},
		Metadata: model.ExecutionMetadata{
			Source:   execution.SourceDatabase,
			RowCount: intPtr(len(table.Rows)),
		},
	}, nil
}

func (uc *implUseCase) queryRows(ctx context.Context, databaseID string, limit int, window *model.TimeWindow) (model.TableData, error) {
	db, err := uc.rows.GetDatabase(ctx, databaseID)
	if err != nil {
		return model.TableData{}, fmt.Errorf("get database %s: %w", databaseID, err)
	}
	if db.ID == "" {
		return model.TableData{}, fmt.Errorf("%w: %s", execution.ErrDatabaseNotFound, databaseID)
	}

	if limit <= 0 || limit > uc.rowLimit {
		limit = uc.rowLimit
	}
	columns := make([]string, 0, len(db.Columns))
	for _, c := range db.Columns {
		columns = append(columns, c.Name)
	}
	from, to := bounds(window)

	table, err := uc.rows.QueryRows(ctx, repository.QueryRowsOptions{
		DatabaseID: db.ID,
		Columns:    columns,
		Limit:      limit,
		From:       from,
		To:         to,
	})
	if err != nil {
		return model.TableData{}, fmt.Errorf("query rows of %s: %w", databaseID, err)
	}
	if table.Rows == nil {
		table.Rows = [][]any{}
	}
	return table, nil
}

func bounds(w *model.TimeWindow) (time.Time, time.Time) {
	if w == nil {
		return time.Time{}, time.Time{}
	}
	return w.Start, w.End
}
