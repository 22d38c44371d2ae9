package usecase

import (
	"context"
	"fmt"

	"workspace-query/internal/execution"
	"workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
)

func (uc *implUseCase) rag(ctx context.Context, input model.ExecuteInput) (model.QueryResponse, error) {
	opt := repository.SearchOptions{
		WorkspaceID: input.WorkspaceID,
		Query:       input.Query,
		Limit:       uc.maxResults,
	}
	if p := input.Route.Parameters.RAG; p != nil {
		if p.MaxResults > 0 {
			opt.Limit = p.MaxResults
		}
		opt.PageIDs = p.PageIDs
	}

	passages, err := uc.searchPassages(ctx, opt)
	if err != nil {
		return model.QueryResponse{}, err
	}
	return contentResponse(passages), nil
}

// searchPassages prefers the semantic index and falls back to keyword search when it is
// missing or failing.
func (uc *implUseCase) searchPassages(ctx context.Context, opt repository.SearchOptions) ([]model.Passage, error) {
	if uc.passages != nil {
		passages, err := uc.passages.Search(ctx, opt)
		if err == nil {
			return truncatePassages(passages, opt.Limit), nil
		}
		uc.l.Warnf(ctx, "%s: semantic search failed, using keyword search: %v", execution.LogPrefixExecute, err)
	}

	passages, err := uc.rows.SearchPages(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}
	return truncatePassages(passages, opt.Limit), nil
}

func truncatePassages(passages []model.Passage, limit int) []model.Passage {
	if limit > 0 && len(passages) > limit {
		return passages[:limit]
	}
	return passages
}

func contentResponse(passages []model.Passage) model.QueryResponse {
	content := &model.ContentData{Passages: passages}
	if len(passages) == 0 {
		content.Text = execution.MsgNoPassages
	}
	return model.QueryResponse{
		Type: model.ResponseTypeContent,
		Data: model.ResponseData{Content: content},
		Metadata: model.ExecutionMetadata{
			Source:   execution.SourcePages,
			RowCount: intPtr(len(passages)),
		},
	}
}
