package repository

import (
	"context"

	"workspace-query/internal/model"
)

// RowRepository reads workspace database rows and page documents.
type RowRepository interface {
	// GetDatabase returns a zero value (ID == "") when the database does not exist.
	GetDatabase(ctx context.Context, databaseID string) (model.DatabaseInfo, error)
	QueryRows(ctx context.Context, opt QueryRowsOptions) (model.TableData, error)
	Aggregate(ctx context.Context, opt AggregateOptions) (model.AnalyticsData, error)
	SearchPages(ctx context.Context, opt SearchOptions) ([]model.Passage, error)
	ListPageDocuments(ctx context.Context, workspaceID string) ([]PageDocument, error)
}

// PassageRepository searches and indexes page passages by meaning.
type PassageRepository interface {
	Search(ctx context.Context, opt SearchOptions) ([]model.Passage, error)
	Index(ctx context.Context, workspaceID string, docs []PageDocument) (int, error)
}
