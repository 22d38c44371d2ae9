package vector

import (
	"context"

	"workspace-query/internal/execution/repository"
	"workspace-query/pkg/log"
	"workspace-query/pkg/qdrant"
	"workspace-query/pkg/voyage"
)

// Store is the subset of the Qdrant client the repository uses.
type Store interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collection string, req qdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collection string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
	DeletePoints(ctx context.Context, collection string, req qdrant.DeletePointsRequest) error
}

type implRepository struct {
	store      Store
	embedder   voyage.Embedder
	collection string
	l          log.Logger
}

// New creates a new Qdrant-backed PassageRepository.
func New(store Store, embedder voyage.Embedder, collection string, l log.Logger) repository.PassageRepository {
	return &implRepository{
		store:      store,
		embedder:   embedder,
		collection: collection,
		l:          l,
	}
}
