package vector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
	"workspace-query/pkg/log"
	"workspace-query/pkg/qdrant"
	"workspace-query/pkg/voyage"
)

type fakeEmbedder struct {
	err   error
	calls []voyage.InputType
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string, inputType voyage.InputType) ([][]float32, error) {
	f.calls = append(f.calls, inputType)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1, 0}
	}
	return out, nil
}

type fakeStore struct {
	exists   bool
	created  []qdrant.CreateCollectionRequest
	upserted []qdrant.Point
	deleted  []qdrant.DeletePointsRequest
	searched qdrant.SearchRequest
	result   []qdrant.ScoredPoint
	err      error
}

func (f *fakeStore) CollectionExists(context.Context, string) (bool, error) { return f.exists, nil }

func (f *fakeStore) CreateCollection(_ context.Context, req qdrant.CreateCollectionRequest) error {
	f.created = append(f.created, req)
	f.exists = true
	return nil
}

func (f *fakeStore) UpsertPoints(_ context.Context, _ string, req qdrant.UpsertPointsRequest) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, req.Points...)
	return nil
}

func (f *fakeStore) SearchPoints(_ context.Context, _ string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error) {
	f.searched = req
	if f.err != nil {
		return nil, f.err
	}
	return &qdrant.SearchResponse{Result: f.result}, nil
}

func (f *fakeStore) DeletePoints(_ context.Context, _ string, req qdrant.DeletePointsRequest) error {
	f.deleted = append(f.deleted, req)
	return nil
}

func TestSearch(t *testing.T) {
	store := &fakeStore{result: []qdrant.ScoredPoint{
		{ID: "a", Score: 0.9, Payload: map[string]any{"page_id": "p-1", "title": "Auth", "text": "Tokens rotate daily."}},
		{ID: "b", Score: 0.5, Payload: map[string]any{"title": "orphan"}},
	}}
	emb := &fakeEmbedder{}
	r := New(store, emb, "pages", log.NewNop())

	got, err := r.Search(context.Background(), repo.SearchOptions{
		WorkspaceID: "ws-1", Query: "how does auth work", Limit: 3, PageIDs: []string{"p-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, []model.Passage{{PageID: "p-1", Title: "Auth", Snippet: "Tokens rotate daily.", Score: 0.9}}, got)
	assert.Equal(t, []voyage.InputType{voyage.InputQuery}, emb.calls)
	assert.Equal(t, 3, store.searched.Limit)
	require.NotNil(t, store.searched.Filter)
	assert.Equal(t, []qdrant.Condition{
		{Key: "workspace_id", Match: qdrant.Match{Value: "ws-1"}},
		{Key: "page_id", Match: qdrant.Match{Any: []any{"p-1"}}},
	}, store.searched.Filter.Must)
}

func TestSearch_Errors(t *testing.T) {
	r := New(&fakeStore{}, &fakeEmbedder{err: errors.New("quota")}, "pages", log.NewNop())
	_, err := r.Search(context.Background(), repo.SearchOptions{WorkspaceID: "ws-1", Query: "x"})
	assert.ErrorIs(t, err, repo.ErrFailedToSearch)

	r = New(&fakeStore{err: errors.New("down")}, &fakeEmbedder{}, "pages", log.NewNop())
	_, err = r.Search(context.Background(), repo.SearchOptions{WorkspaceID: "ws-1", Query: "x"})
	assert.ErrorIs(t, err, repo.ErrFailedToSearch)
}

func TestIndex(t *testing.T) {
	store := &fakeStore{}
	r := New(store, &fakeEmbedder{}, "pages", log.NewNop())

	n, err := r.Index(context.Background(), "ws-1", []repo.PageDocument{
		{ID: "p-1", Title: "Auth", Content: "Tokens rotate daily.\n\nSessions last an hour."},
		{ID: "p-2", Title: "Empty"},
		{ID: "p-3"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.created, 1)
	assert.Equal(t, 3, store.created[0].Vectors.Size)
	require.Len(t, store.deleted, 1)
	assert.Len(t, store.deleted[0].Filter.Must[0].Match.Any, 3)
	require.Len(t, store.upserted, 2)
	assert.Equal(t, qdrant.PointID("p-1#0"), store.upserted[0].ID)
	assert.Equal(t, "ws-1", store.upserted[0].Payload["workspace_id"])
	assert.Equal(t, "Tokens rotate daily.\n\nSessions last an hour.", store.upserted[0].Payload["text"])
	assert.Equal(t, "Empty", store.upserted[1].Payload["text"])
}

func TestIndex_NothingToIndex(t *testing.T) {
	store := &fakeStore{}
	n, err := New(store, &fakeEmbedder{}, "pages", log.NewNop()).Index(context.Background(), "ws-1", nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, store.created)
}

func TestSplitPassages(t *testing.T) {
	long := strings.Repeat("word ", 30)

	tests := []struct {
		name    string
		title   string
		content string
		limit   int
		want    int
	}{
		{name: "title only", title: "T", want: 1},
		{name: "nothing", want: 0},
		{name: "packs short paragraphs", content: "a\n\nb\n\nc", limit: 100, want: 1},
		{name: "splits when full", content: "aaaa\n\nbbbb", limit: 6, want: 2},
		{name: "cuts long paragraph on spaces", content: long, limit: 40, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPassages(tt.title, tt.content, tt.limit)
			assert.Len(t, got, tt.want)
			for _, p := range got {
				if tt.limit > 0 {
					assert.LessOrEqual(t, len(p), tt.limit)
				}
			}
		})
	}
}
