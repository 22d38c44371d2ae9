package vector

import (
	"context"
	"fmt"
	"strings"

	repo "workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
	"workspace-query/pkg/qdrant"
	"workspace-query/pkg/voyage"
)

// Payload keys stored on every point.
const (
	keyWorkspaceID = "workspace_id"
	keyPageID      = "page_id"
	keyTitle       = "title"
	keyText        = "text"
)

const (
	distanceCosine  = "Cosine"
	maxChunkChars   = 1200
	embedBatchSize  = 64
	defaultMaxLimit = 10
)

// Search embeds the query and returns the closest passages of the workspace.
func (r *implRepository) Search(ctx context.Context, opt repo.SearchOptions) ([]model.Passage, error) {
	vectors, err := r.embedder.Embed(ctx, []string{opt.Query}, voyage.InputQuery)
	if err != nil || len(vectors) == 0 {
		r.l.Errorf(ctx, "vector repository: failed to embed query: %v", err)
		return nil, fmt.Errorf("%w: embed query: %v", repo.ErrFailedToSearch, err)
	}

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultMaxLimit
	}

	filter := &qdrant.Filter{Must: []qdrant.Condition{
		{Key: keyWorkspaceID, Match: qdrant.Match{Value: opt.WorkspaceID}},
	}}
	if len(opt.PageIDs) > 0 {
		ids := make([]any, len(opt.PageIDs))
		for i, id := range opt.PageIDs {
			ids[i] = id
		}
		filter.Must = append(filter.Must, qdrant.Condition{Key: keyPageID, Match: qdrant.Match{Any: ids}})
	}

	resp, err := r.store.SearchPoints(ctx, r.collection, qdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       limit,
		WithPayload: true,
		Filter:      filter,
	})
	if err != nil {
		r.l.Errorf(ctx, "vector repository: failed to search: %v", err)
		return nil, fmt.Errorf("%w: %v", repo.ErrFailedToSearch, err)
	}

	passages := make([]model.Passage, 0, len(resp.Result))
	for _, p := range resp.Result {
		pageID := p.String(keyPageID)
		if pageID == "" {
			r.l.Warnf(ctx, "vector repository: point %s has no page_id", p.ID)
			continue
		}
		passages = append(passages, model.Passage{
			PageID:  pageID,
			Title:   p.String(keyTitle),
			Snippet: p.String(keyText),
			Score:   p.Score,
		})
	}
	return passages, nil
}

// Index replaces the passages of docs in the collection and returns how many points were written.
func (r *implRepository) Index(ctx context.Context, workspaceID string, docs []repo.PageDocument) (int, error) {
	type chunk struct {
		pageID, title, text string
		n                   int
	}

	var chunks []chunk
	for _, d := range docs {
		for i, text := range splitPassages(d.Title, d.Content, maxChunkChars) {
			chunks = append(chunks, chunk{pageID: d.ID, title: d.Title, text: text, n: i})
		}
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	written := 0
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.title + "\n" + c.text
		}
		vectors, err := r.embedder.Embed(ctx, texts, voyage.InputDocument)
		if err != nil {
			r.l.Errorf(ctx, "vector repository: failed to embed passages: %v", err)
			return written, fmt.Errorf("%w: embed: %v", repo.ErrFailedToIndex, err)
		}
		if len(vectors) != len(batch) {
			return written, fmt.Errorf("%w: got %d vectors for %d passages", repo.ErrFailedToIndex, len(vectors), len(batch))
		}

		if start == 0 {
			if err := r.ensureCollection(ctx, len(vectors[0])); err != nil {
				return 0, err
			}
			if err := r.deletePages(ctx, docs); err != nil {
				return 0, err
			}
		}

		points := make([]qdrant.Point, len(batch))
		for i, c := range batch {
			points[i] = qdrant.Point{
				ID:     qdrant.PointID(fmt.Sprintf("%s#%d", c.pageID, c.n)),
				Vector: vectors[i],
				Payload: map[string]any{
					keyWorkspaceID: workspaceID,
					keyPageID:      c.pageID,
					keyTitle:       c.title,
					keyText:        c.text,
				},
			}
		}
		if err := r.store.UpsertPoints(ctx, r.collection, qdrant.UpsertPointsRequest{Points: points}); err != nil {
			r.l.Errorf(ctx, "vector repository: failed to upsert passages: %v", err)
			return written, fmt.Errorf("%w: upsert: %v", repo.ErrFailedToIndex, err)
		}
		written += len(points)
	}

	r.l.Infof(ctx, "vector repository: indexed %d passages of %d pages in workspace %s", written, len(docs), workspaceID)
	return written, nil
}

// deletePages drops the previous passages of docs so shrunk pages leave no stale chunks.
func (r *implRepository) deletePages(ctx context.Context, docs []repo.PageDocument) error {
	ids := make([]any, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	err := r.store.DeletePoints(ctx, r.collection, qdrant.DeletePointsRequest{
		Filter: &qdrant.Filter{Must: []qdrant.Condition{{Key: keyPageID, Match: qdrant.Match{Any: ids}}}},
	})
	if err != nil {
		r.l.Errorf(ctx, "vector repository: failed to delete old passages: %v", err)
		return fmt.Errorf("%w: delete: %v", repo.ErrFailedToIndex, err)
	}
	return nil
}

func (r *implRepository) ensureCollection(ctx context.Context, size int) error {
	exists, err := r.store.CollectionExists(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("%w: check collection: %v", repo.ErrFailedToIndex, err)
	}
	if exists {
		return nil
	}
	err = r.store.CreateCollection(ctx, qdrant.CreateCollectionRequest{
		Name:    r.collection,
		Vectors: qdrant.VectorConfig{Size: size, Distance: distanceCosine},
	})
	if err != nil {
		return fmt.Errorf("%w: create collection: %v", repo.ErrFailedToIndex, err)
	}
	r.l.Infof(ctx, "vector repository: created collection %s (size=%d)", r.collection, size)
	return nil
}

// splitPassages cuts content on blank lines and packs paragraphs into chunks of at most limit bytes.
// A page without content is indexed by its title alone.
func splitPassages(title, content string, limit int) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		if strings.TrimSpace(title) == "" {
			return nil
		}
		return []string{title}
	}

	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for len(para) > limit {
			flush()
			cut := strings.LastIndex(para[:limit], " ")
			if cut <= 0 {
				cut = limit
			}
			out = append(out, strings.TrimSpace(para[:cut]))
			para = strings.TrimSpace(para[cut:])
		}
		if cur.Len() > 0 && cur.Len()+2+len(para) > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(para)
	}
	flush()
	return out
}
