package postgre

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	repo "workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
)

const (
	defaultSearchLimit = 10
	snippetChars       = 300
	minKeywordLen      = 3
)

// SearchPages is the keyword search used when no vector index is available.
// Any keyword of the query may match; results are ranked by ts_rank.
func (r *implRepository) SearchPages(ctx context.Context, opt repo.SearchOptions) ([]model.Passage, error) {
	terms := keywords(opt.Query)
	if len(terms) == 0 {
		return nil, nil
	}

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	args := []any{opt.WorkspaceID, strings.Join(terms, " | "), limit, snippetChars}
	query := `
		SELECT id, title, LEFT(COALESCE(NULLIF(content, ''), excerpt, ''), $4),
			ts_rank(to_tsvector('simple', title || ' ' || COALESCE(content, '')), to_tsquery('simple', $2)) AS score
		FROM pages
		WHERE workspace_id = $1 AND archived = FALSE
			AND to_tsvector('simple', title || ' ' || COALESCE(content, '')) @@ to_tsquery('simple', $2)`
	if len(opt.PageIDs) > 0 {
		placeholders := make([]string, len(opt.PageIDs))
		for i, id := range opt.PageIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += "\n\t\t\tAND id IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += "\n\t\tORDER BY score DESC, updated_at DESC\n\t\tLIMIT $3"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SearchPages"), err)
		return nil, repo.ErrFailedToSearch
	}
	defer rows.Close()

	var passages []model.Passage
	for rows.Next() {
		var p model.Passage
		if err := rows.Scan(&p.PageID, &p.Title, &p.Snippet, &p.Score); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("SearchPages"), err)
			return nil, repo.ErrFailedToSearch
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("SearchPages"), err)
		return nil, repo.ErrFailedToSearch
	}
	return passages, nil
}

// ListPageDocuments returns the full text of every live page of the workspace.
func (r *implRepository) ListPageDocuments(ctx context.Context, workspaceID string) ([]repo.PageDocument, error) {
	const query = `
		SELECT id, title, COALESCE(content, '')
		FROM pages
		WHERE workspace_id = $1 AND archived = FALSE
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListPageDocuments"), err)
		return nil, repo.ErrFailedToQuery
	}
	defer rows.Close()

	var docs []repo.PageDocument
	for rows.Next() {
		var d repo.PageDocument
		if err := rows.Scan(&d.ID, &d.Title, &d.Content); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListPageDocuments"), err)
			return nil, repo.ErrFailedToQuery
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListPageDocuments"), err)
		return nil, repo.ErrFailedToQuery
	}
	return docs, nil
}

// keywords lowercases the query and keeps distinct alphanumeric words long enough to search for.
func keywords(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := map[string]bool{}
	var out []string
	for _, f := range fields {
		if len([]rune(f)) < minKeywordLen || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
