package postgre

import (
	"context"
	"encoding/json"
	"time"

	repo "workspace-query/internal/extractor/repository"
	"workspace-query/internal/model"
	"workspace-query/pkg/postgre"
)

const defaultPageLimit = 200

// GetWorkspace returns a zero value (ID == "") when the workspace does not exist.
func (r *implRepository) GetWorkspace(ctx context.Context, workspaceID string) (model.WorkspaceInfo, error) {
	const query = `
		SELECT w.id, w.name, w.updated_at,
			(SELECT COUNT(*) FROM workspace_members m WHERE m.workspace_id = w.id)
		FROM workspaces w
		WHERE w.id = $1`

	var ws model.WorkspaceInfo
	err := r.db.QueryRowContext(ctx, query, workspaceID).Scan(&ws.ID, &ws.Name, &ws.LastActivity, &ws.MemberCount)
	if postgre.IsNotFound(err) {
		return model.WorkspaceInfo{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetWorkspace"), err)
		return model.WorkspaceInfo{}, repo.ErrFailedToGet
	}
	return ws, nil
}

// ListDatabases returns every database of the workspace with its column summaries.
func (r *implRepository) ListDatabases(ctx context.Context, workspaceID string) ([]model.DatabaseInfo, error) {
	const query = `
		SELECT id, name, table_name, row_count, columns
		FROM databases
		WHERE workspace_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListDatabases"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var dbs []model.DatabaseInfo
	for rows.Next() {
		var (
			db      model.DatabaseInfo
			columns []byte
		)
		if err := rows.Scan(&db.ID, &db.Name, &db.TableName, &db.RowCount, &columns); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListDatabases"), err)
			return nil, repo.ErrFailedToList
		}
		if len(columns) > 0 {
			if err := json.Unmarshal(columns, &db.Columns); err != nil {
				r.l.Warnf(ctx, "%s: bad columns for database %s: %v", r.dsn("ListDatabases"), db.ID, err)
			}
		}
		dbs = append(dbs, db)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListDatabases"), err)
		return nil, repo.ErrFailedToList
	}
	return dbs, nil
}

// ListPages returns the most recently modified pages of the workspace.
func (r *implRepository) ListPages(ctx context.Context, opt repo.ListPagesOptions) ([]model.PageInfo, error) {
	const query = `
		SELECT id, title, COALESCE(excerpt, ''), updated_at, block_count
		FROM pages
		WHERE workspace_id = $1 AND archived = FALSE
		ORDER BY updated_at DESC
		LIMIT $2`

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	rows, err := r.db.QueryContext(ctx, query, opt.WorkspaceID, limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListPages"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var pages []model.PageInfo
	for rows.Next() {
		var p model.PageInfo
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.LastModified, &p.BlockCount); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListPages"), err)
			return nil, repo.ErrFailedToList
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListPages"), err)
		return nil, repo.ErrFailedToList
	}
	return pages, nil
}

// GetUser returns a zero value when the user does not exist.
func (r *implRepository) GetUser(ctx context.Context, userID string) (model.UserProfile, error) {
	const query = `SELECT id, name, COALESCE(email, ''), COALESCE(role, '') FROM users WHERE id = $1`

	var u model.UserProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if postgre.IsNotFound(err) {
		return model.UserProfile{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetUser"), err)
		return model.UserProfile{}, repo.ErrFailedToGet
	}
	return u, nil
}

// ListRecentDatabaseIDs returns databases the user opened since the given time, most recent first.
func (r *implRepository) ListRecentDatabaseIDs(ctx context.Context, userID string, since time.Time) ([]string, error) {
	const query = `
		SELECT database_id
		FROM database_access_log
		WHERE user_id = $1 AND accessed_at >= $2
		GROUP BY database_id
		ORDER BY MAX(accessed_at) DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListRecentDatabaseIDs"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, repo.ErrFailedToList
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
