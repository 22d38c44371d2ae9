package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	repo "workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
	"workspace-query/pkg/postgre"
)

const defaultRowLimit = 100

var validPeriods = map[string]bool{"day": true, "week": true, "month": true}

// GetDatabase returns a zero value (ID == "") when the database does not exist.
func (r *implRepository) GetDatabase(ctx context.Context, databaseID string) (model.DatabaseInfo, error) {
	const query = `SELECT id, name, table_name, row_count, columns FROM databases WHERE id = $1`

	var (
		db      model.DatabaseInfo
		columns []byte
	)
	err := r.db.QueryRowContext(ctx, query, databaseID).Scan(&db.ID, &db.Name, &db.TableName, &db.RowCount, &columns)
	if postgre.IsNotFound(err) {
		return model.DatabaseInfo{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetDatabase"), err)
		return model.DatabaseInfo{}, repo.ErrFailedToGet
	}
	if len(columns) > 0 {
		if err := json.Unmarshal(columns, &db.Columns); err != nil {
			r.l.Warnf(ctx, "%s: bad columns for database %s: %v", r.dsn("GetDatabase"), db.ID, err)
		}
	}
	return db, nil
}

// QueryRows returns the newest rows of a database, projected onto opt.Columns.
// Without columns the keys of the returned rows are used, sorted.
func (r *implRepository) QueryRows(ctx context.Context, opt repo.QueryRowsOptions) (model.TableData, error) {
	const query = `
		SELECT data
		FROM database_rows
		WHERE database_id = $1
			AND ($2::timestamptz IS NULL OR created_at >= $2)
			AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4`

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultRowLimit
	}

	rows, err := r.db.QueryContext(ctx, query, opt.DatabaseID, nullTime(opt.From), nullTime(opt.To), limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("QueryRows"), err)
		return model.TableData{}, repo.ErrFailedToQuery
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("QueryRows"), err)
			return model.TableData{}, repo.ErrFailedToQuery
		}
		rec := map[string]any{}
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.l.Warnf(ctx, "%s: skipping malformed row of %s: %v", r.dsn("QueryRows"), opt.DatabaseID, err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("QueryRows"), err)
		return model.TableData{}, repo.ErrFailedToQuery
	}

	columns := opt.Columns
	if len(columns) == 0 {
		columns = keysOf(records)
	}

	table := model.TableData{Columns: columns, Rows: make([][]any, 0, len(records))}
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = rec[c]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Aggregate buckets opt.Metric per period. Non-numeric values count as rows but not in sum and average.
func (r *implRepository) Aggregate(ctx context.Context, opt repo.AggregateOptions) (model.AnalyticsData, error) {
	if !validPeriods[opt.Period] {
		return model.AnalyticsData{}, repo.ErrInvalidPeriod
	}

	const query = `
		SELECT to_char(date_trunc($2, created_at), 'YYYY-MM-DD') AS bucket,
			COALESCE(SUM(v), 0), COALESCE(AVG(v), 0), COUNT(*)
		FROM (
			SELECT created_at,
				CASE WHEN data->>$3 ~ '^-?[0-9]+(\.[0-9]+)?$' THEN (data->>$3)::double precision END AS v
			FROM database_rows
			WHERE database_id = $1
				AND ($4::timestamptz IS NULL OR created_at >= $4)
				AND ($5::timestamptz IS NULL OR created_at <= $5)
		) r
		GROUP BY bucket
		ORDER BY bucket`

	rows, err := r.db.QueryContext(ctx, query, opt.DatabaseID, opt.Period, opt.Metric, nullTime(opt.From), nullTime(opt.To))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Aggregate"), err)
		return model.AnalyticsData{}, repo.ErrFailedToQuery
	}
	defer rows.Close()

	out := model.AnalyticsData{Metric: opt.Metric}
	for rows.Next() {
		var (
			label    string
			sum, avg float64
			count    int64
		)
		if err := rows.Scan(&label, &sum, &avg, &count); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("Aggregate"), err)
			return model.AnalyticsData{}, repo.ErrFailedToQuery
		}
		out.Labels = append(out.Labels, label)
		out.Sum = append(out.Sum, sum)
		out.Average = append(out.Average, avg)
		out.Count = append(out.Count, float64(count))
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("Aggregate"), err)
		return model.AnalyticsData{}, repo.ErrFailedToQuery
	}
	return out, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func keysOf(records []map[string]any) []string {
	seen := map[string]bool{}
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
