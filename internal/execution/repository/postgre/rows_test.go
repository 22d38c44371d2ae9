package postgre

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
	"workspace-query/pkg/log"
)

func newMockRepo(t *testing.T) (repo.RowRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, log.NewNop()), mock
}

func TestGetDatabase(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM databases WHERE id`).
		WithArgs("db-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "table_name", "row_count", "columns"}).
			AddRow("db-1", "Sales", "sales", 40, []byte(`[{"name":"amount","type":"currency"}]`)))

	db, err := r.GetDatabase(context.Background(), "db-1")

	require.NoError(t, err)
	assert.Equal(t, "Sales", db.Name)
	assert.Equal(t, []model.ColumnSummary{{Name: "amount", Type: model.ColumnCurrency}}, db.Columns)
}

func TestGetDatabase_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM databases WHERE id`).WillReturnError(sql.ErrNoRows)

	db, err := r.GetDatabase(context.Background(), "missing")

	require.NoError(t, err)
	assert.Empty(t, db.ID)
}

func TestQueryRows(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		opt     repo.QueryRowsOptions
		args    []driver.Value
		wantCol []string
		wantRow [][]any
	}{
		{
			name:    "projects onto the requested columns",
			opt:     repo.QueryRowsOptions{DatabaseID: "db-1", Columns: []string{"title", "points"}, Limit: 2, From: from},
			args:    []driver.Value{"db-1", sql.NullTime{Time: from, Valid: true}, sql.NullTime{}, 2},
			wantCol: []string{"title", "points"},
			wantRow: [][]any{{"Login", float64(3)}, {"Signup", nil}},
		},
		{
			name:    "derives sorted columns and default limit",
			opt:     repo.QueryRowsOptions{DatabaseID: "db-1"},
			args:    []driver.Value{"db-1", sql.NullTime{}, sql.NullTime{}, defaultRowLimit},
			wantCol: []string{"points", "title"},
			wantRow: [][]any{{float64(3), "Login"}, {nil, "Signup"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := newMockRepo(t)
			mock.ExpectQuery(`FROM database_rows`).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"data"}).
					AddRow([]byte(`{"title":"Login","points":3}`)).
					AddRow([]byte(`{broken`)).
					AddRow([]byte(`{"title":"Signup"}`)))

			table, err := r.QueryRows(context.Background(), tt.opt)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCol, table.Columns)
			assert.Equal(t, tt.wantRow, table.Rows)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQueryRows_Empty(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM database_rows`).WillReturnRows(sqlmock.NewRows([]string{"data"}))

	table, err := r.QueryRows(context.Background(), repo.QueryRowsOptions{DatabaseID: "db-1", Columns: []string{"a"}})

	require.NoError(t, err)
	assert.NotNil(t, table.Rows)
	assert.Empty(t, table.Rows)
}

func TestQueryRows_DriverError(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM database_rows`).WillReturnError(errors.New("timeout"))

	_, err := r.QueryRows(context.Background(), repo.QueryRowsOptions{DatabaseID: "db-1"})

	assert.ErrorIs(t, err, repo.ErrFailedToQuery)
}

func TestAggregate(t *testing.T) {
	r, mock := newMockRepo(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`date_trunc\(\$2, created_at\)`).
		WithArgs("db-1", "month", "amount", sql.NullTime{Time: from, Valid: true}, sql.NullTime{Time: to, Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "sum", "avg", "count"}).
			AddRow("2024-01-01", 120.0, 40.0, 3).
			AddRow("2024-02-01", 50.0, 50.0, 1))

	data, err := r.Aggregate(context.Background(), repo.AggregateOptions{
		DatabaseID: "db-1", Metric: "amount", Period: "month", From: from, To: to,
	})

	require.NoError(t, err)
	assert.Equal(t, model.AnalyticsData{
		Metric:  "amount",
		Labels:  []string{"2024-01-01", "2024-02-01"},
		Sum:     []float64{120, 50},
		Average: []float64{40, 50},
		Count:   []float64{3, 1},
	}, data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregate_InvalidPeriod(t *testing.T) {
	r, _ := newMockRepo(t)

	_, err := r.Aggregate(context.Background(), repo.AggregateOptions{DatabaseID: "db-1", Period: "hour; DROP"})

	assert.ErrorIs(t, err, repo.ErrInvalidPeriod)
}
