package postgre

import (
	"database/sql"
	"fmt"

	"workspace-query/internal/execution/repository"
	"workspace-query/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed RowRepository.
func New(db *sql.DB, l log.Logger) repository.RowRepository {
	if db == nil {
		panic("execution/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("execution/repository/postgre.%s", method)
}
