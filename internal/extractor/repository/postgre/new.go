package postgre

import (
	"database/sql"
	"fmt"

	"workspace-query/internal/extractor/repository"
	"workspace-query/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed CatalogRepository.
func New(db *sql.DB, l log.Logger) repository.CatalogRepository {
	if db == nil {
		panic("extractor/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("extractor/repository/postgre.%s", method)
}
