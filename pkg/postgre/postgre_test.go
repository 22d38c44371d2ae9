package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no rows", sql.ErrNoRows, true},
		{"wrapped no rows", fmt.Errorf("get: %w", sql.ErrNoRows), true},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, true},
		{"other pg error", &pgconn.PgError{Code: "23505"}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestConnect_RequiresDSN(t *testing.T) {
	_, err := Connect(context.Background(), Options{})
	assert.Error(t, err)
}
