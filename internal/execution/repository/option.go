package repository

import "time"

// QueryRowsOptions selects rows of one database. Zero From/To leave that side open.
type QueryRowsOptions struct {
	DatabaseID string
	Columns    []string
	Limit      int
	From       time.Time
	To         time.Time
}

// AggregateOptions buckets one numeric column per period.
type AggregateOptions struct {
	DatabaseID string
	Metric     string
	Period     string
	From       time.Time
	To         time.Time
}

// SearchOptions finds passages of a workspace, optionally restricted to some pages.
type SearchOptions struct {
	WorkspaceID string
	Query       string
	Limit       int
	PageIDs     []string
}

// PageDocument is the full text of a page as it is indexed.
type PageDocument struct {
	ID      string
	Title   string
	Content string
}
