package repository

import "errors"

var (
	ErrFailedToGet    = errors.New("failed to get")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToSearch = errors.New("failed to search")
	ErrFailedToIndex  = errors.New("failed to index")
	ErrInvalidPeriod  = errors.New("invalid aggregation period")
)
