package execution

import "errors"

var (
	ErrUnsupportedRoute = errors.New("unsupported route")
	ErrMissingParams    = errors.New("route parameters missing")
	ErrDatabaseNotFound = errors.New("database not found")
	ErrNoNumericColumn  = errors.New("database has no numeric column")
)

// ErrIndexUnavailable is returned when no passage index is configured.
var ErrIndexUnavailable = errors.New("passage index not configured")
