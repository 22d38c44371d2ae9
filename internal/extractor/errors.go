package extractor

import "errors"

// ErrWorkspaceNotFound aborts the pipeline; its text is shown to callers as is.
var ErrWorkspaceNotFound = errors.New("Workspace not found")
