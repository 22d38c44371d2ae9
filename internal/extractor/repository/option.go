package repository

// ListPagesOptions holds filter parameters for listing pages of a workspace.
type ListPagesOptions struct {
	WorkspaceID string
	Limit       int
}
