package execution

// Options tunes the executor. Zero values fall back to defaults.
type Options struct {
	RowLimit   int
	MaxResults int
}
