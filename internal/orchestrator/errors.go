package orchestrator

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuery       = errors.New("query is empty")
	ErrMissingWorkspace = errors.New("workspace id is required")
	ErrPipelinePanic    = errors.New("pipeline panicked")
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
