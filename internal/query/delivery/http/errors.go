package http

import (
	"errors"
	"net/http"

	"workspace-query/internal/execution"
	"workspace-query/internal/orchestrator"
	pkgErrors "workspace-query/pkg/errors"
)

// mapError translates domain errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrEmptyQuery),
		errors.Is(err, orchestrator.ErrMissingWorkspace):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, execution.ErrIndexUnavailable):
		return pkgErrors.ErrServiceUnavailable
	default:
		return pkgErrors.ErrInternalServerError
	}
}
