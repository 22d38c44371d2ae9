package llmprovider

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAuthentication indicates the provider rejected the credentials
	ErrAuthentication = errors.New("authentication failed")

	// ErrModelNotFound indicates the provider does not serve the configured model
	ErrModelNotFound = errors.New("model not found")

	// ErrProviderTimeout indicates a provider request timed out
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderRateLimited indicates rate limit exceeded
	ErrProviderRateLimited = errors.New("provider rate limited")

	// ErrEmptyResponse indicates the provider answered without any content
	ErrEmptyResponse = errors.New("empty response")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether another attempt could succeed.
// Authentication, unknown-model and malformed-input failures never do.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrModelNotFound) || errors.Is(err, ErrInvalidRequest) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
