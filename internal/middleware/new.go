package middleware

import (
	"workspace-query/pkg/log"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

// Config configures the HTTP middlewares.
type Config struct {
	RequestsPerMin int
}

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New builds the middleware set. A non-positive RequestsPerMin disables rate limiting.
func New(l log.Logger, cfg Config) Middleware {
	m := Middleware{l: l}
	if cfg.RequestsPerMin > 0 {
		m.limiter = newRateLimiter(cfg.RequestsPerMin)
	}
	return m
}
