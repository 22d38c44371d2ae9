package datemath

import (
	"errors"
	"time"
)

// Range is an inclusive time window.
type Range struct {
	Start time.Time
	End   time.Time
}

// ErrUnknownRange is returned when a relative phrase cannot be resolved to a window.
var ErrUnknownRange = errors.New("unknown relative range")
