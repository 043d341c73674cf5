package entities

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable is the sentinel wrapped into a catalog search error
// once the engine's single reconnect-and-retry attempt has also failed
// (spec.md §7 "CatalogUnavailable"). Align treats this as an empty candidate
// pool rather than a fatal error, so the prediction still lands a complete
// Stage 0 telemetry record instead of being silently dropped.
var ErrCatalogUnavailable = errors.New("catalog_unavailable")

// InvariantViolation is the one error class the engine itself raises
// (spec.md §7) — a failed §4.7 telemetry assertion. It is fatal at the
// batch level: callers must not emit a partial AlignmentResult for it.
type InvariantViolation struct {
	msg string
}

func (e *InvariantViolation) Error() string { return e.msg }

func errInvariant(format string, args ...interface{}) error {
	return &InvariantViolation{msg: fmt.Sprintf(format, args...)}
}

// NewInvariantViolation builds an InvariantViolation outside this package
// (used by resultbuilder for assertions that need cross-package context).
func NewInvariantViolation(format string, args ...interface{}) error {
	return errInvariant(format, args...)
}
