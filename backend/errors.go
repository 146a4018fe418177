package backend

import (
	"fmt"
	"strings"
)

// UnavailableError indicates no provider extension could be bound at all:
// nothing was discovered, or both communication strategies failed to
// construct. Fatal for the current request.
type UnavailableError struct {
	Reasons []string
}

func (e *UnavailableError) Error() string {
	if len(e.Reasons) == 0 {
		return "content service unreachable"
	}
	return "content service unreachable: " + strings.Join(e.Reasons, "; ")
}

// OpError indicates a bound adapter returned a malformed, error-flagged, or
// type-mismatched payload. Fatal for the current operation only; the selected
// strategy remains valid.
type OpError struct {
	Op     string
	Reason string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("backend %s: %s", e.Op, e.Reason)
}

func opErrorf(op, format string, args ...any) *OpError {
	return &OpError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
