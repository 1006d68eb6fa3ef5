/*
errors.go - Centralized error types for the vacation domain

PURPOSE:
  All domain error values in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Not-found errors   - A referenced record does not resolve
  2. Invalid-state errors - A stored aggregate violates an invariant
  3. Client errors      - Invalid input (reversed range, bad transition)

Store failures are NOT enumerated here: the store collaborator's errors are
propagated wrapped (%w), never interpreted or retried. Every operation that
encounters one short-circuits; there are no partial results.
*/
package vacation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when an employee id does not resolve.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRequestNotFound is returned when a leave request id does not resolve.
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrNoPrimaryRange is returned when a request that needs an
	// authoritative date span has no range marked primary.
	ErrNoPrimaryRange = errors.New("request has no primary date range")

	// ErrInvalidRange is returned for a reversed date range (end before
	// start). Reversed ranges are a caller error, never silently counted.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrTerminalStatus is returned when attempting to transition a request
	// out of approved or rejected. Rejection and approval are terminal.
	ErrTerminalStatus = errors.New("request status is terminal")

	// ErrHierarchyDepthExceeded is returned when the reports-to graph
	// descends past the traversal bound, which indicates a malformed
	// (cyclic or absurdly deep) hierarchy.
	ErrHierarchyDepthExceeded = errors.New("hierarchy depth bound exceeded")

	// ErrNoHRApprover is returned when a request requires HR sign-off but
	// no HR employee exists to route it to.
	ErrNoHRApprover = errors.New("no HR approver available")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// TransitionError reports an attempted invalid status transition.
type TransitionError struct {
	RequestID int
	From      RequestStatus
	To        RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("request %d: cannot transition %s -> %s", e.RequestID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrTerminalStatus }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}

// IsClientError reports whether the error is due to invalid client input
// rather than a store failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrNoPrimaryRange) ||
		errors.Is(err, ErrTerminalStatus)
}
