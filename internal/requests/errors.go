package requests

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the lifecycle taxonomy. Callers match with errors.Is;
// the typed wrappers below add context while remaining matchable.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("request not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidState  = errors.New("invalid request state")
	ErrTransport     = errors.New("store transport failure")
)

// ValidationError reports bad input shape or range. Non-retryable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports an unknown request id
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("request %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotAuthorizedError reports the wrong party attempting a party-restricted action
type NotAuthorizedError struct {
	Company string
	Action  string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("company %q is not authorized to %s this request", e.Company, e.Action)
}

func (e *NotAuthorizedError) Unwrap() error { return ErrNotAuthorized }

// InvalidStateError reports an attempted transition or mutation outside PENDING
type InvalidStateError struct {
	ID     uuid.UUID
	Status RequestStatus
	Action string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s request %s in status %s", e.Action, e.ID, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// TransportError wraps a store-boundary failure. Retryable with backoff;
// does not indicate a domain problem.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return ErrTransport }
