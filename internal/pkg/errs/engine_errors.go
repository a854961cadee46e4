package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStoreFailure = errors.New("store failure")
)

// InvalidStateError reports an operation that is not legal for the current
// status, type or visibility of an object. Reason is one of the domain's
// reason sentinels and stays reachable through errors.Is.
type InvalidStateError struct {
	Object string
	Reason error
}

func NewInvalidStateError(object string, reason error) *InvalidStateError {
	return &InvalidStateError{Object: object, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidState, e.Object, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidState, e.Object)
}

func (e *InvalidStateError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrInvalidState}
	}
	return []error{ErrInvalidState, e.Reason}
}

// ConflictError reports that an atomic conditional write matched nothing
// because another actor changed the object first.
type ConflictError struct {
	Object string
	ID     any
	Cause  error
}

func NewConflictError(object string, id any) *ConflictError {
	return &ConflictError{Object: object, ID: id}
}

func NewConflictErrorWithCause(object string, id any, cause error) *ConflictError {
	return &ConflictError{Object: object, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrConflict, e.Object, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.Object, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnauthorizedError reports an actor lacking the role or ownership an
// operation requires.
type UnauthorizedError struct {
	Action string
	Reason error
}

func NewUnauthorizedError(action string, reason error) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("%s: %s: %v", ErrUnauthorized, e.Action, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrUnauthorized, e.Action)
}

func (e *UnauthorizedError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrUnauthorized}
	}
	return []error{ErrUnauthorized, e.Reason}
}

// StoreFailureError wraps an infrastructure error from a persistence adapter.
// The cause stays in the chain so context cancellation remains detectable.
type StoreFailureError struct {
	Operation string
	Cause     error
}

func NewStoreFailureError(operation string, cause error) *StoreFailureError {
	return &StoreFailureError{Operation: operation, Cause: cause}
}

func (e *StoreFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrStoreFailure, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStoreFailure, e.Operation)
}

func (e *StoreFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStoreFailure}
	}
	return []error{ErrStoreFailure, e.Cause}
}
