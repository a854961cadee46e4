// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for validation and for the job engine:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateError: For when an operation is not legal in the current state
//   - ConflictError: For when an atomic conditional write lost a race
//   - UnauthorizedError: For when the acting user may not perform an operation
//   - StoreFailureError: For when the underlying persistence layer fails
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, so an HTTP
// adapter can map ErrObjectNotFound, ErrInvalidState, ErrConflict,
// ErrUnauthorized and ErrStoreFailure to distinct responses.
package errs
