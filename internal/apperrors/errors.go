package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not permit the action.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInsufficientTrustFunds indicates a disbursement or outgoing transfer
// would take a trust account below zero. Trust accounts may never go
// negative; this is a hard regulatory rule and is never overridden.
var ErrInsufficientTrustFunds = errors.New("insufficient trust funds")

// ErrAccountInactive indicates a ledger operation targeted a deactivated trust account.
var ErrAccountInactive = errors.New("trust account is inactive")

// ErrConcurrentModification indicates a write lost the race against a
// concurrent writer on the same resource and exhausted its retries.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrTimeEntryAlreadyInvoiced indicates a time entry is already attached to an invoice.
var ErrTimeEntryAlreadyInvoiced = errors.New("time entry already invoiced")

// AppError wraps a lower-level failure with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
