package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrBelowMinimumAmount = errors.New("amount below product minimum")
	ErrAlreadyCancelled   = errors.New("subscription already cancelled")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
)

// Entity-specific not-found kinds; each also matches ErrNotFound.
var (
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrClientNotFound       = fmt.Errorf("client %w", ErrNotFound)
	ErrSubscriptionNotFound = fmt.Errorf("subscription %w", ErrNotFound)
	ErrBranchNotFound       = fmt.Errorf("branch %w", ErrNotFound)
	ErrAvailabilityNotFound = fmt.Errorf("availability %w", ErrNotFound)
	ErrAppointmentNotFound  = fmt.Errorf("appointment %w", ErrNotFound)
)

// DomainError is a business-rule failure with a message fit for the caller.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewError builds a DomainError of the given kind.
func NewError(kind error, format string, args ...any) *DomainError {
	return &DomainError{Err: kind, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing entity. kind should be one of the
// entity-specific not-found errors.
func NewNotFoundError(kind error, id any) *DomainError {
	return &DomainError{Err: kind, Message: fmt.Sprintf("%s: %v", kind.Error(), id)}
}

// NewValidationError reports malformed input.
func NewValidationError(format string, args ...any) *DomainError {
	return NewError(ErrValidation, format, args...)
}

// NewConflictError reports a state conflict such as a duplicate id.
func NewConflictError(format string, args ...any) *DomainError {
	return NewError(ErrConflict, format, args...)
}

// IsBusinessError reports whether err carries one of the domain kinds.
func IsBusinessError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
