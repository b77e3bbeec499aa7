package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// The messages of the OTP errors are returned verbatim to callers.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("OTP not found")
	ErrAlreadyUsed   = errors.New("OTP already used")
	ErrExpired       = errors.New("OTP expired")
	ErrInvalidCode   = errors.New("Invalid OTP")
	ErrConflict      = errors.New("conflict")
	ErrMailTransport = errors.New("mail transport")
	ErrStore         = errors.New("store")
)

// ValidationError names the missing input. It matches ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError with the given caller-facing message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// StoreError wraps a document-store failure so it matches ErrStore.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// MailError wraps a mail relay failure so it matches ErrMailTransport.
func MailError(err error) error {
	return fmt.Errorf("%w: %w", ErrMailTransport, err)
}
