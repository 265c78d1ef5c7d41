package membership

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks at the transport boundary.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyFinalized  = errors.New("already finalized")
	ErrValidation        = errors.New("validation failed")
)

// InvalidTransitionError means the precondition on the gating status field
// is not met. The operation is rejected and the record is left untouched.
type InvalidTransitionError struct {
	Op     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrInvalidTransition, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// AlreadyFinalizedError means the target field already holds a terminal value.
// Callers surface this as a duplicate-action warning; the stored record stays
// authoritative.
type AlreadyFinalizedError struct {
	Op    string
	Field string
	Value string
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("%s: %s: %s is already %s", e.Op, ErrAlreadyFinalized, e.Field, e.Value)
}

func (e *AlreadyFinalizedError) Unwrap() error { return ErrAlreadyFinalized }

// ValidationError reports malformed operation input, detected before any
// transition is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
