package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an operation identifier (transaction id, reference id,
// ledger idempotency key) has already been used by a committed operation.
var ErrDuplicate = errors.New("duplicate operation")

// ErrInsufficientCredit indicates that an account balance cannot cover a debit.
var ErrInsufficientCredit = errors.New("insufficient credit")

// ErrAlreadyProcessed indicates that a credit request already left the pending state.
var ErrAlreadyProcessed = errors.New("already processed")

// ErrTransient indicates a retryable storage fault: lock timeout, serialization
// failure, deadlock or a lost connection. No state was committed.
var ErrTransient = errors.New("transient storage fault")

// ErrInvariantViolation indicates that committing would break a balance or ledger
// invariant. The transaction is aborted.
var ErrInvariantViolation = errors.New("invariant violation")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind returns a stable, low-cardinality label for err, suitable for metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrInsufficientCredit):
		return "insufficient_credit"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyProcessed):
		return "already_processed"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrInvariantViolation):
		return "invariant_violation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}

// IsRetryable reports whether the caller may resubmit the same operation unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
