package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
)

// MaxAmount is the largest value a balance or a single operation amount may hold
// (twelve integer digits).
const MaxAmount int64 = 999_999_999_999

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ValidateAmount checks that a requested operation amount is strictly positive and
// within MaxAmount.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: amount must not exceed %d", apperrors.ErrValidation, MaxAmount)
	}
	return nil
}

// HasHeadroom reports whether amount can be added to balance without
// exceeding MaxAmount.
func HasHeadroom(balance, amount int64) bool {
	return balance <= MaxAmount-amount
}

// ApplyDelta returns balance+delta. A result that is negative or above MaxAmount
// is an invariant violation; callers must have rejected such requests earlier.
func ApplyDelta(balance, delta int64) (int64, error) {
	if balance < 0 || balance > MaxAmount {
		return 0, fmt.Errorf("%w: stored balance %d out of range", apperrors.ErrInvariantViolation, balance)
	}
	if delta > MaxAmount || delta < -MaxAmount {
		return 0, fmt.Errorf("%w: delta %d out of range", apperrors.ErrInvariantViolation, delta)
	}
	next := balance + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: balance would become negative (%d %+d)", apperrors.ErrInvariantViolation, balance, delta)
	}
	if next > MaxAmount {
		return 0, fmt.Errorf("%w: balance would exceed %d (%d %+d)", apperrors.ErrInvariantViolation, MaxAmount, balance, delta)
	}
	return next, nil
}
