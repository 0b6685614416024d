package mapping

import (
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ToModelAmount converts minor units to the NUMERIC representation.
func ToModelAmount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// ToDomainAmount converts a NUMERIC column back to minor units. Fractional or
// out-of-range values mean the row was written outside this service.
func ToDomainAmount(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: non-integral amount %s in storage", apperrors.ErrInvariantViolation, d)
	}
	if d.Abs().GreaterThan(decimal.NewFromInt(1 << 62)) {
		return 0, fmt.Errorf("%w: amount %s out of range", apperrors.ErrInvariantViolation, d)
	}
	return d.IntPart(), nil
}
