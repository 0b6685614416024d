package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("amount: %w", apperrors.ErrValidation), "validation"},
		{fmt.Errorf("tx: %w", apperrors.ErrDuplicate), "duplicate"},
		{apperrors.ErrInsufficientCredit, "insufficient_credit"},
		{apperrors.ErrNotFound, "not_found"},
		{apperrors.ErrAlreadyProcessed, "already_processed"},
		{apperrors.NewAppError(503, "lock timeout", apperrors.ErrTransient), "transient"},
		{apperrors.ErrInvariantViolation, "invariant_violation"},
		{apperrors.ErrForbidden, "forbidden"},
		{apperrors.ErrUnauthorized, "unauthorized"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apperrors.Kind(tt.err), "%v", tt.err)
	}
}

func TestAppError(t *testing.T) {
	err := apperrors.NewAppError(500, "database query failed", apperrors.ErrInternal)
	assert.Equal(t, "database query failed: internal error", err.Error())
	assert.ErrorIs(t, err, apperrors.ErrInternal)

	bare := apperrors.NewAppError(400, "bad input", nil)
	assert.Equal(t, "bad input", bare.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, apperrors.IsRetryable(fmt.Errorf("lock: %w", apperrors.ErrTransient)))
	assert.False(t, apperrors.IsRetryable(apperrors.ErrDuplicate))
	assert.False(t, apperrors.IsRetryable(nil))
}
