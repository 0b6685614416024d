package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: apperrors.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "charge_sales_pkey"}, want: apperrors.ErrDuplicate},
		{name: "check violation", err: &pgconn.PgError{Code: pgCheckViolation}, want: apperrors.ErrInvariantViolation},
		{name: "lock timeout", err: &pgconn.PgError{Code: pgLockNotAvailable}, want: apperrors.ErrTransient},
		{name: "serialization", err: &pgconn.PgError{Code: pgSerializationFailed}, want: apperrors.ErrTransient},
		{name: "deadlock", err: &pgconn.PgError{Code: pgDeadlockDetected}, want: apperrors.ErrTransient},
		{name: "wrapped deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: apperrors.ErrTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.err, "op"), tt.want)
		})
	}

	assert.NoError(t, mapError(nil, "op"))

	other := mapError(errors.New("syntax"), "op")
	var appErr *apperrors.AppError
	assert.ErrorAs(t, other, &appErr)
	assert.Equal(t, "internal", apperrors.Kind(other))
}
