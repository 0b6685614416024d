package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      decimal.Decimal
		want    int64
		wantErr bool
	}{
		{name: "zero", in: decimal.Zero, want: 0},
		{name: "positive", in: decimal.NewFromInt(999_999_999_999), want: 999_999_999_999},
		{name: "negative", in: decimal.NewFromInt(-50), want: -50},
		{name: "trailing zero scale", in: decimal.RequireFromString("12.00"), want: 12},
		{name: "fractional", in: decimal.RequireFromString("12.5"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDomainAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvariantViolation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreditRequestStatusColumns(t *testing.T) {
	m := ToModelCreditRequest(domain.CreditRequest{RequestID: "r", Status: domain.CreditRequestApproved, Amount: 3})
	assert.Equal(t, models.CreditRequestApproved, m.Status)

	m.Status = "SOMETHING"
	_, err := ToDomainCreditRequest(m)
	assert.ErrorIs(t, err, apperrors.ErrInvariantViolation)
}

func TestToDomainLedgerEntry_RevalidatesRow(t *testing.T) {
	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		Sequence:       7,
		IdempotencyKey: "charge_sale:tx-1",
		AccountID:      "acc-1",
		Amount:         -50,
		Kind:           domain.EntryChargeSale,
		BalanceBefore:  100,
		BalanceAfter:   50,
		Status:         domain.EntrySuccessful,
		Ref:            domain.ChargeSaleRef("tx-1"),
		CreatedAt:      now,
	}
	m := ToModelLedgerEntry(entry)
	assert.Equal(t, models.EntryChargeSale, m.Kind)

	back, err := ToDomainLedgerEntry(m)
	require.NoError(t, err)
	assert.Equal(t, entry, back)

	m.BalanceAfter = decimal.NewFromInt(60)
	_, err = ToDomainLedgerEntry(m)
	assert.ErrorIs(t, err, apperrors.ErrInvariantViolation)
}
