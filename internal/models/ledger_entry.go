package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryCreditIncrease EntryKind = "CREDIT_INCREASE"
	EntryChargeSale     EntryKind = "CHARGE_SALE"
)

type EntryStatus string

const (
	EntrySuccessful EntryStatus = "SUCCESSFUL"
	EntryFailed     EntryStatus = "FAILED"
)

// LedgerEntry is an append-only ledger row. The operation reference is
// stored as a (ref_kind, ref_id) pair; Sequence comes from a BIGSERIAL.
type LedgerEntry struct {
	Sequence       int64           `db:"sequence"`
	IdempotencyKey string          `db:"idempotency_key"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"` // Signed
	Kind           EntryKind       `db:"kind"`
	BalanceBefore  decimal.Decimal `db:"balance_before"`
	BalanceAfter   decimal.Decimal `db:"balance_after"`
	Description    string          `db:"description"`
	Status         EntryStatus     `db:"status"`
	RefKind        string          `db:"ref_kind"`
	RefID          string          `db:"ref_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CompletedAt    *time.Time      `db:"completed_at"`
}
