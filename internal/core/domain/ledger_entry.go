package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryCreditIncrease EntryKind = "credit_increase"
	EntryChargeSale     EntryKind = "charge_sale"
)

// EntryStatus is the outcome recorded on a ledger entry.
type EntryStatus string

const (
	EntrySuccessful EntryStatus = "successful"
	EntryFailed     EntryStatus = "failed"
)

// ParseEntryKind validates a kind filter value.
func ParseEntryKind(s string) (EntryKind, error) {
	switch k := EntryKind(s); k {
	case EntryCreditIncrease, EntryChargeSale:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, s)
}

// ParseEntryStatus validates a status filter value.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch st := EntryStatus(s); st {
	case EntrySuccessful, EntryFailed:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, s)
}

// LedgerEntry is an immutable record of one balance change on an account.
// Entries are only ever appended. Sequence is assigned by storage and
// defines creation order per account.
type LedgerEntry struct {
	Sequence       int64        `json:"sequence"`
	IdempotencyKey string       `json:"idempotencyKey"`
	AccountID      string       `json:"accountID"`
	Amount         int64        `json:"amount"` // signed: debits are negative
	Kind           EntryKind    `json:"kind"`
	BalanceBefore  int64        `json:"balanceBefore"`
	BalanceAfter   int64        `json:"balanceAfter"`
	Description    string       `json:"description"`
	Status         EntryStatus  `json:"status"`
	Ref            OperationRef `json:"ref"`
	CreatedAt      time.Time    `json:"createdAt"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
}

// LedgerKey derives the ledger idempotency key of the entry produced by an
// operation. At most one entry exists per operation.
func LedgerKey(kind EntryKind, ref OperationRef) string {
	return string(kind) + ":" + ref.ID
}

// Validate checks the structural invariants of a single entry.
func (e LedgerEntry) Validate() error {
	if e.IdempotencyKey == "" {
		return fmt.Errorf("%w: ledger entry without idempotency key", apperrors.ErrInvariantViolation)
	}
	if e.Amount == 0 {
		return fmt.Errorf("%w: ledger entry with zero amount", apperrors.ErrInvariantViolation)
	}
	switch e.Kind {
	case EntryCreditIncrease:
		if e.Amount < 0 || e.Ref.Kind != OperationCreditRequest {
			return fmt.Errorf("%w: malformed credit increase entry %s", apperrors.ErrInvariantViolation, e.IdempotencyKey)
		}
	case EntryChargeSale:
		if e.Amount > 0 || e.Ref.Kind != OperationChargeSale {
			return fmt.Errorf("%w: malformed charge sale entry %s", apperrors.ErrInvariantViolation, e.IdempotencyKey)
		}
	default:
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrInvariantViolation, e.Kind)
	}
	if e.BalanceAfter != e.BalanceBefore+e.Amount {
		return fmt.Errorf("%w: entry %s balance_after %d != %d%+d", apperrors.ErrInvariantViolation,
			e.IdempotencyKey, e.BalanceAfter, e.BalanceBefore, e.Amount)
	}
	if e.BalanceBefore < 0 || e.BalanceAfter < 0 {
		return fmt.Errorf("%w: entry %s has a negative balance", apperrors.ErrInvariantViolation, e.IdempotencyKey)
	}
	return e.Ref.Validate()
}

// LedgerFilter narrows SumByAccount and listing. Nil fields match everything.
type LedgerFilter struct {
	Kind   *EntryKind
	Status *EntryStatus
}

// Matches reports whether e passes the filter.
func (f LedgerFilter) Matches(e LedgerEntry) bool {
	if f.Kind != nil && e.Kind != *f.Kind {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	return true
}

// Fold replays entries, in creation order, starting from start. It fails on
// the first entry whose BalanceBefore does not continue the chain, so a
// successful fold proves the entries are gap-free and internally consistent.
// Failed entries carry no balance effect and are skipped.
func Fold(start int64, entries []LedgerEntry) (int64, error) {
	balance := start
	for _, e := range entries {
		if e.Status != EntrySuccessful {
			continue
		}
		if e.BalanceBefore != balance {
			return balance, fmt.Errorf("%w: entry %s (seq %d) starts at %d, replay is at %d",
				apperrors.ErrInvariantViolation, e.IdempotencyKey, e.Sequence, e.BalanceBefore, balance)
		}
		next, err := ApplyDelta(balance, e.Amount)
		if err != nil {
			return balance, err
		}
		if next != e.BalanceAfter {
			return balance, fmt.Errorf("%w: entry %s ends at %d, replay computes %d",
				apperrors.ErrInvariantViolation, e.IdempotencyKey, e.BalanceAfter, next)
		}
		balance = next
	}
	return balance, nil
}

// Reconciliation is the result of replaying an account's ledger against its
// stored balance.
type Reconciliation struct {
	AccountID       string `json:"accountID"`
	StoredBalance   int64  `json:"storedBalance"`
	ReplayedBalance int64  `json:"replayedBalance"`
	Entries         int    `json:"entries"`
	LastSequence    int64  `json:"lastSequence"`
	Consistent      bool   `json:"consistent"`
	Problem         string `json:"problem,omitempty"`
}
