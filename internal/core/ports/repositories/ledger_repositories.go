package repositories

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// LedgerReader defines read operations over the append-only ledger. Every
// method reads from a single consistent snapshot.
type LedgerReader interface {
	// SumByAccount sums signed amounts of the account's entries matching filter.
	SumByAccount(ctx context.Context, accountID string, filter domain.LedgerFilter) (int64, error)

	// ReplayLedger returns up to limit entries of the account with Sequence
	// greater than afterSequence, in creation order. Callers restart from the
	// last Sequence they saw.
	ReplayLedger(ctx context.Context, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error)

	// SnapshotAccountLedger returns the account and all of its entries, in
	// creation order, as of one point in time.
	SnapshotAccountLedger(ctx context.Context, accountID string) (*domain.Account, []domain.LedgerEntry, error)

	// ListLedgerEntries returns entries newest first and a token for the next page, if any.
	ListLedgerEntries(ctx context.Context, params domain.ListLedgerParams) ([]domain.LedgerEntry, *string, error)
}
