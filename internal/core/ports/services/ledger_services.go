package services

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// LedgerSvcFacade exposes the audit side of the ledger.
type LedgerSvcFacade interface {
	SumByAccount(ctx context.Context, caller domain.Caller, accountID string, filter domain.LedgerFilter) (int64, error)

	// Replay returns entries after afterSequence in creation order.
	Replay(ctx context.Context, caller domain.Caller, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error)

	// Reconcile replays the account's ledger from zero and compares the
	// result with the stored balance, both read from one snapshot.
	Reconcile(ctx context.Context, caller domain.Caller, accountID string) (*domain.Reconciliation, error)

	ListEntries(ctx context.Context, caller domain.Caller, params domain.ListLedgerParams) ([]domain.LedgerEntry, *string, error)
}
