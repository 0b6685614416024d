package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/platform/metrics"
)

// DefaultReplayBatch is the page size used when Replay is called without a limit.
const DefaultReplayBatch = 500

// ledgerService provides read-only audit operations over the ledger.
type ledgerService struct {
	BaseService
	ledger portsrepo.LedgerReader
}

// NewLedgerService creates a new LedgerSvcFacade.
func NewLedgerService(ledger portsrepo.LedgerReader, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options...),
		ledger:      ledger,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) SumByAccount(ctx context.Context, caller domain.Caller, accountID string, filter domain.LedgerFilter) (int64, error) {
	if err := s.RequireReader(caller, accountID); err != nil {
		s.LogWarn(ctx, err, "Ledger sum not authorized", slog.String("account_id", accountID))
		return 0, err
	}
	sum, err := s.ledger.SumByAccount(ctx, accountID, filter)
	if err != nil {
		err = wrapNotFound(err, ErrAccountNotFound, accountID)
		s.LogOutcome(ctx, err, "Failed to sum ledger", slog.String("account_id", accountID))
		return 0, err
	}
	return sum, nil
}

func (s *ledgerService) Replay(ctx context.Context, caller domain.Caller, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	if err := s.RequireReader(caller, accountID); err != nil {
		s.LogWarn(ctx, err, "Ledger replay not authorized", slog.String("account_id", accountID))
		return nil, err
	}
	if afterSequence < 0 {
		return nil, fmt.Errorf("%w: sequence must not be negative", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = DefaultReplayBatch
	}
	entries, err := s.ledger.ReplayLedger(ctx, accountID, afterSequence, limit)
	if err != nil {
		err = wrapNotFound(err, ErrAccountNotFound, accountID)
		s.LogOutcome(ctx, err, "Failed to replay ledger", slog.String("account_id", accountID))
		return nil, err
	}
	return entries, nil
}

func (s *ledgerService) Reconcile(ctx context.Context, caller domain.Caller, accountID string) (*domain.Reconciliation, error) {
	if err := s.RequireReader(caller, accountID); err != nil {
		s.LogWarn(ctx, err, "Reconciliation not authorized", slog.String("account_id", accountID))
		return nil, err
	}

	account, entries, err := s.ledger.SnapshotAccountLedger(ctx, accountID)
	if err != nil {
		err = wrapNotFound(err, ErrAccountNotFound, accountID)
		s.LogOutcome(ctx, err, "Failed to snapshot ledger", slog.String("account_id", accountID))
		return nil, err
	}

	rec := Reconcile(*account, entries)
	if !rec.Consistent {
		metrics.ReconciliationMismatch()
		s.GetLogger(ctx).Error("Ledger does not reconcile with stored balance",
			slog.String("account_id", accountID),
			slog.Int64("stored_balance", rec.StoredBalance),
			slog.Int64("replayed_balance", rec.ReplayedBalance),
			slog.String("problem", rec.Problem))
	}
	return rec, nil
}

// Reconcile folds entries from zero and compares the result with the
// account's stored balance.
func Reconcile(account domain.Account, entries []domain.LedgerEntry) *domain.Reconciliation {
	rec := &domain.Reconciliation{
		AccountID:     account.AccountID,
		StoredBalance: account.Balance,
		Entries:       len(entries),
	}
	for _, e := range entries {
		if e.AccountID != account.AccountID {
			rec.Problem = fmt.Sprintf("entry %s belongs to account %s", e.IdempotencyKey, e.AccountID)
			return rec
		}
		if err := e.Validate(); err != nil {
			rec.Problem = err.Error()
			return rec
		}
	}
	if n := len(entries); n > 0 {
		rec.LastSequence = entries[n-1].Sequence
	}

	replayed, err := domain.Fold(0, entries)
	rec.ReplayedBalance = replayed
	if err != nil {
		rec.Problem = err.Error()
		return rec
	}
	if replayed != account.Balance {
		rec.Problem = fmt.Sprintf("replayed balance %d differs from stored balance %d", replayed, account.Balance)
		return rec
	}
	rec.Consistent = true
	return rec
}

func (s *ledgerService) ListEntries(ctx context.Context, caller domain.Caller, params domain.ListLedgerParams) ([]domain.LedgerEntry, *string, error) {
	if params.AccountID == "" {
		return nil, nil, fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	if err := s.RequireReader(caller, params.AccountID); err != nil {
		s.LogWarn(ctx, err, "Ledger listing not authorized", slog.String("account_id", params.AccountID))
		return nil, nil, err
	}
	params.Limit = params.NormalizedLimit()
	entries, next, err := s.ledger.ListLedgerEntries(ctx, params)
	if err != nil {
		err = wrapNotFound(err, ErrAccountNotFound, params.AccountID)
		s.LogOutcome(ctx, err, "Failed to list ledger entries", slog.String("account_id", params.AccountID))
		return nil, nil, err
	}
	return entries, next, nil
}
