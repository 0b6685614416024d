package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/platform/metrics"
)

var (
	ErrAccountNotFound      = fmt.Errorf("account %w", apperrors.ErrNotFound)
	ErrTargetNotFound       = fmt.Errorf("target %w", apperrors.ErrNotFound)
	ErrChargeSaleNotFound   = fmt.Errorf("charge sale %w", apperrors.ErrNotFound)
	ErrDuplicateTransaction = fmt.Errorf("transaction id already used: %w", apperrors.ErrDuplicate)
	ErrInsufficientCredit   = fmt.Errorf("account balance too low: %w", apperrors.ErrInsufficientCredit)
	ErrBalanceLimit         = fmt.Errorf("balance limit exceeded: %w", apperrors.ErrValidation)
)

const chargeSaleSuccessMessage = "Charge completed successfully"

// chargeSaleService runs the charge sale protocol: optimistic duplicate
// check, lock account then target, authoritative duplicate check, balance
// check, then one atomic write of both balances, the sale and its ledger entry.
type chargeSaleService struct {
	BaseService
	tx    portsrepo.TransactionManager
	guard *idempotencyGuard
	sales portsrepo.ChargeSaleReader
}

// NewChargeSaleService creates a new ChargeSaleSvcFacade.
func NewChargeSaleService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ChargeSaleSvcFacade {
	return &chargeSaleService{
		BaseService: newBaseService(options...),
		tx:          repos.TxManager,
		guard:       newIdempotencyGuard(repos.KeyChecker),
		sales:       repos.ChargeSaleRepo,
	}
}

var _ portssvc.ChargeSaleSvcFacade = (*chargeSaleService)(nil)

func validateChargeSale(req dto.SubmitChargeSaleRequest) error {
	if req.TransactionID == "" {
		return fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}
	if len(req.TransactionID) > domain.MaxTransactionIDLength {
		return fmt.Errorf("%w: transaction id longer than %d characters", apperrors.ErrValidation, domain.MaxTransactionIDLength)
	}
	if req.AccountID == "" {
		return fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	if req.TargetID == "" {
		return fmt.Errorf("%w: target id is required", apperrors.ErrValidation)
	}
	return domain.ValidateAmount(req.Amount)
}

func (s *chargeSaleService) SubmitChargeSale(ctx context.Context, caller domain.Caller, req dto.SubmitChargeSaleRequest) (sale *domain.ChargeSale, err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("submit_charge_sale", started, err) }()

	if req.AccountID == "" {
		req.AccountID = caller.AccountID
	}
	attrs := []any{
		slog.String("transaction_id", req.TransactionID),
		slog.String("account_id", req.AccountID),
		slog.String("target_id", req.TargetID),
		slog.Int64("amount", req.Amount),
	}

	if err := validateChargeSale(req); err != nil {
		s.LogWarn(ctx, err, "Charge sale rejected", attrs...)
		return nil, err
	}
	if err := s.RequireOwner(caller, req.AccountID); err != nil {
		s.LogWarn(ctx, err, "Charge sale not authorized", attrs...)
		return nil, err
	}

	txKey := domain.OperationKey{Scope: domain.KeyScopeTransactionID, Value: req.TransactionID}
	result, err := s.guard.Precheck(ctx, txKey)
	if err != nil {
		s.LogOutcome(ctx, err, "Duplicate precheck failed", attrs...)
		return nil, err
	}
	if result == domain.AlreadyExists {
		err = fmt.Errorf("%w: %s", ErrDuplicateTransaction, req.TransactionID)
		s.LogWarn(ctx, err, "Duplicate charge sale", attrs...)
		return nil, err
	}
	s.LogDebug(ctx, "Charge sale passed precheck, taking locks", attrs...)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var txErr error
		sale, txErr = s.applyChargeSale(ctx, newLockScope(uow), req, txKey)
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, ErrDuplicateTransaction) {
			// A unique constraint caught a race the locks did not cover.
			err = fmt.Errorf("%w: %s: %v", ErrDuplicateTransaction, req.TransactionID, err)
		}
		s.LogOutcome(ctx, err, "Charge sale failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Charge sale committed", append(attrs,
		slog.Int64("target_balance_after", sale.TargetBalanceAfter))...)
	return sale, nil
}

func (s *chargeSaleService) applyChargeSale(ctx context.Context, scope *lockScope, req dto.SubmitChargeSaleRequest, txKey domain.OperationKey) (*domain.ChargeSale, error) {
	account, err := scope.LockAccount(ctx, req.AccountID)
	if err != nil {
		return nil, wrapNotFound(err, ErrAccountNotFound, req.AccountID)
	}
	target, err := scope.LockTarget(ctx, req.TargetID)
	if err != nil {
		return nil, wrapNotFound(err, ErrTargetNotFound, req.TargetID)
	}

	result, err := s.guard.Reserve(ctx, scope, txKey)
	if err != nil {
		return nil, err
	}
	if result == domain.AlreadyExists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTransaction, req.TransactionID)
	}

	ref := domain.ChargeSaleRef(req.TransactionID)
	ledgerKey := domain.OperationKey{Scope: domain.KeyScopeLedger, Value: domain.LedgerKey(domain.EntryChargeSale, ref)}
	result, err = s.guard.Reserve(ctx, scope, ledgerKey)
	if err != nil {
		return nil, err
	}
	if result == domain.AlreadyExists {
		return nil, fmt.Errorf("%w: ledger entry %s exists without its charge sale", apperrors.ErrInvariantViolation, ledgerKey.Value)
	}

	if !account.CanCover(req.Amount) {
		return nil, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientCredit, account.Balance, req.Amount)
	}

	if !domain.HasHeadroom(target.Balance, req.Amount) {
		return nil, fmt.Errorf("%w: target %s holds %d, charge %d", ErrBalanceLimit, target.TargetID, target.Balance, req.Amount)
	}

	accountAfter, err := domain.ApplyDelta(account.Balance, -req.Amount)
	if err != nil {
		return nil, err
	}
	targetAfter, err := domain.ApplyDelta(target.Balance, req.Amount)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entry := domain.LedgerEntry{
		IdempotencyKey: ledgerKey.Value,
		AccountID:      account.AccountID,
		Amount:         -req.Amount,
		Kind:           domain.EntryChargeSale,
		BalanceBefore:  account.Balance,
		BalanceAfter:   accountAfter,
		Description:    fmt.Sprintf("Charge sale for phone %s", target.ExternalID),
		Status:         domain.EntrySuccessful,
		Ref:            ref,
		CreatedAt:      now,
		CompletedAt:    &now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	sale := &domain.ChargeSale{
		TransactionID:       req.TransactionID,
		AccountID:           account.AccountID,
		TargetID:            target.TargetID,
		Amount:              req.Amount,
		TargetBalanceBefore: target.Balance,
		TargetBalanceAfter:  targetAfter,
		Status:              domain.ChargeSaleSuccessful,
		StatusMessage:       chargeSaleSuccessMessage,
		AuditFields:         domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	account.Balance = accountAfter
	account.LastUpdatedAt = now
	target.Balance = targetAfter
	target.LastChargedAt = &now
	target.LastUpdatedAt = now

	if err := scope.SaveAccountBalance(ctx, *account); err != nil {
		return nil, err
	}
	if err := scope.SaveTargetBalance(ctx, *target); err != nil {
		return nil, err
	}
	if err := scope.InsertChargeSale(ctx, *sale); err != nil {
		return nil, err
	}
	if err := scope.AppendLedgerEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *chargeSaleService) GetChargeSale(ctx context.Context, caller domain.Caller, transactionID string) (*domain.ChargeSale, error) {
	sale, err := s.sales.FindChargeSaleByTransactionID(ctx, transactionID)
	if err != nil {
		err = wrapNotFound(err, ErrChargeSaleNotFound, transactionID)
		s.LogOutcome(ctx, err, "Failed to get charge sale", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := s.RequireReader(caller, sale.AccountID); err != nil {
		s.LogWarn(ctx, err, "Charge sale read not authorized", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return sale, nil
}

func (s *chargeSaleService) ListChargeSales(ctx context.Context, caller domain.Caller, params domain.ListParams) ([]domain.ChargeSale, *string, error) {
	params, err := s.scopeListParams(caller, params)
	if err != nil {
		s.LogWarn(ctx, err, "Charge sale listing not authorized", slog.String("account_id", params.AccountID))
		return nil, nil, err
	}
	params.Limit = params.NormalizedLimit()
	sales, next, err := s.sales.ListChargeSales(ctx, params)
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to list charge sales", slog.String("account_id", params.AccountID))
		return nil, nil, err
	}
	return sales, next, nil
}

// wrapNotFound replaces a storage not-found error with the entity-specific one.
func wrapNotFound(err error, notFound error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return err
}
