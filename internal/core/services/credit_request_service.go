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
	"github.com/google/uuid"
)

var (
	ErrCreditRequestNotFound = fmt.Errorf("credit request %w", apperrors.ErrNotFound)
	ErrDuplicateReference    = fmt.Errorf("reference id already used: %w", apperrors.ErrDuplicate)
	ErrAlreadyProcessed      = fmt.Errorf("credit request is not pending: %w", apperrors.ErrAlreadyProcessed)
	ErrInvalidDecision       = fmt.Errorf("invalid decision: %w", apperrors.ErrValidation)
)

// MaxReferenceIDLength bounds caller-supplied reference ids.
const MaxReferenceIDLength = 255

// creditRequestService creates pending credit requests and resolves them.
type creditRequestService struct {
	BaseService
	tx       portsrepo.TransactionManager
	guard    *idempotencyGuard
	requests portsrepo.CreditRequestReader
}

// NewCreditRequestService creates a new CreditRequestSvcFacade.
func NewCreditRequestService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CreditRequestSvcFacade {
	return &creditRequestService{
		BaseService: newBaseService(options...),
		tx:          repos.TxManager,
		guard:       newIdempotencyGuard(repos.KeyChecker),
		requests:    repos.CreditRequestRepo,
	}
}

var _ portssvc.CreditRequestSvcFacade = (*creditRequestService)(nil)

func validateCreditRequest(req dto.SubmitCreditRequestRequest) error {
	if req.ReferenceID == "" {
		return fmt.Errorf("%w: reference id is required", apperrors.ErrValidation)
	}
	if len(req.ReferenceID) > MaxReferenceIDLength {
		return fmt.Errorf("%w: reference id longer than %d characters", apperrors.ErrValidation, MaxReferenceIDLength)
	}
	if req.AccountID == "" {
		return fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	return domain.ValidateAmount(req.Amount)
}

func (s *creditRequestService) SubmitCreditRequest(ctx context.Context, caller domain.Caller, req dto.SubmitCreditRequestRequest) (created *domain.CreditRequest, err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("submit_credit_request", started, err) }()

	if req.AccountID == "" {
		req.AccountID = caller.AccountID
	}
	attrs := []any{
		slog.String("reference_id", req.ReferenceID),
		slog.String("account_id", req.AccountID),
		slog.Int64("amount", req.Amount),
	}

	if err := validateCreditRequest(req); err != nil {
		s.LogWarn(ctx, err, "Credit request rejected", attrs...)
		return nil, err
	}
	if err := s.RequireOwner(caller, req.AccountID); err != nil {
		s.LogWarn(ctx, err, "Credit request not authorized", attrs...)
		return nil, err
	}

	refKey := domain.OperationKey{Scope: domain.KeyScopeReferenceID, Value: req.ReferenceID}
	result, err := s.guard.Precheck(ctx, refKey)
	if err != nil {
		s.LogOutcome(ctx, err, "Duplicate precheck failed", attrs...)
		return nil, err
	}
	if result == domain.AlreadyExists {
		err = fmt.Errorf("%w: %s", ErrDuplicateReference, req.ReferenceID)
		s.LogWarn(ctx, err, "Duplicate credit request", attrs...)
		return nil, err
	}
	s.LogDebug(ctx, "Credit request passed precheck", attrs...)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		scope := newLockScope(uow)
		if _, err := scope.LockAccount(ctx, req.AccountID); err != nil {
			return wrapNotFound(err, ErrAccountNotFound, req.AccountID)
		}
		result, err := s.guard.Reserve(ctx, scope, refKey)
		if err != nil {
			return err
		}
		if result == domain.AlreadyExists {
			return fmt.Errorf("%w: %s", ErrDuplicateReference, req.ReferenceID)
		}

		created = &domain.CreditRequest{
			RequestID:   uuid.NewString(),
			ReferenceID: req.ReferenceID,
			AccountID:   req.AccountID,
			Amount:      req.Amount,
			Status:      domain.CreditRequestPending,
			CreatedAt:   s.Now(),
		}
		return scope.InsertCreditRequest(ctx, *created)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, ErrDuplicateReference) {
			err = fmt.Errorf("%w: %s: %v", ErrDuplicateReference, req.ReferenceID, err)
		}
		s.LogOutcome(ctx, err, "Credit request failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Credit request submitted", append(attrs, slog.String("request_id", created.RequestID))...)
	return created, nil
}

func (s *creditRequestService) ProcessCreditRequest(ctx context.Context, caller domain.Caller, requestID string, decision domain.Decision) (processed *domain.CreditRequest, err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("process_credit_request", started, err) }()

	attrs := []any{
		slog.String("request_id", requestID),
		slog.String("decision", string(decision)),
	}

	if _, err := domain.ParseDecision(string(decision)); err != nil {
		err = fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
		s.LogWarn(ctx, err, "Credit request decision rejected", attrs...)
		return nil, err
	}
	if requestID == "" {
		err := fmt.Errorf("%w: request id is required", apperrors.ErrValidation)
		s.LogWarn(ctx, err, "Credit request decision rejected", attrs...)
		return nil, err
	}
	if err := s.RequireAdministrator(caller); err != nil {
		s.LogWarn(ctx, err, "Credit request decision not authorized", attrs...)
		return nil, err
	}

	// Optimistic status check before any lock is taken.
	current, err := s.requests.FindCreditRequestByID(ctx, requestID)
	if err != nil {
		err = wrapNotFound(err, ErrCreditRequestNotFound, requestID)
		s.LogOutcome(ctx, err, "Credit request lookup failed", attrs...)
		return nil, err
	}
	if current.Status != domain.CreditRequestPending {
		err = fmt.Errorf("%w: %s is %s", ErrAlreadyProcessed, requestID, current.Status)
		s.LogWarn(ctx, err, "Credit request already processed", attrs...)
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var txErr error
		processed, txErr = s.applyDecision(ctx, newLockScope(uow), requestID, decision)
		return txErr
	})
	if err != nil {
		s.LogOutcome(ctx, err, "Credit request decision failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Credit request processed", append(attrs,
		slog.String("account_id", processed.AccountID),
		slog.String("status", string(processed.Status)))...)
	return processed, nil
}

func (s *creditRequestService) applyDecision(ctx context.Context, scope *lockScope, requestID string, decision domain.Decision) (*domain.CreditRequest, error) {
	req, err := scope.LockCreditRequest(ctx, requestID)
	if err != nil {
		return nil, wrapNotFound(err, ErrCreditRequestNotFound, requestID)
	}
	// Authoritative status check under the request lock.
	if req.Status != domain.CreditRequestPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrAlreadyProcessed, requestID, req.Status)
	}

	now := s.Now()
	if decision == domain.DecisionReject {
		if err := req.Resolve(domain.DecisionReject, now); err != nil {
			return nil, err
		}
		if err := scope.SaveCreditRequestStatus(ctx, *req); err != nil {
			return nil, err
		}
		return req, nil
	}

	account, err := scope.LockAccount(ctx, req.AccountID)
	if err != nil {
		return nil, wrapNotFound(err, ErrAccountNotFound, req.AccountID)
	}

	ref := domain.CreditRequestRef(req.RequestID)
	ledgerKey := domain.OperationKey{Scope: domain.KeyScopeLedger, Value: domain.LedgerKey(domain.EntryCreditIncrease, ref)}
	result, err := s.guard.Reserve(ctx, scope, ledgerKey)
	if err != nil {
		return nil, err
	}
	if result == domain.AlreadyExists {
		return nil, fmt.Errorf("%w: pending request %s already has ledger entry %s", apperrors.ErrInvariantViolation, req.RequestID, ledgerKey.Value)
	}

	if !domain.HasHeadroom(account.Balance, req.Amount) {
		return nil, fmt.Errorf("%w: account %s holds %d, credit %d", ErrBalanceLimit, account.AccountID, account.Balance, req.Amount)
	}
	balanceAfter, err := domain.ApplyDelta(account.Balance, req.Amount)
	if err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		IdempotencyKey: ledgerKey.Value,
		AccountID:      account.AccountID,
		Amount:         req.Amount,
		Kind:           domain.EntryCreditIncrease,
		BalanceBefore:  account.Balance,
		BalanceAfter:   balanceAfter,
		Description:    fmt.Sprintf("Credit increase from request %s", req.ReferenceID),
		Status:         domain.EntrySuccessful,
		Ref:            ref,
		CreatedAt:      now,
		CompletedAt:    &now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := req.Resolve(domain.DecisionApprove, now); err != nil {
		return nil, err
	}

	account.Balance = balanceAfter
	account.LastUpdatedAt = now

	if err := scope.SaveAccountBalance(ctx, *account); err != nil {
		return nil, err
	}
	if err := scope.SaveCreditRequestStatus(ctx, *req); err != nil {
		return nil, err
	}
	if err := scope.AppendLedgerEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *creditRequestService) GetCreditRequest(ctx context.Context, caller domain.Caller, requestID string) (*domain.CreditRequest, error) {
	req, err := s.requests.FindCreditRequestByID(ctx, requestID)
	if err != nil {
		err = wrapNotFound(err, ErrCreditRequestNotFound, requestID)
		s.LogOutcome(ctx, err, "Failed to get credit request", slog.String("request_id", requestID))
		return nil, err
	}
	if err := s.RequireReader(caller, req.AccountID); err != nil {
		s.LogWarn(ctx, err, "Credit request read not authorized", slog.String("request_id", requestID))
		return nil, err
	}
	return req, nil
}

func (s *creditRequestService) ListCreditRequests(ctx context.Context, caller domain.Caller, params domain.ListParams) ([]domain.CreditRequest, *string, error) {
	params, err := s.scopeListParams(caller, params)
	if err != nil {
		s.LogWarn(ctx, err, "Credit request listing not authorized", slog.String("account_id", params.AccountID))
		return nil, nil, err
	}
	params.Limit = params.NormalizedLimit()
	reqs, next, err := s.requests.ListCreditRequests(ctx, params)
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to list credit requests", slog.String("account_id", params.AccountID))
		return nil, nil, err
	}
	return reqs, next, nil
}
