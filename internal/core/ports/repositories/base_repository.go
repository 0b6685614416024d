package repositories

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// UnitOfWork is the set of operations available inside one all-or-nothing
// storage transaction. Lock* calls block until the row's exclusive lock is
// granted (or the configured lock timeout elapses, yielding a transient
// error) and hold it until the transaction ends. Save* calls are only valid
// for rows locked in the same unit of work.
type UnitOfWork interface {
	// LockCreditRequest locks a credit request row and returns its current state.
	LockCreditRequest(ctx context.Context, requestID string) (*domain.CreditRequest, error)

	// LockAccount locks an account row and returns its current state.
	LockAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// LockTarget locks a target row and returns its current state.
	LockTarget(ctx context.Context, targetID string) (*domain.Target, error)

	SaveAccountBalance(ctx context.Context, account domain.Account) error
	SaveTargetBalance(ctx context.Context, target domain.Target) error
	SaveCreditRequestStatus(ctx context.Context, request domain.CreditRequest) error

	InsertCreditRequest(ctx context.Context, request domain.CreditRequest) error
	InsertChargeSale(ctx context.Context, sale domain.ChargeSale) error

	// AppendLedgerEntry appends entry and sets its Sequence.
	AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error

	// KeyExists reports whether key is used by committed data or by writes
	// staged earlier in this unit of work.
	KeyExists(ctx context.Context, key domain.OperationKey) (bool, error)
}

// TransactionManager runs fn inside a storage transaction. The transaction
// commits if fn returns nil and rolls back otherwise; a commit failure is
// returned as an error and nothing is persisted.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

// KeyChecker answers optimistic, lock-free duplicate checks.
type KeyChecker interface {
	OperationKeyExists(ctx context.Context, key domain.OperationKey) (bool, error)
}
