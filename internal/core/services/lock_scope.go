package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
)

// lockKind ranks lockable entities. Every transaction acquires row locks in
// ascending (kind, id) order, which rules out lock-order deadlocks between
// operations.
type lockKind int

const (
	lockCreditRequest lockKind = iota + 1
	lockAccount
	lockTarget
)

func (k lockKind) String() string {
	switch k {
	case lockCreditRequest:
		return "credit_request"
	case lockAccount:
		return "account"
	case lockTarget:
		return "target"
	}
	return "unknown"
}

type lockKey struct {
	kind lockKind
	id   string
}

func (k lockKey) less(other lockKey) bool {
	if k.kind != other.kind {
		return k.kind < other.kind
	}
	return k.id < other.id
}

func (k lockKey) String() string {
	return k.kind.String() + "(" + k.id + ")"
}

// lockScope wraps a UnitOfWork for one transaction. Acquiring a lock out of
// order, or writing a row that is not locked, is a programming error and
// panics.
type lockScope struct {
	uow  portsrepo.UnitOfWork
	held map[lockKey]struct{}
	last *lockKey
}

func newLockScope(uow portsrepo.UnitOfWork) *lockScope {
	return &lockScope{uow: uow, held: make(map[lockKey]struct{})}
}

func (s *lockScope) acquire(key lockKey) {
	if s.last != nil && !s.last.less(key) {
		panic(fmt.Sprintf("lock order violation: %s requested after %s", key, *s.last))
	}
}

func (s *lockScope) granted(key lockKey) {
	s.held[key] = struct{}{}
	s.last = &key
}

func (s *lockScope) mustHold(kind lockKind, id string) {
	if _, ok := s.held[lockKey{kind: kind, id: id}]; !ok {
		panic(fmt.Sprintf("write without lock: %s is not locked in this transaction", lockKey{kind: kind, id: id}))
	}
}

// holdsAny reports whether at least one row lock is held.
func (s *lockScope) holdsAny() bool {
	return len(s.held) > 0
}

func (s *lockScope) LockCreditRequest(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	key := lockKey{kind: lockCreditRequest, id: requestID}
	s.acquire(key)
	req, err := s.uow.LockCreditRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.granted(key)
	return req, nil
}

func (s *lockScope) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	key := lockKey{kind: lockAccount, id: accountID}
	s.acquire(key)
	account, err := s.uow.LockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.granted(key)
	return account, nil
}

func (s *lockScope) LockTarget(ctx context.Context, targetID string) (*domain.Target, error) {
	key := lockKey{kind: lockTarget, id: targetID}
	s.acquire(key)
	target, err := s.uow.LockTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	s.granted(key)
	return target, nil
}

func (s *lockScope) SaveAccountBalance(ctx context.Context, account domain.Account) error {
	s.mustHold(lockAccount, account.AccountID)
	return s.uow.SaveAccountBalance(ctx, account)
}

func (s *lockScope) SaveTargetBalance(ctx context.Context, target domain.Target) error {
	s.mustHold(lockTarget, target.TargetID)
	return s.uow.SaveTargetBalance(ctx, target)
}

func (s *lockScope) SaveCreditRequestStatus(ctx context.Context, request domain.CreditRequest) error {
	s.mustHold(lockCreditRequest, request.RequestID)
	return s.uow.SaveCreditRequestStatus(ctx, request)
}

// InsertCreditRequest requires the owning account to be locked, which
// serializes reference checks per account.
func (s *lockScope) InsertCreditRequest(ctx context.Context, request domain.CreditRequest) error {
	s.mustHold(lockAccount, request.AccountID)
	return s.uow.InsertCreditRequest(ctx, request)
}

func (s *lockScope) InsertChargeSale(ctx context.Context, sale domain.ChargeSale) error {
	s.mustHold(lockAccount, sale.AccountID)
	s.mustHold(lockTarget, sale.TargetID)
	return s.uow.InsertChargeSale(ctx, sale)
}

func (s *lockScope) AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	s.mustHold(lockAccount, entry.AccountID)
	return s.uow.AppendLedgerEntry(ctx, entry)
}

func (s *lockScope) KeyExists(ctx context.Context, key domain.OperationKey) (bool, error) {
	return s.uow.KeyExists(ctx, key)
}
