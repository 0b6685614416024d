package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
)

// unitOfWork stages writes and applies them in commit. Nothing it does is
// visible to other transactions before commit.
type unitOfWork struct {
	store *Store
	held  []rowKey

	accounts       map[string]domain.Account
	targets        map[string]domain.Target
	requestUpdates map[string]domain.CreditRequest
	newRequests    []domain.CreditRequest
	newSales       []domain.ChargeSale
	entries        []*domain.LedgerEntry
	stagedKeys     map[domain.OperationKey]struct{}
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)

func newUnitOfWork(store *Store) *unitOfWork {
	return &unitOfWork{
		store:          store,
		accounts:       make(map[string]domain.Account),
		targets:        make(map[string]domain.Target),
		requestUpdates: make(map[string]domain.CreditRequest),
		stagedKeys:     make(map[domain.OperationKey]struct{}),
	}
}

func (u *unitOfWork) holds(key rowKey) bool {
	for _, h := range u.held {
		if h == key {
			return true
		}
	}
	return false
}

func (u *unitOfWork) mustHold(key rowKey) {
	if !u.holds(key) {
		panic(fmt.Sprintf("memory store: write to %s without holding its lock", key))
	}
}

func (u *unitOfWork) lock(ctx context.Context, key rowKey, exists func() bool) error {
	if u.holds(key) {
		return nil
	}
	u.store.mu.RLock()
	ok := exists()
	u.store.mu.RUnlock()
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := u.store.locks.acquire(ctx, key, u.store.lockTimeout); err != nil {
		return err
	}
	u.held = append(u.held, key)
	return nil
}

func (u *unitOfWork) releaseLocks() {
	for i := len(u.held) - 1; i >= 0; i-- {
		u.store.locks.release(u.held[i])
	}
	u.held = nil
}

func (u *unitOfWork) LockCreditRequest(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	s := u.store
	if err := u.lock(ctx, rowKey{rowCreditRequest, requestID}, func() bool {
		_, ok := s.creditRequests[requestID]
		return ok
	}); err != nil {
		return nil, err
	}
	if staged, ok := u.requestUpdates[requestID]; ok {
		return &staged, nil
	}
	return s.FindCreditRequestByID(ctx, requestID)
}

func (u *unitOfWork) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	s := u.store
	if err := u.lock(ctx, rowKey{rowAccount, accountID}, func() bool {
		_, ok := s.accounts[accountID]
		return ok
	}); err != nil {
		return nil, err
	}
	if staged, ok := u.accounts[accountID]; ok {
		return &staged, nil
	}
	return s.FindAccountByID(ctx, accountID)
}

func (u *unitOfWork) LockTarget(ctx context.Context, targetID string) (*domain.Target, error) {
	s := u.store
	if err := u.lock(ctx, rowKey{rowTarget, targetID}, func() bool {
		_, ok := s.targets[targetID]
		return ok
	}); err != nil {
		return nil, err
	}
	if staged, ok := u.targets[targetID]; ok {
		return &staged, nil
	}
	return s.FindTargetByID(ctx, targetID)
}

func (u *unitOfWork) SaveAccountBalance(_ context.Context, account domain.Account) error {
	u.mustHold(rowKey{rowAccount, account.AccountID})
	u.accounts[account.AccountID] = account
	return nil
}

func (u *unitOfWork) SaveTargetBalance(_ context.Context, target domain.Target) error {
	u.mustHold(rowKey{rowTarget, target.TargetID})
	u.targets[target.TargetID] = target
	return nil
}

func (u *unitOfWork) SaveCreditRequestStatus(_ context.Context, request domain.CreditRequest) error {
	u.mustHold(rowKey{rowCreditRequest, request.RequestID})
	u.requestUpdates[request.RequestID] = request
	return nil
}

func (u *unitOfWork) stageKey(key domain.OperationKey) error {
	if _, ok := u.stagedKeys[key]; ok {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, key)
	}
	u.stagedKeys[key] = struct{}{}
	return nil
}

func (u *unitOfWork) InsertCreditRequest(_ context.Context, request domain.CreditRequest) error {
	if err := u.stageKey(domain.OperationKey{Scope: domain.KeyScopeReferenceID, Value: request.ReferenceID}); err != nil {
		return err
	}
	u.newRequests = append(u.newRequests, request)
	return nil
}

func (u *unitOfWork) InsertChargeSale(_ context.Context, sale domain.ChargeSale) error {
	if err := u.stageKey(domain.OperationKey{Scope: domain.KeyScopeTransactionID, Value: sale.TransactionID}); err != nil {
		return err
	}
	u.newSales = append(u.newSales, sale)
	return nil
}

func (u *unitOfWork) AppendLedgerEntry(_ context.Context, entry *domain.LedgerEntry) error {
	if err := u.stageKey(domain.OperationKey{Scope: domain.KeyScopeLedger, Value: entry.IdempotencyKey}); err != nil {
		return err
	}
	u.entries = append(u.entries, entry)
	return nil
}

func (u *unitOfWork) KeyExists(_ context.Context, key domain.OperationKey) (bool, error) {
	if _, ok := u.stagedKeys[key]; ok {
		return true, nil
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return u.store.keyExistsLocked(key)
}

// commit re-checks every unique key against committed state and then applies
// all staged writes at once.
func (u *unitOfWork) commit() error {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range u.stagedKeys {
		exists, err := s.keyExistsLocked(key)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, key)
		}
	}

	for id, account := range u.accounts {
		s.accounts[id] = account
	}
	for id, target := range u.targets {
		s.targets[id] = target
	}
	for id, req := range u.requestUpdates {
		s.creditRequests[id] = req
	}
	for _, req := range u.newRequests {
		s.creditRequests[req.RequestID] = req
		s.referenceIndex[req.ReferenceID] = req.RequestID
	}
	for _, sale := range u.newSales {
		s.chargeSales[sale.TransactionID] = sale
	}
	for _, entry := range u.entries {
		entry.Sequence = int64(len(s.ledger)) + 1
		s.ledger = append(s.ledger, *entry)
		idx := len(s.ledger) - 1
		s.ledgerKeys[entry.IdempotencyKey] = idx
		s.ledgerByAccount[entry.AccountID] = append(s.ledgerByAccount[entry.AccountID], idx)
	}
	return nil
}
