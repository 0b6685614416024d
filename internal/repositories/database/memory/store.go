package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
)

// DefaultLockTimeout applies when NewStore is given a non-positive timeout.
const DefaultLockTimeout = 5 * time.Second

// Store is an in-process implementation of every repository port. Row locks
// serialize writers; committed state is guarded by mu and only changes
// inside commit, so readers holding mu.RLock see a consistent snapshot.
type Store struct {
	mu sync.RWMutex

	accounts          map[string]domain.Account
	targets           map[string]domain.Target
	targetsByExternal map[string]string
	creditRequests    map[string]domain.CreditRequest
	referenceIndex    map[string]string
	chargeSales       map[string]domain.ChargeSale
	ledger            []domain.LedgerEntry
	ledgerKeys        map[string]int
	ledgerByAccount   map[string][]int

	locks       *rowLocks
	lockTimeout time.Duration
}

// NewStore creates an empty store.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Store{
		accounts:          make(map[string]domain.Account),
		targets:           make(map[string]domain.Target),
		targetsByExternal: make(map[string]string),
		creditRequests:    make(map[string]domain.CreditRequest),
		referenceIndex:    make(map[string]string),
		chargeSales:       make(map[string]domain.ChargeSale),
		ledgerKeys:        make(map[string]int),
		ledgerByAccount:   make(map[string][]int),
		locks:             newRowLocks(),
		lockTimeout:       lockTimeout,
	}
}

// NewRepositoryProvider exposes store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:         store,
		KeyChecker:        store,
		AccountRepo:       store,
		TargetRepo:        store,
		CreditRequestRepo: store,
		ChargeSaleRepo:    store,
		LedgerRepo:        store,
	}
}

var (
	_ portsrepo.TransactionManager      = (*Store)(nil)
	_ portsrepo.KeyChecker              = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.TargetRepositoryFacade  = (*Store)(nil)
	_ portsrepo.CreditRequestReader     = (*Store)(nil)
	_ portsrepo.ChargeSaleReader        = (*Store)(nil)
	_ portsrepo.LedgerReader            = (*Store)(nil)
)

// WithinTx runs fn in a unit of work. Row locks are released on every exit
// path, including panics raised by fn.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	uow := newUnitOfWork(s)
	defer uow.releaseLocks()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	if err := fn(ctx, uow); err != nil {
		return err
	}
	return uow.commit()
}

func (s *Store) OperationKeyExists(_ context.Context, key domain.OperationKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyExistsLocked(key)
}

func (s *Store) keyExistsLocked(key domain.OperationKey) (bool, error) {
	switch key.Scope {
	case domain.KeyScopeTransactionID:
		_, ok := s.chargeSales[key.Value]
		return ok, nil
	case domain.KeyScopeReferenceID:
		_, ok := s.referenceIndex[key.Value]
		return ok, nil
	case domain.KeyScopeLedger:
		_, ok := s.ledgerKeys[key.Value]
		return ok, nil
	}
	return false, fmt.Errorf("%w: unknown key scope %q", apperrors.ErrValidation, key.Scope)
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	if account.Balance != 0 {
		return fmt.Errorf("%w: new accounts start with a zero balance", apperrors.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindTargetByID(_ context.Context, targetID string) (*domain.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	target, ok := s.targets[targetID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &target, nil
}

func (s *Store) FindTargetByExternalID(_ context.Context, externalID string) (*domain.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.targetsByExternal[externalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	target := s.targets[id]
	return &target, nil
}

func (s *Store) SaveTarget(_ context.Context, target domain.Target) error {
	if target.Balance != 0 {
		return fmt.Errorf("%w: new targets start with a zero balance", apperrors.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.targets[target.TargetID]; exists {
		return fmt.Errorf("%w: target %s", apperrors.ErrDuplicate, target.TargetID)
	}
	if _, exists := s.targetsByExternal[target.ExternalID]; exists {
		return fmt.Errorf("%w: target with external id %s", apperrors.ErrDuplicate, target.ExternalID)
	}
	s.targets[target.TargetID] = target
	s.targetsByExternal[target.ExternalID] = target.TargetID
	return nil
}

func (s *Store) FindCreditRequestByID(_ context.Context, requestID string) (*domain.CreditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.creditRequests[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &req, nil
}

func (s *Store) FindChargeSaleByTransactionID(_ context.Context, transactionID string) (*domain.ChargeSale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.chargeSales[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sale, nil
}
