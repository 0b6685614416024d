package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
)

// idempotencyGuard decides whether an operation identifier may be used.
// Precheck is a cheap optimistic read that lets obvious duplicates fail
// before any lock is taken. Only Reserve, run inside the locked
// transaction, is authoritative; storage unique constraints back it up for
// identifiers that are not covered by a held lock.
type idempotencyGuard struct {
	keys portsrepo.KeyChecker
}

func newIdempotencyGuard(keys portsrepo.KeyChecker) *idempotencyGuard {
	return &idempotencyGuard{keys: keys}
}

// Precheck checks committed state without locks. Accepted here is only a hint.
func (g *idempotencyGuard) Precheck(ctx context.Context, key domain.OperationKey) (domain.ReserveResult, error) {
	if key.Value == "" {
		return 0, fmt.Errorf("%w: empty %s", apperrors.ErrValidation, key.Scope)
	}
	exists, err := g.keys.OperationKeyExists(ctx, key)
	if err != nil {
		return 0, err
	}
	if exists {
		return domain.AlreadyExists, nil
	}
	return domain.Accepted, nil
}

// Reserve is the authoritative check. It must run after the transaction
// holds the locks that serialize competing uses of key.
func (g *idempotencyGuard) Reserve(ctx context.Context, scope *lockScope, key domain.OperationKey) (domain.ReserveResult, error) {
	if !scope.holdsAny() {
		panic(fmt.Sprintf("idempotency reservation of %s outside a locked transaction", key))
	}
	exists, err := scope.KeyExists(ctx, key)
	if err != nil {
		return 0, err
	}
	if exists {
		return domain.AlreadyExists, nil
	}
	return domain.Accepted, nil
}
