package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

var keyExistsQueries = map[domain.KeyScope]string{
	domain.KeyScopeTransactionID: `SELECT EXISTS (SELECT 1 FROM charge_sales WHERE transaction_id = $1)`,
	domain.KeyScopeReferenceID:   `SELECT EXISTS (SELECT 1 FROM credit_requests WHERE reference_id = $1)`,
	domain.KeyScopeLedger:        `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE idempotency_key = $1)`,
}

func keyExists(ctx context.Context, q querier, key domain.OperationKey) (bool, error) {
	query, ok := keyExistsQueries[key.Scope]
	if !ok {
		return false, fmt.Errorf("%w: unknown key scope %q", apperrors.ErrValidation, key.Scope)
	}
	var exists bool
	if err := q.QueryRow(ctx, query, key.Value).Scan(&exists); err != nil {
		return false, mapError(err, "check operation key "+key.String())
	}
	return exists, nil
}

// PgxKeyChecker answers lock-free duplicate checks against committed rows.
type PgxKeyChecker struct {
	BaseRepository
}

func newPgxKeyChecker(pool *pgxpool.Pool) *PgxKeyChecker {
	return &PgxKeyChecker{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.KeyChecker = (*PgxKeyChecker)(nil)

func (r *PgxKeyChecker) OperationKeyExists(ctx context.Context, key domain.OperationKey) (bool, error) {
	return keyExists(ctx, r.Pool, key)
}
