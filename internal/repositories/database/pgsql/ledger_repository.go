package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/SscSPs/recharge_backend/internal/utils/mapping"
	"github.com/SscSPs/recharge_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// filterClauses appends kind/status conditions; args already holds the
// account id as $1.
func filterClauses(filter domain.LedgerFilter, args []any) ([]string, []any) {
	where := []string{"account_id = $1"}
	if filter.Kind != nil {
		args = append(args, mapping.ToModelEntryKind(*filter.Kind))
		where = append(where, "kind = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, mapping.ToModelEntryStatus(*filter.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	return where, args
}

func (r *PgxLedgerRepository) accountExists(ctx context.Context, q querier, accountID string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, accountID).Scan(&exists); err != nil {
		return mapError(err, "check account "+accountID)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumByAccount returns the signed sum of matching entry amounts.
func (r *PgxLedgerRepository) SumByAccount(ctx context.Context, accountID string, filter domain.LedgerFilter) (int64, error) {
	if err := r.accountExists(ctx, r.Pool, accountID); err != nil {
		return 0, err
	}
	where, args := filterClauses(filter, []any{accountID})
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE `+strings.Join(where, " AND ")+`;`,
		args...).Scan(&sum)
	if err != nil {
		return 0, mapError(err, "sum ledger for account "+accountID)
	}
	return mapping.ToDomainAmount(sum)
}

// ReplayLedger returns entries after afterSequence in creation order. A
// non-positive limit returns everything.
func (r *PgxLedgerRepository) ReplayLedger(ctx context.Context, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	return r.replay(ctx, r.Pool, accountID, afterSequence, limit)
}

func (r *PgxLedgerRepository) replay(ctx context.Context, q querier, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	if err := r.accountExists(ctx, q, accountID); err != nil {
		return nil, err
	}
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE account_id = $1 AND sequence > $2 ORDER BY sequence ASC`
	args := []any{accountID, afterSequence}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}
	rows, err := q.Query(ctx, query+";", args...)
	if err != nil {
		return nil, mapError(err, "replay ledger for account "+accountID)
	}
	ms, err := collect(rows, scanLedgerEntry)
	if err != nil {
		return nil, mapError(err, "scan ledger entries")
	}
	return mapping.ToDomainLedgerEntrySlice(ms)
}

// SnapshotAccountLedger reads the account row and its full ledger in one
// repeatable-read transaction.
func (r *PgxLedgerRepository) SnapshotAccountLedger(ctx context.Context, accountID string) (*domain.Account, []domain.LedgerEntry, error) {
	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m, err := scanAccount(tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID))
	if err != nil {
		return nil, nil, mapError(err, "snapshot account "+accountID)
	}
	account, err := mapping.ToDomainAccount(m)
	if err != nil {
		return nil, nil, err
	}
	entries, err := r.replay(ctx, tx, accountID, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	return &account, entries, nil
}

// ListLedgerEntries lists entries newest first using a sequence cursor.
func (r *PgxLedgerRepository) ListLedgerEntries(ctx context.Context, params domain.ListLedgerParams) ([]domain.LedgerEntry, *string, error) {
	if err := r.accountExists(ctx, r.Pool, params.AccountID); err != nil {
		return nil, nil, err
	}
	limit := params.NormalizedLimit()
	where, args := filterClauses(params.Filter, []any{params.AccountID})
	if params.NextToken != nil && *params.NextToken != "" {
		before, err := pagination.DecodeSequenceToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, before)
		where = append(where, "sequence < $"+strconv.Itoa(len(args)))
	}
	args = append(args, limit+1)
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY sequence DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "list ledger entries")
	}
	ms, err := collect(rows, scanLedgerEntry)
	if err != nil {
		return nil, nil, mapError(err, "scan ledger entries")
	}

	var next *string
	if len(ms) > limit {
		token := pagination.EncodeSequenceToken(ms[limit-1].Sequence)
		next = &token
		ms = ms[:limit]
	}
	ds, err := mapping.ToDomainLedgerEntrySlice(ms)
	if err != nil {
		return nil, nil, err
	}
	return ds, next, nil
}
