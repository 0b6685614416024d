package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/SscSPs/recharge_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// pgxUnitOfWork executes inside one transaction. Row locks are taken with
// SELECT ... FOR UPDATE and released by PostgreSQL at commit or rollback.
type pgxUnitOfWork struct {
	tx   pgx.Tx
	held map[string]struct{}
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

func newPgxUnitOfWork(tx pgx.Tx) *pgxUnitOfWork {
	return &pgxUnitOfWork{tx: tx, held: make(map[string]struct{})}
}

func (u *pgxUnitOfWork) mustHold(table, id string) {
	if _, ok := u.held[table+":"+id]; !ok {
		panic(fmt.Sprintf("pgsql: write to %s(%s) without holding its lock", table, id))
	}
}

func (u *pgxUnitOfWork) LockCreditRequest(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	m, err := scanCreditRequest(u.tx.QueryRow(ctx,
		`SELECT `+creditRequestColumns+` FROM credit_requests WHERE request_id = $1 FOR UPDATE`, requestID))
	if err != nil {
		return nil, mapError(err, "lock credit request "+requestID)
	}
	u.held["credit_requests:"+requestID] = struct{}{}
	d, err := mapping.ToDomainCreditRequest(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (u *pgxUnitOfWork) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	m, err := scanAccount(u.tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE`, accountID))
	if err != nil {
		return nil, mapError(err, "lock account "+accountID)
	}
	u.held["accounts:"+accountID] = struct{}{}
	d, err := mapping.ToDomainAccount(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (u *pgxUnitOfWork) LockTarget(ctx context.Context, targetID string) (*domain.Target, error) {
	m, err := scanTarget(u.tx.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM targets WHERE target_id = $1 FOR UPDATE`, targetID))
	if err != nil {
		return nil, mapError(err, "lock target "+targetID)
	}
	u.held["targets:"+targetID] = struct{}{}
	d, err := mapping.ToDomainTarget(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// expectOneRow turns an UPDATE that matched nothing into ErrNotFound.
func expectOneRow(affected int64, what string) error {
	if affected != 1 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}

func (u *pgxUnitOfWork) SaveAccountBalance(ctx context.Context, account domain.Account) error {
	u.mustHold("accounts", account.AccountID)
	m := mapping.ToModelAccount(account)
	tag, err := u.tx.Exec(ctx,
		`UPDATE accounts SET balance = $2, last_updated_at = $3 WHERE account_id = $1`,
		m.AccountID, m.Balance, m.LastUpdatedAt)
	if err != nil {
		return mapError(err, "update account "+account.AccountID)
	}
	return expectOneRow(tag.RowsAffected(), "account "+account.AccountID)
}

func (u *pgxUnitOfWork) SaveTargetBalance(ctx context.Context, target domain.Target) error {
	u.mustHold("targets", target.TargetID)
	m := mapping.ToModelTarget(target)
	tag, err := u.tx.Exec(ctx,
		`UPDATE targets SET balance = $2, last_charged_at = $3, last_updated_at = $4 WHERE target_id = $1`,
		m.TargetID, m.Balance, m.LastChargedAt, m.LastUpdatedAt)
	if err != nil {
		return mapError(err, "update target "+target.TargetID)
	}
	return expectOneRow(tag.RowsAffected(), "target "+target.TargetID)
}

func (u *pgxUnitOfWork) SaveCreditRequestStatus(ctx context.Context, request domain.CreditRequest) error {
	u.mustHold("credit_requests", request.RequestID)
	m := mapping.ToModelCreditRequest(request)
	tag, err := u.tx.Exec(ctx,
		`UPDATE credit_requests SET status = $2, processed_at = $3 WHERE request_id = $1`,
		m.RequestID, m.Status, m.ProcessedAt)
	if err != nil {
		return mapError(err, "update credit request "+request.RequestID)
	}
	return expectOneRow(tag.RowsAffected(), "credit request "+request.RequestID)
}

func (u *pgxUnitOfWork) InsertCreditRequest(ctx context.Context, request domain.CreditRequest) error {
	m := mapping.ToModelCreditRequest(request)
	_, err := u.tx.Exec(ctx, `
		INSERT INTO credit_requests (`+creditRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.RequestID, m.ReferenceID, m.AccountID, m.Amount, m.Status, m.CreatedAt, m.ProcessedAt)
	return mapError(err, "insert credit request "+request.ReferenceID)
}

func (u *pgxUnitOfWork) InsertChargeSale(ctx context.Context, sale domain.ChargeSale) error {
	m := mapping.ToModelChargeSale(sale)
	_, err := u.tx.Exec(ctx, `
		INSERT INTO charge_sales (`+chargeSaleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.TransactionID, m.AccountID, m.TargetID, m.Amount, m.TargetBalanceBefore, m.TargetBalanceAfter,
		m.Status, m.StatusMessage, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "insert charge sale "+sale.TransactionID)
}

func (u *pgxUnitOfWork) AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(*entry)
	err := u.tx.QueryRow(ctx, `
		INSERT INTO ledger_entries (idempotency_key, account_id, amount, kind, balance_before, balance_after,
			description, status, ref_kind, ref_id, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING sequence`,
		m.IdempotencyKey, m.AccountID, m.Amount, m.Kind, m.BalanceBefore, m.BalanceAfter,
		m.Description, m.Status, m.RefKind, m.RefID, m.CreatedAt, m.CompletedAt,
	).Scan(&entry.Sequence)
	return mapError(err, "append ledger entry "+entry.IdempotencyKey)
}

func (u *pgxUnitOfWork) KeyExists(ctx context.Context, key domain.OperationKey) (bool, error) {
	return keyExists(ctx, u.tx, key)
}
