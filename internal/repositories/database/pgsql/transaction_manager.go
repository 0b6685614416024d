package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionManager runs units of work in PostgreSQL transactions with a
// per-transaction lock_timeout.
type PgxTransactionManager struct {
	BaseRepository
	lockTimeout time.Duration
}

func newPgxTransactionManager(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxTransactionManager {
	return &PgxTransactionManager{BaseRepository: BaseRepository{Pool: pool}, lockTimeout: lockTimeout}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := m.Rollback(ctx, tx); rbErr != nil {
				slog.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	setting := fmt.Sprintf("%dms", m.lockTimeout.Milliseconds())
	if _, err = tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, setting); err != nil {
		return mapError(err, "set lock_timeout")
	}

	if err = fn(ctx, newPgxUnitOfWork(tx)); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
