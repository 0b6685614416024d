package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:         newPgxTransactionManager(dbPool, lockTimeout),
		KeyChecker:        newPgxKeyChecker(dbPool),
		AccountRepo:       newPgxAccountRepository(dbPool),
		TargetRepo:        newPgxTargetRepository(dbPool),
		CreditRequestRepo: newPgxCreditRequestRepository(dbPool),
		ChargeSaleRepo:    newPgxChargeSaleRepository(dbPool),
		LedgerRepo:        newPgxLedgerRepository(dbPool),
	}
}
