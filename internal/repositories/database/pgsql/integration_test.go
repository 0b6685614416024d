package pgsql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/SscSPs/recharge_backend/internal/core/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/recharge_backend/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

// PostgresTestSuite runs against a real database named by DATABASE_URL.
type PostgresTestSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func (s *PostgresTestSuite) SetupSuite() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		s.T().Skip("DATABASE_URL not set; skipping PostgreSQL integration tests")
	}
	s.ctx = context.Background()

	s.Require().NoError(database.RunMigrations(url, "file://../../../../migrations"))

	var err error
	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool, 2*time.Second)
}

func (s *PostgresTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *PostgresTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE ledger_entries, charge_sales, credit_requests, targets, accounts RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) provision() (*domain.Account, *domain.Target) {
	svc := services.NewProvisioningService(s.repos.AccountRepo, s.repos.TargetRepo)
	account, err := svc.ProvisionAccount(s.ctx, "")
	s.Require().NoError(err)
	target, err := svc.RegisterTarget(s.ctx, "09120000000")
	s.Require().NoError(err)
	return account, target
}

func (s *PostgresTestSuite) TestConcurrentChargeSalesNeverOverdraw() {
	account, target := s.provision()
	container := services.NewServiceContainer(s.repos)
	admin := domain.SystemCaller()
	owner := domain.Caller{UserID: "u", AccountID: account.AccountID, Capabilities: []domain.Capability{domain.CapabilityAccountOwner}}

	req, err := container.CreditRequest.SubmitCreditRequest(s.ctx, owner, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 1000})
	s.Require().NoError(err)
	_, err = container.CreditRequest.ProcessCreditRequest(s.ctx, admin, req.RequestID, domain.DecisionApprove)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := map[string]int{}
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := container.ChargeSale.SubmitChargeSale(s.ctx, owner, dto.SubmitChargeSaleRequest{
				TransactionID: "tx-" + string(rune('a'+i)),
				TargetID:      target.TargetID,
				Amount:        50,
			})
			mu.Lock()
			outcomes[apperrors.Kind(err)]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	s.Equal(20, outcomes["ok"])
	s.Equal(5, outcomes["insufficient_credit"])

	rec, err := container.Ledger.Reconcile(s.ctx, admin, account.AccountID)
	s.Require().NoError(err)
	s.True(rec.Consistent, rec.Problem)
	s.Zero(rec.StoredBalance)
	s.Equal(21, rec.Entries)
}

func (s *PostgresTestSuite) TestDuplicateTransactionIDRejected() {
	account, target := s.provision()
	container := services.NewServiceContainer(s.repos)
	owner := domain.Caller{UserID: "u", AccountID: account.AccountID, Capabilities: []domain.Capability{domain.CapabilityAccountOwner}}

	req, err := container.CreditRequest.SubmitCreditRequest(s.ctx, owner, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 100})
	s.Require().NoError(err)
	_, err = container.CreditRequest.ProcessCreditRequest(s.ctx, domain.SystemCaller(), req.RequestID, domain.DecisionApprove)
	s.Require().NoError(err)

	cmd := dto.SubmitChargeSaleRequest{TransactionID: "tx-1", TargetID: target.TargetID, Amount: 10}
	_, err = container.ChargeSale.SubmitChargeSale(s.ctx, owner, cmd)
	s.Require().NoError(err)
	_, err = container.ChargeSale.SubmitChargeSale(s.ctx, owner, cmd)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	sum, err := s.repos.LedgerRepo.SumByAccount(s.ctx, account.AccountID, domain.LedgerFilter{})
	s.Require().NoError(err)
	s.Equal(int64(90), sum)
}

func (s *PostgresTestSuite) TestLockTimeoutIsTransient() {
	account, _ := s.provision()
	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.repos.TxManager.WithinTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
			_, err := uow.LockAccount(ctx, account.AccountID)
			close(held)
			<-release
			return err
		})
	}()
	<-held

	err := s.repos.TxManager.WithinTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		_, err := uow.LockAccount(ctx, account.AccountID)
		return err
	})
	close(release)
	s.ErrorIs(err, apperrors.ErrTransient)
}

func (s *PostgresTestSuite) TestConcurrentDecisionsResolveOnce() {
	account, _ := s.provision()
	container := services.NewServiceContainer(s.repos)
	admin := domain.SystemCaller()
	owner := domain.Caller{UserID: "u", AccountID: account.AccountID, Capabilities: []domain.Capability{domain.CapabilityAccountOwner}}

	req, err := container.CreditRequest.SubmitCreditRequest(s.ctx, owner, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 300})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners []domain.CreditRequestStatus
	outcomes := map[string]int{}
	for i := 0; i < 10; i++ {
		decision := domain.DecisionApprove
		if i%2 == 1 {
			decision = domain.DecisionReject
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			processed, err := container.CreditRequest.ProcessCreditRequest(s.ctx, admin, req.RequestID, decision)
			mu.Lock()
			defer mu.Unlock()
			outcomes[apperrors.Kind(err)]++
			if err == nil {
				winners = append(winners, processed.Status)
			}
		}()
	}
	wg.Wait()

	s.Require().Len(winners, 1)
	s.Equal(9, outcomes["already_processed"])

	stored, err := s.repos.CreditRequestRepo.FindCreditRequestByID(s.ctx, req.RequestID)
	s.Require().NoError(err)
	s.Equal(winners[0], stored.Status)
	s.NotNil(stored.ProcessedAt)

	rec, err := container.Ledger.Reconcile(s.ctx, admin, account.AccountID)
	s.Require().NoError(err)
	s.True(rec.Consistent, rec.Problem)
	if winners[0] == domain.CreditRequestApproved {
		s.Equal(int64(300), rec.StoredBalance)
		s.Equal(1, rec.Entries)
	} else {
		s.Zero(rec.StoredBalance)
		s.Zero(rec.Entries)
	}
}

func (s *PostgresTestSuite) TestSnapshotIsConsistentUnderWrites() {
	account, target := s.provision()
	container := services.NewServiceContainer(s.repos)
	owner := domain.Caller{UserID: "u", AccountID: account.AccountID, Capabilities: []domain.Capability{domain.CapabilityAccountOwner}}

	req, err := container.CreditRequest.SubmitCreditRequest(s.ctx, owner, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 1000})
	s.Require().NoError(err)
	_, err = container.CreditRequest.ProcessCreditRequest(s.ctx, domain.SystemCaller(), req.RequestID, domain.DecisionApprove)
	s.Require().NoError(err)

	done := make(chan struct{})
	var writers sync.WaitGroup
	for i := 0; i < 10; i++ {
		writers.Add(1)
		go func(i int) {
			defer writers.Done()
			_, _ = container.ChargeSale.SubmitChargeSale(s.ctx, owner, dto.SubmitChargeSaleRequest{
				TransactionID: "tx-" + string(rune('a'+i)),
				TargetID:      target.TargetID,
				Amount:        10,
			})
		}(i)
	}
	go func() {
		writers.Wait()
		close(done)
	}()

	snapshots := 0
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
		}
		stored, entries, err := s.repos.LedgerRepo.SnapshotAccountLedger(s.ctx, account.AccountID)
		s.Require().NoError(err)
		rec := services.Reconcile(*stored, entries)
		s.True(rec.Consistent, rec.Problem)
		snapshots++
	}
	s.Positive(snapshots)

	stored, entries, err := s.repos.LedgerRepo.SnapshotAccountLedger(s.ctx, account.AccountID)
	s.Require().NoError(err)
	s.Equal(int64(900), stored.Balance)
	s.Len(entries, 11)

	// A balance changed outside the ledger no longer reconciles.
	_, err = s.pool.Exec(s.ctx, `UPDATE accounts SET balance = balance + 1 WHERE account_id = $1`, account.AccountID)
	s.Require().NoError(err)
	rec, err := container.Ledger.Reconcile(s.ctx, domain.SystemCaller(), account.AccountID)
	s.Require().NoError(err)
	s.False(rec.Consistent)
	s.Equal(int64(901), rec.StoredBalance)
	s.Equal(int64(900), rec.ReplayedBalance)
}

func TestPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}
