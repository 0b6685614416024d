package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/repositories/database/memory"
	"github.com/stretchr/testify/suite"
)

func ownerOf(accountID string) domain.Caller {
	return domain.Caller{
		UserID:       "user-" + accountID,
		AccountID:    accountID,
		Capabilities: []domain.Capability{domain.CapabilityAccountOwner},
	}
}

// CoordinatorTestSuite exercises the services against the in-memory store,
// which takes real row locks, so concurrent tests run real contention.
type CoordinatorTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	repos     portsrepo.RepositoryProvider
	svc       *portssvc.ServiceContainer
	admin     domain.Caller
	accountID string
	targetID  string
	seller    domain.Caller
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore(5 * time.Second)
	s.repos = memory.NewRepositoryProvider(s.store)
	s.svc = NewServiceContainer(s.repos)
	s.admin = domain.SystemCaller()

	account, err := s.svc.Provisioning.ProvisionAccount(s.ctx, "seller-1")
	s.Require().NoError(err)
	target, err := s.svc.Provisioning.RegisterTarget(s.ctx, "09121234567")
	s.Require().NoError(err)
	s.accountID = account.AccountID
	s.targetID = target.TargetID
	s.seller = ownerOf(s.accountID)
}

// credit submits and approves a credit request.
func (s *CoordinatorTestSuite) credit(referenceID string, amount int64) *domain.CreditRequest {
	req, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{
		ReferenceID: referenceID,
		Amount:      amount,
	})
	s.Require().NoError(err)
	approved, err := s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, domain.DecisionApprove)
	s.Require().NoError(err)
	return approved
}

func (s *CoordinatorTestSuite) charge(transactionID string, amount int64) (*domain.ChargeSale, error) {
	return s.svc.ChargeSale.SubmitChargeSale(s.ctx, s.seller, dto.SubmitChargeSaleRequest{
		TransactionID: transactionID,
		TargetID:      s.targetID,
		Amount:        amount,
	})
}

func (s *CoordinatorTestSuite) balances() (int64, int64) {
	account, err := s.store.FindAccountByID(s.ctx, s.accountID)
	s.Require().NoError(err)
	target, err := s.store.FindTargetByID(s.ctx, s.targetID)
	s.Require().NoError(err)
	return account.Balance, target.Balance
}

func (s *CoordinatorTestSuite) assertReconciles() {
	rec, err := s.svc.Ledger.Reconcile(s.ctx, s.admin, s.accountID)
	s.Require().NoError(err)
	s.True(rec.Consistent, rec.Problem)
}

func (s *CoordinatorTestSuite) TestEndToEndScenario() {
	s.credit("ref-opening", 1000)
	_, err := s.charge("tx-first", 50)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := map[string]int{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.charge(fmt.Sprintf("tx-%02d", i), 50)
			mu.Lock()
			outcomes[apperrors.Kind(err)]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	s.Equal(19, outcomes["ok"])
	s.Equal(1, outcomes["insufficient_credit"])

	accountBalance, targetBalance := s.balances()
	s.Zero(accountBalance)
	s.Equal(int64(1000), targetBalance)

	sum, err := s.svc.Ledger.SumByAccount(s.ctx, s.seller, s.accountID, domain.LedgerFilter{})
	s.Require().NoError(err)
	s.Zero(sum)

	entries, err := s.svc.Ledger.Replay(s.ctx, s.seller, s.accountID, 0, 0)
	s.Require().NoError(err)
	s.Len(entries, 21)
	s.assertReconciles()
}

func (s *CoordinatorTestSuite) TestChargeSale_RecordsSaleAndEntry() {
	s.credit("ref-1", 300)
	sale, err := s.charge("tx-1", 120)
	s.Require().NoError(err)

	s.Equal(domain.ChargeSaleSuccessful, sale.Status)
	s.Equal(int64(0), sale.TargetBalanceBefore)
	s.Equal(int64(120), sale.TargetBalanceAfter)

	stored, err := s.svc.ChargeSale.GetChargeSale(s.ctx, s.seller, "tx-1")
	s.Require().NoError(err)
	s.Equal(sale.Amount, stored.Amount)

	target, err := s.svc.Account.GetTarget(s.ctx, s.targetID)
	s.Require().NoError(err)
	s.Require().NotNil(target.LastChargedAt)

	kind := domain.EntryChargeSale
	entries, next, err := s.svc.Ledger.ListEntries(s.ctx, s.seller, domain.ListLedgerParams{
		ListParams: domain.ListParams{AccountID: s.accountID},
		Filter:     domain.LedgerFilter{Kind: &kind},
	})
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(entries, 1)
	s.Equal("charge_sale:tx-1", entries[0].IdempotencyKey)
	s.Equal(int64(-120), entries[0].Amount)
	s.Equal("Charge sale for phone 09121234567", entries[0].Description)
}

func (s *CoordinatorTestSuite) TestChargeSale_InsufficientCreditLeavesNoTrace() {
	s.credit("ref-1", 40)
	_, err := s.charge("tx-1", 50)
	s.ErrorIs(err, apperrors.ErrInsufficientCredit)
	s.NotErrorIs(err, apperrors.ErrDuplicate)

	accountBalance, targetBalance := s.balances()
	s.Equal(int64(40), accountBalance)
	s.Zero(targetBalance)

	_, err = s.svc.ChargeSale.GetChargeSale(s.ctx, s.seller, "tx-1")
	s.ErrorIs(err, apperrors.ErrNotFound)

	// The identifier was not consumed by the failed attempt.
	s.credit("ref-2", 10)
	_, err = s.charge("tx-1", 50)
	s.NoError(err)
}

func (s *CoordinatorTestSuite) TestChargeSale_DuplicateSequential() {
	s.credit("ref-1", 500)
	_, err := s.charge("tx-1", 100)
	s.Require().NoError(err)

	_, err = s.charge("tx-1", 100)
	s.ErrorIs(err, ErrDuplicateTransaction)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	accountBalance, targetBalance := s.balances()
	s.Equal(int64(400), accountBalance)
	s.Equal(int64(100), targetBalance)
}

func (s *CoordinatorTestSuite) TestChargeSale_DuplicateConcurrent() {
	s.credit("ref-1", 1000)

	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := map[string]int{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.charge("tx-same", 10)
			mu.Lock()
			outcomes[apperrors.Kind(err)]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Equal(1, outcomes["ok"])
	s.Equal(9, outcomes["duplicate"])
	accountBalance, _ := s.balances()
	s.Equal(int64(990), accountBalance)
	s.assertReconciles()
}

func (s *CoordinatorTestSuite) TestChargeSale_Validation() {
	tests := []struct {
		name string
		req  dto.SubmitChargeSaleRequest
	}{
		{name: "missing transaction id", req: dto.SubmitChargeSaleRequest{TargetID: "t", Amount: 1}},
		{name: "missing target", req: dto.SubmitChargeSaleRequest{TransactionID: "tx", Amount: 1}},
		{name: "zero amount", req: dto.SubmitChargeSaleRequest{TransactionID: "tx", TargetID: "t"}},
		{name: "negative amount", req: dto.SubmitChargeSaleRequest{TransactionID: "tx", TargetID: "t", Amount: -5}},
		{name: "amount too large", req: dto.SubmitChargeSaleRequest{TransactionID: "tx", TargetID: "t", Amount: domain.MaxAmount + 1}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.ChargeSale.SubmitChargeSale(s.ctx, s.seller, tt.req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *CoordinatorTestSuite) TestChargeSale_NotFoundAndForbidden() {
	_, err := s.svc.ChargeSale.SubmitChargeSale(s.ctx, s.seller, dto.SubmitChargeSaleRequest{
		TransactionID: "tx-1", TargetID: "missing", Amount: 1,
	})
	s.ErrorIs(err, ErrTargetNotFound)

	_, err = s.svc.ChargeSale.SubmitChargeSale(s.ctx, ownerOf("someone-else"), dto.SubmitChargeSaleRequest{
		TransactionID: "tx-1", AccountID: s.accountID, TargetID: s.targetID, Amount: 1,
	})
	s.ErrorIs(err, apperrors.ErrForbidden)

	// Administrators read but do not sell on behalf of sellers.
	_, err = s.svc.ChargeSale.SubmitChargeSale(s.ctx, s.admin, dto.SubmitChargeSaleRequest{
		TransactionID: "tx-1", AccountID: s.accountID, TargetID: s.targetID, Amount: 1,
	})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *CoordinatorTestSuite) TestCreditRequest_DuplicateReference() {
	_, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 10})
	s.Require().NoError(err)

	_, err = s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 99})
	s.ErrorIs(err, ErrDuplicateReference)

	reqs, _, err := s.svc.CreditRequest.ListCreditRequests(s.ctx, s.seller, domain.ListParams{})
	s.Require().NoError(err)
	s.Len(reqs, 1)
}

func (s *CoordinatorTestSuite) TestCreditRequest_DuplicateReferenceAcrossAccounts() {
	other, err := s.svc.Provisioning.ProvisionAccount(s.ctx, "seller-2")
	s.Require().NoError(err)
	sellers := []domain.Caller{s.seller, ownerOf(other.AccountID)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := map[string]int{}
	for i := 0; i < 10; i++ {
		caller := sellers[i%2]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, caller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-shared", Amount: 10})
			mu.Lock()
			outcomes[apperrors.Kind(err)]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Equal(1, outcomes["ok"])
	s.Equal(9, outcomes["duplicate"])

	total := 0
	for _, caller := range sellers {
		reqs, _, err := s.svc.CreditRequest.ListCreditRequests(s.ctx, caller, domain.ListParams{})
		s.Require().NoError(err)
		total += len(reqs)
	}
	s.Equal(1, total)
}

func (s *CoordinatorTestSuite) TestProcessCreditRequest_BalanceLimit() {
	s.credit("ref-1", 600_000_000_000)
	req, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-2", Amount: 600_000_000_000})
	s.Require().NoError(err)

	_, err = s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, domain.DecisionApprove)
	s.ErrorIs(err, ErrBalanceLimit)
	s.Equal("validation", apperrors.Kind(err))

	stored, err := s.svc.CreditRequest.GetCreditRequest(s.ctx, s.seller, req.RequestID)
	s.Require().NoError(err)
	s.Equal(domain.CreditRequestPending, stored.Status)
	accountBalance, _ := s.balances()
	s.Equal(int64(600_000_000_000), accountBalance)
	s.assertReconciles()

	// Rejecting is still possible.
	_, err = s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, domain.DecisionReject)
	s.NoError(err)
}

func (s *CoordinatorTestSuite) TestChargeSale_TargetBalanceLimit() {
	s.credit("ref-1", domain.MaxAmount)
	_, err := s.charge("tx-fill", domain.MaxAmount)
	s.Require().NoError(err)
	s.credit("ref-2", 1)

	_, err = s.charge("tx-over", 1)
	s.ErrorIs(err, ErrBalanceLimit)
	s.Equal("validation", apperrors.Kind(err))

	accountBalance, targetBalance := s.balances()
	s.Equal(int64(1), accountBalance)
	s.Equal(domain.MaxAmount, targetBalance)
	_, err = s.svc.ChargeSale.GetChargeSale(s.ctx, s.seller, "tx-over")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.assertReconciles()
}

func (s *CoordinatorTestSuite) TestCreditRequest_PendingDoesNotMoveBalance() {
	req, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 10})
	s.Require().NoError(err)
	s.Equal(domain.CreditRequestPending, req.Status)
	s.Nil(req.ProcessedAt)

	accountBalance, _ := s.balances()
	s.Zero(accountBalance)
}

func (s *CoordinatorTestSuite) TestProcessCreditRequest_Reject() {
	req, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 10})
	s.Require().NoError(err)

	rejected, err := s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, domain.DecisionReject)
	s.Require().NoError(err)
	s.Equal(domain.CreditRequestRejected, rejected.Status)
	s.NotNil(rejected.ProcessedAt)

	accountBalance, _ := s.balances()
	s.Zero(accountBalance)
	entries, err := s.svc.Ledger.Replay(s.ctx, s.admin, s.accountID, 0, 0)
	s.Require().NoError(err)
	s.Empty(entries)

	_, err = s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, domain.DecisionApprove)
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
}

func (s *CoordinatorTestSuite) TestProcessCreditRequest_ApproveTwice() {
	approved := s.credit("ref-1", 10)
	s.Equal(domain.CreditRequestApproved, approved.Status)

	_, err := s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, approved.RequestID, domain.DecisionApprove)
	s.ErrorIs(err, ErrAlreadyProcessed)

	accountBalance, _ := s.balances()
	s.Equal(int64(10), accountBalance)
}

func (s *CoordinatorTestSuite) TestProcessCreditRequest_ConcurrentDecisions() {
	req, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 70})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners []domain.CreditRequestStatus
	losers := 0
	for i := 0; i < 8; i++ {
		decision := domain.DecisionApprove
		if i%2 == 1 {
			decision = domain.DecisionReject
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			processed, err := s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, decision)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, processed.Status)
				return
			}
			s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
			losers++
		}()
	}
	wg.Wait()

	s.Require().Len(winners, 1)
	s.Equal(7, losers)

	stored, err := s.svc.CreditRequest.GetCreditRequest(s.ctx, s.seller, req.RequestID)
	s.Require().NoError(err)
	s.Equal(winners[0], stored.Status)

	accountBalance, _ := s.balances()
	if winners[0] == domain.CreditRequestApproved {
		s.Equal(int64(70), accountBalance)
	} else {
		s.Zero(accountBalance)
	}
	s.assertReconciles()
}

func (s *CoordinatorTestSuite) TestProcessCreditRequest_Guards() {
	req, err := s.svc.CreditRequest.SubmitCreditRequest(s.ctx, s.seller, dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 10})
	s.Require().NoError(err)

	_, err = s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.seller, req.RequestID, domain.DecisionApprove)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, req.RequestID, domain.Decision("maybe"))
	s.ErrorIs(err, ErrInvalidDecision)

	_, err = s.svc.CreditRequest.ProcessCreditRequest(s.ctx, s.admin, "missing", domain.DecisionApprove)
	s.ErrorIs(err, ErrCreditRequestNotFound)
}

func (s *CoordinatorTestSuite) TestTransientFaultRollsBackAndRetrySucceeds() {
	s.credit("ref-1", 100)

	faulty := s.repos
	faulty.TxManager = failingCommit{inner: s.repos.TxManager}
	flaky := NewChargeSaleService(faulty)

	_, err := flaky.SubmitChargeSale(s.ctx, s.seller, dto.SubmitChargeSaleRequest{TransactionID: "tx-1", TargetID: s.targetID, Amount: 30})
	s.ErrorIs(err, apperrors.ErrTransient)
	s.True(apperrors.IsRetryable(err))

	accountBalance, targetBalance := s.balances()
	s.Equal(int64(100), accountBalance)
	s.Zero(targetBalance)

	_, err = s.charge("tx-1", 30)
	s.Require().NoError(err)
	accountBalance, targetBalance = s.balances()
	s.Equal(int64(70), accountBalance)
	s.Equal(int64(30), targetBalance)
	s.assertReconciles()
}

func (s *CoordinatorTestSuite) TestReads_Authorization() {
	s.credit("ref-1", 10)
	stranger := ownerOf("stranger")

	_, err := s.svc.Account.GetAccount(s.ctx, stranger, s.accountID)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.svc.Ledger.SumByAccount(s.ctx, stranger, s.accountID, domain.LedgerFilter{})
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, _, err = s.svc.CreditRequest.ListCreditRequests(s.ctx, stranger, domain.ListParams{AccountID: s.accountID})
	s.ErrorIs(err, apperrors.ErrForbidden)

	account, err := s.svc.Account.GetAccount(s.ctx, s.admin, s.accountID)
	s.Require().NoError(err)
	s.Equal(int64(10), account.Balance)

	all, _, err := s.svc.CreditRequest.ListCreditRequests(s.ctx, s.admin, domain.ListParams{})
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *CoordinatorTestSuite) TestLedger_MissingAccount() {
	_, err := s.svc.Ledger.SumByAccount(s.ctx, s.admin, "missing", domain.LedgerFilter{})
	s.ErrorIs(err, ErrAccountNotFound)
	_, err = s.svc.Ledger.Replay(s.ctx, s.admin, s.accountID, -1, 0)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

// failingCommit runs the unit of work and then reports a transient fault
// instead of committing, as a lost connection at commit would.
type failingCommit struct {
	inner portsrepo.TransactionManager
}

func (f failingCommit) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	return f.inner.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := fn(ctx, uow); err != nil {
			return err
		}
		return fmt.Errorf("%w: connection lost before commit", apperrors.ErrTransient)
	})
}
