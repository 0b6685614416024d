package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	targetRepo  portsrepo.TargetReader
}

// NewAccountService creates a new AccountSvcFacade.
func NewAccountService(accountRepo portsrepo.AccountReader, targetRepo portsrepo.TargetReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		targetRepo:  targetRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccount(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	if err := s.RequireReader(caller, accountID); err != nil {
		s.LogWarn(ctx, err, "Account read not authorized", slog.String("account_id", accountID))
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		err = wrapNotFound(err, ErrAccountNotFound, accountID)
		s.LogOutcome(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetTarget(ctx context.Context, targetID string) (*domain.Target, error) {
	target, err := s.targetRepo.FindTargetByID(ctx, targetID)
	if err != nil {
		err = wrapNotFound(err, ErrTargetNotFound, targetID)
		s.LogOutcome(ctx, err, "Failed to get target", slog.String("target_id", targetID))
		return nil, err
	}
	return target, nil
}

func (s *accountService) GetTargetByExternalID(ctx context.Context, externalID string) (*domain.Target, error) {
	if err := domain.ValidateExternalID(externalID); err != nil {
		return nil, err
	}
	target, err := s.targetRepo.FindTargetByExternalID(ctx, externalID)
	if err != nil {
		err = wrapNotFound(err, ErrTargetNotFound, externalID)
		s.LogOutcome(ctx, err, "Failed to get target by external id", slog.String("external_id", externalID))
		return nil, err
	}
	return target, nil
}
