package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type provisioningService struct {
	BaseService
	accountRepo portsrepo.AccountWriter
	targetRepo  portsrepo.TargetWriter
}

// NewProvisioningService creates a new ProvisioningSvcFacade.
func NewProvisioningService(accountRepo portsrepo.AccountWriter, targetRepo portsrepo.TargetWriter, options ...ServiceOption) portssvc.ProvisioningSvcFacade {
	return &provisioningService{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		targetRepo:  targetRepo,
	}
}

var _ portssvc.ProvisioningSvcFacade = (*provisioningService)(nil)

func (s *provisioningService) ProvisionAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		accountID = uuid.NewString()
	}
	now := s.Now()
	account := domain.Account{
		AccountID:   accountID,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogOutcome(ctx, err, "Failed to provision account", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account provisioned", slog.String("account_id", accountID))
	return &account, nil
}

func (s *provisioningService) RegisterTarget(ctx context.Context, externalID string) (*domain.Target, error) {
	if err := domain.ValidateExternalID(externalID); err != nil {
		s.LogWarn(ctx, err, "Target rejected", slog.String("external_id", externalID))
		return nil, err
	}
	now := s.Now()
	target := domain.Target{
		TargetID:    uuid.NewString(),
		ExternalID:  externalID,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.targetRepo.SaveTarget(ctx, target); err != nil {
		s.LogOutcome(ctx, err, "Failed to register target", slog.String("external_id", externalID))
		return nil, err
	}
	s.LogInfo(ctx, "Target registered", slog.String("target_id", target.TargetID), slog.String("external_id", externalID))
	return &target, nil
}
