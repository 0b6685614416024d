package services

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	GetAccount(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error)
}

// TargetReaderSvc defines read operations for targets
type TargetReaderSvc interface {
	GetTarget(ctx context.Context, targetID string) (*domain.Target, error)
	GetTargetByExternalID(ctx context.Context, externalID string) (*domain.Target, error)
}

// AccountSvcFacade combines account and target reads
type AccountSvcFacade interface {
	AccountReaderSvc
	TargetReaderSvc
}

// ProvisioningSvcFacade creates accounts and targets. It is called explicitly
// during system initialization, never from request handling.
type ProvisioningSvcFacade interface {
	// ProvisionAccount creates an account with a zero balance. An empty id
	// generates a new one.
	ProvisionAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// RegisterTarget creates a target with a zero balance.
	RegisterTarget(ctx context.Context, externalID string) (*domain.Target, error)
}
