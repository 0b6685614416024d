package services

import (
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		ChargeSale:    NewChargeSaleService(repos, options...),
		CreditRequest: NewCreditRequestService(repos, options...),
		Ledger:        NewLedgerService(repos.LedgerRepo, options...),
		Account:       NewAccountService(repos.AccountRepo, repos.TargetRepo, options...),
		Provisioning:  NewProvisioningService(repos.AccountRepo, repos.TargetRepo, options...),
	}
}
