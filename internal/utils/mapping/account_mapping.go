package mapping

import (
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Balance:     ToModelAmount(d.Balance),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) (domain.Account, error) {
	balance, err := ToDomainAmount(m.Balance)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		AccountID:   m.AccountID,
		Balance:     balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelTarget converts a domain Target to a model Target
func ToModelTarget(d domain.Target) models.Target {
	return models.Target{
		TargetID:      d.TargetID,
		ExternalID:    d.ExternalID,
		Balance:       ToModelAmount(d.Balance),
		LastChargedAt: d.LastChargedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTarget converts a model Target to a domain Target
func ToDomainTarget(m models.Target) (domain.Target, error) {
	balance, err := ToDomainAmount(m.Balance)
	if err != nil {
		return domain.Target{}, err
	}
	return domain.Target{
		TargetID:      m.TargetID,
		ExternalID:    m.ExternalID,
		Balance:       balance,
		LastChargedAt: m.LastChargedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}
