package mapping

import (
	"fmt"
	"strings"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/models"
)

// Enum columns are stored upper-case, domain values are lower-case.
func toColumn[T ~string](v string) T   { return T(strings.ToUpper(v)) }
func fromColumn[T ~string](v string) T { return T(strings.ToLower(v)) }

// ToModelCreditRequest converts a domain CreditRequest to a model CreditRequest
func ToModelCreditRequest(d domain.CreditRequest) models.CreditRequest {
	return models.CreditRequest{
		RequestID:   d.RequestID,
		ReferenceID: d.ReferenceID,
		AccountID:   d.AccountID,
		Amount:      ToModelAmount(d.Amount),
		Status:      toColumn[models.CreditRequestStatus](string(d.Status)),
		CreatedAt:   d.CreatedAt,
		ProcessedAt: d.ProcessedAt,
	}
}

// ToDomainCreditRequest converts a model CreditRequest to a domain CreditRequest
func ToDomainCreditRequest(m models.CreditRequest) (domain.CreditRequest, error) {
	amount, err := ToDomainAmount(m.Amount)
	if err != nil {
		return domain.CreditRequest{}, err
	}
	status := fromColumn[domain.CreditRequestStatus](string(m.Status))
	switch status {
	case domain.CreditRequestPending, domain.CreditRequestApproved, domain.CreditRequestRejected:
	default:
		return domain.CreditRequest{}, fmt.Errorf("%w: credit request %s has unknown status %q", apperrors.ErrInvariantViolation, m.RequestID, m.Status)
	}
	return domain.CreditRequest{
		RequestID:   m.RequestID,
		ReferenceID: m.ReferenceID,
		AccountID:   m.AccountID,
		Amount:      amount,
		Status:      status,
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}, nil
}

// ToModelChargeSale converts a domain ChargeSale to a model ChargeSale
func ToModelChargeSale(d domain.ChargeSale) models.ChargeSale {
	return models.ChargeSale{
		TransactionID:       d.TransactionID,
		AccountID:           d.AccountID,
		TargetID:            d.TargetID,
		Amount:              ToModelAmount(d.Amount),
		TargetBalanceBefore: ToModelAmount(d.TargetBalanceBefore),
		TargetBalanceAfter:  ToModelAmount(d.TargetBalanceAfter),
		Status:              toColumn[models.ChargeSaleStatus](string(d.Status)),
		StatusMessage:       d.StatusMessage,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChargeSale converts a model ChargeSale to a domain ChargeSale
func ToDomainChargeSale(m models.ChargeSale) (domain.ChargeSale, error) {
	amount, err := ToDomainAmount(m.Amount)
	if err != nil {
		return domain.ChargeSale{}, err
	}
	before, err := ToDomainAmount(m.TargetBalanceBefore)
	if err != nil {
		return domain.ChargeSale{}, err
	}
	after, err := ToDomainAmount(m.TargetBalanceAfter)
	if err != nil {
		return domain.ChargeSale{}, err
	}
	return domain.ChargeSale{
		TransactionID:       m.TransactionID,
		AccountID:           m.AccountID,
		TargetID:            m.TargetID,
		Amount:              amount,
		TargetBalanceBefore: before,
		TargetBalanceAfter:  after,
		Status:              fromColumn[domain.ChargeSaleStatus](string(m.Status)),
		StatusMessage:       m.StatusMessage,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainCreditRequestSlice converts model rows, stopping at the first bad row.
func ToDomainCreditRequestSlice(ms []models.CreditRequest) ([]domain.CreditRequest, error) {
	ds := make([]domain.CreditRequest, len(ms))
	for i, m := range ms {
		d, err := ToDomainCreditRequest(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

// ToDomainChargeSaleSlice converts model rows, stopping at the first bad row.
func ToDomainChargeSaleSlice(ms []models.ChargeSale) ([]domain.ChargeSale, error) {
	ds := make([]domain.ChargeSale, len(ms))
	for i, m := range ms {
		d, err := ToDomainChargeSale(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
