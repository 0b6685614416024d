package mapping

import (
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		Sequence:       d.Sequence,
		IdempotencyKey: d.IdempotencyKey,
		AccountID:      d.AccountID,
		Amount:         ToModelAmount(d.Amount),
		Kind:           toColumn[models.EntryKind](string(d.Kind)),
		BalanceBefore:  ToModelAmount(d.BalanceBefore),
		BalanceAfter:   ToModelAmount(d.BalanceAfter),
		Description:    d.Description,
		Status:         toColumn[models.EntryStatus](string(d.Status)),
		RefKind:        string(d.Ref.Kind),
		RefID:          d.Ref.ID,
		CreatedAt:      d.CreatedAt,
		CompletedAt:    d.CompletedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry and
// re-checks its structural invariants.
func ToDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	amount, err := ToDomainAmount(m.Amount)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	before, err := ToDomainAmount(m.BalanceBefore)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	after, err := ToDomainAmount(m.BalanceAfter)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	d := domain.LedgerEntry{
		Sequence:       m.Sequence,
		IdempotencyKey: m.IdempotencyKey,
		AccountID:      m.AccountID,
		Amount:         amount,
		Kind:           fromColumn[domain.EntryKind](string(m.Kind)),
		BalanceBefore:  before,
		BalanceAfter:   after,
		Description:    m.Description,
		Status:         fromColumn[domain.EntryStatus](string(m.Status)),
		Ref:            domain.OperationRef{Kind: domain.OperationKind(m.RefKind), ID: m.RefID},
		CreatedAt:      m.CreatedAt,
		CompletedAt:    m.CompletedAt,
	}
	if err := d.Validate(); err != nil {
		return domain.LedgerEntry{}, err
	}
	return d, nil
}

// ToDomainLedgerEntrySlice converts model rows, stopping at the first bad row.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) ([]domain.LedgerEntry, error) {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		d, err := ToDomainLedgerEntry(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

// ToModelEntryKind converts a kind filter to its column value.
func ToModelEntryKind(k domain.EntryKind) models.EntryKind {
	return toColumn[models.EntryKind](string(k))
}

// ToModelEntryStatus converts a status filter to its column value.
func ToModelEntryStatus(s domain.EntryStatus) models.EntryStatus {
	return toColumn[models.EntryStatus](string(s))
}
