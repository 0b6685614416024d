package domain

import (
	"fmt"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
)

// OperationKind names the kind of operation that produced a ledger entry.
type OperationKind string

const (
	OperationCreditRequest OperationKind = "credit_request"
	OperationChargeSale    OperationKind = "charge_sale"
)

// OperationRef links a ledger entry to the operation that produced it.
// It is a closed variant: exactly one of the kinds above, plus that
// operation's identifier.
type OperationRef struct {
	Kind OperationKind `json:"kind"`
	ID   string        `json:"id"`
}

// CreditRequestRef references a credit request by id.
func CreditRequestRef(requestID string) OperationRef {
	return OperationRef{Kind: OperationCreditRequest, ID: requestID}
}

// ChargeSaleRef references a charge sale by its transaction id.
func ChargeSaleRef(transactionID string) OperationRef {
	return OperationRef{Kind: OperationChargeSale, ID: transactionID}
}

// Validate rejects unknown kinds and empty ids.
func (r OperationRef) Validate() error {
	switch r.Kind {
	case OperationCreditRequest, OperationChargeSale:
	default:
		return fmt.Errorf("%w: unknown operation kind %q", apperrors.ErrInvariantViolation, r.Kind)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: operation reference without id", apperrors.ErrInvariantViolation)
	}
	return nil
}

// Match dispatches on the variant. Exactly one callback runs.
func (r OperationRef) Match(onCreditRequest func(requestID string), onChargeSale func(transactionID string)) {
	switch r.Kind {
	case OperationCreditRequest:
		onCreditRequest(r.ID)
	case OperationChargeSale:
		onChargeSale(r.ID)
	}
}

func (r OperationRef) String() string {
	return string(r.Kind) + ":" + r.ID
}
