package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
)

// CreditRequestStatus is the lifecycle state of a credit request.
type CreditRequestStatus string

const (
	CreditRequestPending  CreditRequestStatus = "pending"
	CreditRequestApproved CreditRequestStatus = "approved"
	CreditRequestRejected CreditRequestStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s CreditRequestStatus) IsTerminal() bool {
	return s == CreditRequestApproved || s == CreditRequestRejected
}

// Decision is an administrator's verdict on a pending credit request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision maps external input to a Decision.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionApprove, DecisionReject:
		return d, nil
	}
	return "", fmt.Errorf("%w: decision must be %q or %q", apperrors.ErrValidation, DecisionApprove, DecisionReject)
}

// CreditRequest asks for an account's balance to be increased. Only an
// approved request affects the balance.
type CreditRequest struct {
	RequestID   string              `json:"requestID"`
	ReferenceID string              `json:"referenceID"`
	AccountID   string              `json:"accountID"`
	Amount      int64               `json:"amount"`
	Status      CreditRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	ProcessedAt *time.Time          `json:"processedAt,omitempty"`
}

// Resolve moves a pending request to its terminal state.
func (r *CreditRequest) Resolve(d Decision, at time.Time) error {
	if r.Status != CreditRequestPending {
		return fmt.Errorf("%w: credit request %s is %s", apperrors.ErrAlreadyProcessed, r.RequestID, r.Status)
	}
	switch d {
	case DecisionApprove:
		r.Status = CreditRequestApproved
	case DecisionReject:
		r.Status = CreditRequestRejected
	default:
		return fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, d)
	}
	r.ProcessedAt = &at
	return nil
}
