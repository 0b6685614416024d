package dto

import (
	"time"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// SubmitCreditRequestRequest defines the payload for asking a credit increase.
type SubmitCreditRequestRequest struct {
	ReferenceID string `json:"referenceID" binding:"required,max=255"`
	AccountID   string `json:"accountID"`
	Amount      int64  `json:"amount" binding:"required,gt=0,lte=999999999999"`
}

// ProcessCreditRequestRequest carries an administrator's decision.
type ProcessCreditRequestRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// CreditRequestResponse defines the data returned for a credit request.
type CreditRequestResponse struct {
	RequestID   string     `json:"requestID"`
	ReferenceID string     `json:"referenceID"`
	AccountID   string     `json:"accountID"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// ListCreditRequestsResponse wraps a page of credit requests.
type ListCreditRequestsResponse struct {
	CreditRequests []CreditRequestResponse `json:"creditRequests"`
	NextToken      *string                 `json:"nextToken,omitempty"`
}

// ToCreditRequestResponse converts a domain.CreditRequest to CreditRequestResponse DTO.
func ToCreditRequestResponse(r *domain.CreditRequest) CreditRequestResponse {
	return CreditRequestResponse{
		RequestID:   r.RequestID,
		ReferenceID: r.ReferenceID,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		ProcessedAt: r.ProcessedAt,
	}
}

// ToListCreditRequestsResponse converts a page of credit requests.
func ToListCreditRequestsResponse(reqs []domain.CreditRequest, nextToken *string) ListCreditRequestsResponse {
	out := make([]CreditRequestResponse, len(reqs))
	for i := range reqs {
		out[i] = ToCreditRequestResponse(&reqs[i])
	}
	return ListCreditRequestsResponse{CreditRequests: out, NextToken: nextToken}
}
