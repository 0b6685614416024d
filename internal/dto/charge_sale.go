package dto

import (
	"time"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// SubmitChargeSaleRequest defines the payload for selling a recharge to a target.
// AccountID defaults to the caller's own account when omitted.
type SubmitChargeSaleRequest struct {
	TransactionID string `json:"transactionID" binding:"required,max=255"`
	AccountID     string `json:"accountID"`
	TargetID      string `json:"targetID" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0,lte=999999999999"`
}

// ChargeSaleResponse defines the data returned for a charge sale.
type ChargeSaleResponse struct {
	TransactionID       string    `json:"transactionID"`
	AccountID           string    `json:"accountID"`
	TargetID            string    `json:"targetID"`
	Amount              int64     `json:"amount"`
	TargetBalanceBefore int64     `json:"targetBalanceBefore"`
	TargetBalanceAfter  int64     `json:"targetBalanceAfter"`
	Status              string    `json:"status"`
	StatusMessage       string    `json:"statusMessage"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ListChargeSalesResponse wraps a page of charge sales.
type ListChargeSalesResponse struct {
	ChargeSales []ChargeSaleResponse `json:"chargeSales"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToChargeSaleResponse converts a domain.ChargeSale to ChargeSaleResponse DTO.
func ToChargeSaleResponse(s *domain.ChargeSale) ChargeSaleResponse {
	return ChargeSaleResponse{
		TransactionID:       s.TransactionID,
		AccountID:           s.AccountID,
		TargetID:            s.TargetID,
		Amount:              s.Amount,
		TargetBalanceBefore: s.TargetBalanceBefore,
		TargetBalanceAfter:  s.TargetBalanceAfter,
		Status:              string(s.Status),
		StatusMessage:       s.StatusMessage,
		CreatedAt:           s.CreatedAt,
	}
}

// ToListChargeSalesResponse converts a page of charge sales.
func ToListChargeSalesResponse(sales []domain.ChargeSale, nextToken *string) ListChargeSalesResponse {
	out := make([]ChargeSaleResponse, len(sales))
	for i := range sales {
		out[i] = ToChargeSaleResponse(&sales[i])
	}
	return ListChargeSalesResponse{ChargeSales: out, NextToken: nextToken}
}
