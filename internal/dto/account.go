package dto

import (
	"time"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// AccountResponse defines the data returned for a seller account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Balance       int64     `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// TargetResponse defines the data returned for a target.
type TargetResponse struct {
	TargetID      string     `json:"targetID"`
	ExternalID    string     `json:"externalID"`
	Balance       int64      `json:"balance"`
	LastChargedAt *time.Time `json:"lastChargedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// TargetLookupParams finds a target by its phone number.
type TargetLookupParams struct {
	ExternalID string `form:"externalID" binding:"required,digits,max=20"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ToTargetResponse converts a domain.Target to TargetResponse DTO.
func ToTargetResponse(t *domain.Target) TargetResponse {
	return TargetResponse{
		TargetID:      t.TargetID,
		ExternalID:    t.ExternalID,
		Balance:       t.Balance,
		LastChargedAt: t.LastChargedAt,
		CreatedAt:     t.CreatedAt,
	}
}
