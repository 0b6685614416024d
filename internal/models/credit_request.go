package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditRequestStatus string

const (
	CreditRequestPending  CreditRequestStatus = "PENDING"
	CreditRequestApproved CreditRequestStatus = "APPROVED"
	CreditRequestRejected CreditRequestStatus = "REJECTED"
)

type CreditRequest struct {
	RequestID   string              `db:"request_id"`
	ReferenceID string              `db:"reference_id"`
	AccountID   string              `db:"account_id"`
	Amount      decimal.Decimal     `db:"amount"`
	Status      CreditRequestStatus `db:"status"`
	CreatedAt   time.Time           `db:"created_at"`
	ProcessedAt *time.Time          `db:"processed_at"` // Nullable until resolved
}
