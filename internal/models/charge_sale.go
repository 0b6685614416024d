package models

import "github.com/shopspring/decimal"

type ChargeSaleStatus string

const (
	ChargeSaleSuccessful ChargeSaleStatus = "SUCCESSFUL"
	ChargeSaleFailed     ChargeSaleStatus = "FAILED"
)

// ChargeSale records one debit of an account toward a target.
type ChargeSale struct {
	TransactionID       string           `db:"transaction_id"`
	AccountID           string           `db:"account_id"`
	TargetID            string           `db:"target_id"`
	Amount              decimal.Decimal  `db:"amount"`
	TargetBalanceBefore decimal.Decimal  `db:"target_balance_before"`
	TargetBalanceAfter  decimal.Decimal  `db:"target_balance_after"`
	Status              ChargeSaleStatus `db:"status"`
	StatusMessage       string           `db:"status_message"`
	AuditFields
}
