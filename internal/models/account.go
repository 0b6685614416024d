package models

import "github.com/shopspring/decimal"

// Account is a seller account row. Balance is NUMERIC(18,0) in minor units.
type Account struct {
	AccountID string          `db:"account_id"`
	Balance   decimal.Decimal `db:"balance"`
	AuditFields
}
