package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target is a chargeable phone line.
type Target struct {
	TargetID      string          `db:"target_id"`
	ExternalID    string          `db:"external_id"`
	Balance       decimal.Decimal `db:"balance"`
	LastChargedAt *time.Time      `db:"last_charged_at"` // Nullable
	AuditFields
}
