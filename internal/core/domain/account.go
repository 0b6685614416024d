package domain

// Account is a seller's prepaid credit balance, in minor units.
// Accounts are created at onboarding and never deleted; only the
// operation coordinator mutates Balance.
type Account struct {
	AccountID string `json:"accountID"`
	Balance   int64  `json:"balance"`
	AuditFields
}

// CanCover reports whether the account can be debited by amount.
func (a Account) CanCover(amount int64) bool {
	return a.Balance >= amount
}
