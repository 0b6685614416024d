package domain

// ChargeSaleStatus is the recorded outcome of a charge sale.
type ChargeSaleStatus string

const (
	ChargeSaleSuccessful ChargeSaleStatus = "successful"
	ChargeSaleFailed     ChargeSaleStatus = "failed"
)

// MaxTransactionIDLength bounds caller-supplied transaction ids.
const MaxTransactionIDLength = 255

// ChargeSale moves Amount from a seller's account to a target. It is created
// exactly once per TransactionID.
type ChargeSale struct {
	TransactionID       string           `json:"transactionID"`
	AccountID           string           `json:"accountID"`
	TargetID            string           `json:"targetID"`
	Amount              int64            `json:"amount"`
	TargetBalanceBefore int64            `json:"targetBalanceBefore"`
	TargetBalanceAfter  int64            `json:"targetBalanceAfter"`
	Status              ChargeSaleStatus `json:"status"`
	StatusMessage       string           `json:"statusMessage"`
	AuditFields
}
