package domain

// KeyScope is a namespace of operation identifiers, each unique within it.
type KeyScope string

const (
	KeyScopeTransactionID KeyScope = "charge_sale.transaction_id"
	KeyScopeReferenceID   KeyScope = "credit_request.reference_id"
	KeyScopeLedger        KeyScope = "ledger.idempotency_key"
)

// OperationKey identifies one logical operation for duplicate detection.
type OperationKey struct {
	Scope KeyScope
	Value string
}

func (k OperationKey) String() string {
	return string(k.Scope) + "/" + k.Value
}

// ReserveResult is the outcome of an idempotency reservation.
type ReserveResult int

const (
	Accepted ReserveResult = iota + 1
	AlreadyExists
)

func (r ReserveResult) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case AlreadyExists:
		return "already_exists"
	}
	return "unknown"
}
