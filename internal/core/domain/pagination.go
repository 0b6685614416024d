package domain

// ListParams is the cursor-paginated listing input shared by list operations.
// AccountID, when set, restricts results to that account.
type ListParams struct {
	AccountID string
	Limit     int
	NextToken *string
}

// ListLedgerParams extends ListParams with entry filters.
type ListLedgerParams struct {
	ListParams
	Filter LedgerFilter
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// NormalizedLimit clamps Limit into [1, MaxListLimit].
func (p ListParams) NormalizedLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultListLimit
	case p.Limit > MaxListLimit:
		return MaxListLimit
	}
	return p.Limit
}
