package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager         TransactionManager
	KeyChecker        KeyChecker
	AccountRepo       AccountRepositoryFacade
	TargetRepo        TargetRepositoryFacade
	CreditRequestRepo CreditRequestReader
	ChargeSaleRepo    ChargeSaleReader
	LedgerRepo        LedgerReader
}
