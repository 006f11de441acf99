package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TrustAccountRepo   TrustAccountRepositoryFacade
	LedgerRepo         LedgerRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	GuidelineRepo      GuidelineRepositoryFacade
	TimeEntryRepo      TimeEntryRepositoryFacade
	InvoiceRepo        InvoiceRepositoryFacade
	UserRepo           UserRepositoryFacade
	FirmRepo           FirmRepositoryFacade
	ClientRepo         ClientRepositoryFacade
}
