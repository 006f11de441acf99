package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	TrustAccount   TrustAccountSvcFacade
	Ledger         LedgerSvcFacade
	Reconciliation ReconciliationSvcFacade
	Guideline      GuidelineSvcFacade
	TimeEntry      TimeEntrySvcFacade
	Invoice        InvoiceSvcFacade
	Firm           FirmSvcFacade
	User           UserSvcFacade
	Client         ClientSvcFacade
	Token          TokenSvcFacade
}
