package services

import (
	"github.com/praxisledger/trustd/internal/core/ports/events"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Firm service first since nearly everything authorizes through it
	container.Firm = NewFirmService(repos.FirmRepo, repos.UserRepo)
	firmAuthorizer := container.Firm.(portssvc.FirmAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Client = NewClientService(repos.ClientRepo, firmAuthorizer)

	container.TrustAccount = NewTrustAccountService(repos.TrustAccountRepo, firmAuthorizer, cfg.AccountEncryptionKey)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.TrustAccount, container.Client, firmAuthorizer, publisher, cfg.LedgerAppendMaxRetries)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, container.Ledger, container.TrustAccount, firmAuthorizer, publisher)

	container.Guideline = NewGuidelineService(repos.GuidelineRepo, repos.TimeEntryRepo, container.Client, firmAuthorizer)
	container.TimeEntry = NewTimeEntryService(repos.TimeEntryRepo, container.Guideline, container.Client, firmAuthorizer, publisher)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.TimeEntryRepo, container.Client, firmAuthorizer, publisher, cfg.DefaultTaxRate)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.FirmSvcFacade           = (*firmService)(nil)
	_ portssvc.LedgerSvcFacade         = (*ledgerService)(nil)
	_ portssvc.GuidelineSvcFacade      = (*guidelineService)(nil)
	_ portssvc.InvoiceSvcFacade        = (*invoiceService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
)
