package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/core/ports/events"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
)

// Shared mocks for the service test suites in this package.

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) LedgerBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

// --- Mock GuidelineRepository ---
type MockGuidelineRepository struct {
	mock.Mock
}

var _ portsrepo.GuidelineRepositoryFacade = (*MockGuidelineRepository)(nil)

func (m *MockGuidelineRepository) SaveGuideline(ctx context.Context, g domain.BillingGuideline) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuidelineRepository) UpdateGuideline(ctx context.Context, g domain.BillingGuideline) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuidelineRepository) FindGuidelineByID(ctx context.Context, guidelineID string) (*domain.BillingGuideline, error) {
	args := m.Called(ctx, guidelineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingGuideline), args.Error(1)
}

func (m *MockGuidelineRepository) ListActiveGuidelinesByClient(ctx context.Context, clientID string) ([]domain.BillingGuideline, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillingGuideline), args.Error(1)
}

func (m *MockGuidelineRepository) ListGuidelinesByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.BillingGuideline, error) {
	args := m.Called(ctx, firmID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillingGuideline), args.Error(1)
}

// --- Mock TimeEntryReader ---
type MockTimeEntryReader struct {
	mock.Mock
}

var _ portsrepo.TimeEntryReader = (*MockTimeEntryReader)(nil)

func (m *MockTimeEntryReader) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryReader) FindTimeEntriesByIDs(ctx context.Context, timeEntryIDs []string) (map[string]domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryReader) ListTimeEntriesByMatter(ctx context.Context, matterID string, limit int, nextToken *string) ([]domain.TimeEntry, *string, error) {
	args := m.Called(ctx, matterID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TimeEntry), returnedNextToken, args.Error(2)
}

func (m *MockTimeEntryReader) SumBillableMinutesForUserDate(ctx context.Context, firmID string, userID string, date time.Time) (int64, error) {
	args := m.Called(ctx, firmID, userID, date)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	MockTimeEntryReader
}

var _ portsrepo.TimeEntryRepositoryFacade = (*MockTimeEntryRepository)(nil)

func (m *MockTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.InvoiceLineItem) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, lineItems)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, firmID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) VoidInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, userID, now)
	return args.Error(0)
}

// --- Mock TrustAccountService ---
type MockTrustAccountService struct {
	mock.Mock
}

var _ portssvc.TrustAccountSvcFacade = (*MockTrustAccountService)(nil)

func (m *MockTrustAccountService) CreateAccount(ctx context.Context, firmID string, req dto.CreateTrustAccountRequest, creatorUserID string) (*domain.TrustAccount, error) {
	args := m.Called(ctx, firmID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustAccount), args.Error(1)
}

func (m *MockTrustAccountService) GetAccountByID(ctx context.Context, firmID string, accountID string, userID string) (*domain.TrustAccount, error) {
	args := m.Called(ctx, firmID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustAccount), args.Error(1)
}

func (m *MockTrustAccountService) ListAccounts(ctx context.Context, firmID string, userID string, params dto.ListTrustAccountsParams) ([]domain.TrustAccount, error) {
	args := m.Called(ctx, firmID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustAccount), args.Error(1)
}

func (m *MockTrustAccountService) UpdateAccount(ctx context.Context, firmID string, accountID string, req dto.UpdateTrustAccountRequest, userID string) (*domain.TrustAccount, error) {
	args := m.Called(ctx, firmID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustAccount), args.Error(1)
}

func (m *MockTrustAccountService) DeactivateAccount(ctx context.Context, firmID string, accountID string, userID string) error {
	args := m.Called(ctx, firmID, accountID, userID)
	return args.Error(0)
}

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

func (m *MockClientService) CreateClient(ctx context.Context, firmID string, name string, email string, creatorUserID string) (*domain.Client, error) {
	args := m.Called(ctx, firmID, name, email, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) GetClientByID(ctx context.Context, firmID string, clientID string, userID string) (*domain.Client, error) {
	args := m.Called(ctx, firmID, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, firmID string, userID string, limit, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, firmID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) DeactivateClient(ctx context.Context, firmID string, clientID string, userID string) error {
	args := m.Called(ctx, firmID, clientID, userID)
	return args.Error(0)
}

func (m *MockClientService) CreateMatter(ctx context.Context, firmID string, clientID string, name string, creatorUserID string) (*domain.Matter, error) {
	args := m.Called(ctx, firmID, clientID, name, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockClientService) GetMatterByID(ctx context.Context, firmID string, matterID string, userID string) (*domain.Matter, error) {
	args := m.Called(ctx, firmID, matterID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matter), args.Error(1)
}

func (m *MockClientService) ListMattersByClient(ctx context.Context, firmID string, clientID string, userID string) ([]domain.Matter, error) {
	args := m.Called(ctx, firmID, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Matter), args.Error(1)
}

// --- Mock FirmAuthorizer ---
type MockFirmAuthorizer struct {
	mock.Mock
}

var _ portssvc.FirmAuthorizerSvc = (*MockFirmAuthorizer)(nil)

func (m *MockFirmAuthorizer) AuthorizeUserAction(ctx context.Context, userID, firmID string, requiredRole domain.UserFirmRole) error {
	args := m.Called(ctx, userID, firmID, requiredRole)
	return args.Error(0)
}

// --- Mock GuidelineEnforcer (as used by TimeEntryService) ---
type MockGuidelineEnforcer struct {
	mock.Mock
}

var _ portssvc.GuidelineEnforcerSvc = (*MockGuidelineEnforcer)(nil)

func (m *MockGuidelineEnforcer) CheckTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.Violations, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Violations), args.Error(1)
}

// --- Mock Publisher ---
type MockPublisher struct {
	mock.Mock
}

var _ events.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(ctx context.Context, event events.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Mock LedgerService (as used by ReconciliationService) ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) AppendEntry(ctx context.Context, firmID string, accountID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, firmID, accountID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, firmID string, accountID string, entryID string, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, firmID, accountID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, firmID string, accountID string, userID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, firmID, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) GetBalanceAsOf(ctx context.Context, firmID string, accountID string, userID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, firmID, accountID, userID, asOf)
	return args.Get(0).(int64), args.Error(1)
}
