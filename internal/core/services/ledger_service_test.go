package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/core/services"
	"github.com/praxisledger/trustd/internal/dto"
)

const testMaxRetries = 3

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockTrustAccountService
	mockClientSvc  *MockClientService
	mockFirmSvc    *MockFirmAuthorizer
	mockPublisher  *MockPublisher
	service        portssvc.LedgerSvcFacade
	firmID         string
	userID         string
	account        domain.TrustAccount
	client         domain.Client
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockTrustAccountService)
	suite.mockClientSvc = new(MockClientService)
	suite.mockFirmSvc = new(MockFirmAuthorizer)
	suite.mockPublisher = new(MockPublisher)
	suite.service = services.NewLedgerService(
		suite.mockLedgerRepo,
		suite.mockAccountSvc,
		suite.mockClientSvc,
		suite.mockFirmSvc,
		suite.mockPublisher,
		testMaxRetries,
	)

	suite.firmID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.account = domain.TrustAccount{
		AccountID:    uuid.NewString(),
		FirmID:       suite.firmID,
		Name:         "IOLTA Operating",
		BalanceCents: 500_000,
		IsActive:     true,
	}
	suite.client = domain.Client{
		ClientID: uuid.NewString(),
		FirmID:   suite.firmID,
		Name:     "Acme Corp",
		IsActive: true,
	}
}

func (suite *LedgerServiceTestSuite) validRequest() dto.CreateLedgerEntryRequest {
	return dto.CreateLedgerEntryRequest{
		ClientID:    suite.client.ClientID,
		EntryType:   string(domain.Deposit),
		AmountCents: 100_000,
		Description: "Retainer deposit",
		EntryDate:   time.Now().UTC().Add(-time.Hour),
	}
}

func (suite *LedgerServiceTestSuite) expectHappyPathLookups(ctx context.Context) {
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.firmID, suite.account.AccountID, suite.userID).Return(&suite.account, nil).Once()
	suite.mockClientSvc.On("GetClientByID", ctx, suite.firmID, suite.client.ClientID, suite.userID).Return(&suite.client, nil).Once()
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_Success() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectHappyPathLookups(ctx)

	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.AccountID == suite.account.AccountID &&
			e.ClientID == suite.client.ClientID &&
			e.EntryType == domain.Deposit &&
			e.AmountCents == req.AmountCents &&
			e.CreatedBy == suite.userID
	})).Return(&domain.LedgerEntry{
		EntryID:             uuid.NewString(),
		AccountID:           suite.account.AccountID,
		ClientID:            suite.client.ClientID,
		EntryType:           domain.Deposit,
		AmountCents:         req.AmountCents,
		RunningBalanceCents: 600_000,
	}, nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(nil).Once()

	saved, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.Equal(int64(600_000), saved.RunningBalanceCents)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_AuthorizationFail() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, suite.validRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_NonPositiveAmount() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	req := suite.validRequest()
	req.AmountCents = 0

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_NegativeAmount() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	req := suite.validRequest()
	req.AmountCents = -5_000

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_InvalidEntryType() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	req := suite.validRequest()
	req.EntryType = "WITHDRAWAL"

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInvalidEntryType)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_MissingDescription() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	req := suite.validRequest()
	req.Description = ""

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_FutureDate() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	req := suite.validRequest()
	req.EntryDate = time.Now().UTC().Add(48 * time.Hour)

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryDateInFuture)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.account
	inactive.IsActive = false

	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.firmID, suite.account.AccountID, suite.userID).Return(&inactive, nil).Once()

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, suite.validRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountInactive)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_InactiveClient() {
	ctx := context.Background()
	inactiveClient := suite.client
	inactiveClient.IsActive = false

	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.firmID, suite.account.AccountID, suite.userID).Return(&suite.account, nil).Once()
	suite.mockClientSvc.On("GetClientByID", ctx, suite.firmID, suite.client.ClientID, suite.userID).Return(&inactiveClient, nil).Once()

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, suite.validRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_MatterBelongsToOtherClient() {
	ctx := context.Background()
	matterID := uuid.NewString()
	req := suite.validRequest()
	req.MatterID = &matterID

	suite.expectHappyPathLookups(ctx)
	suite.mockClientSvc.On("GetMatterByID", ctx, suite.firmID, matterID, suite.userID).Return(&domain.Matter{
		MatterID: matterID,
		FirmID:   suite.firmID,
		ClientID: uuid.NewString(), // Different client
	}, nil).Once()

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_InsufficientFunds() {
	ctx := context.Background()
	req := suite.validRequest()
	req.EntryType = string(domain.Disbursement)
	req.AmountCents = 1_000_000

	suite.expectHappyPathLookups(ctx)
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil, apperrors.ErrInsufficientTrustFunds).Once()

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientTrustFunds)
	// A balance failure is not retried.
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "AppendEntry", 1)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_RetriesThenSucceeds() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.expectHappyPathLookups(ctx)
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil, apperrors.ErrConcurrentModification).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(&domain.LedgerEntry{
		EntryID:             uuid.NewString(),
		AccountID:           suite.account.AccountID,
		ClientID:            suite.client.ClientID,
		EntryType:           domain.Deposit,
		AmountCents:         req.AmountCents,
		RunningBalanceCents: 600_000,
	}, nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(nil).Once()

	saved, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "AppendEntry", 2)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_RetriesExhausted() {
	ctx := context.Background()

	suite.expectHappyPathLookups(ctx)
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil, apperrors.ErrConcurrentModification).Times(testMaxRetries)

	_, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, suite.validRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "AppendEntry", testMaxRetries)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_PublishFailureDoesNotFailAppend() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.expectHappyPathLookups(ctx)
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(&domain.LedgerEntry{
		EntryID:             uuid.NewString(),
		AccountID:           suite.account.AccountID,
		RunningBalanceCents: 600_000,
	}, nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(assert.AnError).Once()

	saved, err := suite.service.AppendEntry(ctx, suite.firmID, suite.account.AccountID, req, suite.userID)

	// The ledger write already committed; event loss is logged only.
	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_WrongAccount() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.firmID, suite.account.AccountID, suite.userID).Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(&domain.LedgerEntry{
		EntryID:   entryID,
		AccountID: uuid.NewString(), // Belongs to a different account
	}, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.firmID, suite.account.AccountID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetBalanceAsOf() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.firmID, suite.account.AccountID, suite.userID).Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("LedgerBalanceAsOf", ctx, suite.account.AccountID, asOf).Return(int64(425_000), nil).Once()

	balance, err := suite.service.GetBalanceAsOf(ctx, suite.firmID, suite.account.AccountID, suite.userID, asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(425_000), balance)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
