package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/core/services"
	"github.com/praxisledger/trustd/internal/dto"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconciliationRepo *MockReconciliationRepository
	mockLedgerSvc          *MockLedgerService
	mockAccountSvc         *MockTrustAccountService
	mockFirmSvc            *MockFirmAuthorizer
	mockPublisher          *MockPublisher
	service                portssvc.ReconciliationSvcFacade
	firmID                 string
	accountID              string
	userID                 string
	statementDate          time.Time
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconciliationRepo = new(MockReconciliationRepository)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockAccountSvc = new(MockTrustAccountService)
	suite.mockFirmSvc = new(MockFirmAuthorizer)
	suite.mockPublisher = new(MockPublisher)
	suite.service = services.NewReconciliationService(
		suite.mockReconciliationRepo,
		suite.mockLedgerSvc,
		suite.mockAccountSvc,
		suite.mockFirmSvc,
		suite.mockPublisher,
	)

	suite.firmID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.statementDate = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_Balanced() {
	ctx := context.Background()
	req := dto.CreateReconciliationRequest{
		ReconciliationDate:    suite.statementDate,
		StatementBalanceCents: 250_000,
	}

	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerSvc.On("GetBalanceAsOf", ctx, suite.firmID, suite.accountID, suite.userID, suite.statementDate).Return(int64(250_000), nil).Once()
	suite.mockReconciliationRepo.On("SaveReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return r.AccountID == suite.accountID &&
			r.StatementBalanceCents == 250_000 &&
			r.LedgerBalanceCents == 250_000 &&
			r.IsBalanced &&
			r.PerformedBy == suite.userID
	})).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(nil).Once()

	rec, err := suite.service.ReconcileAccount(ctx, suite.firmID, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.True(rec.IsBalanced)
	suite.NotEmpty(rec.ReconciliationID)
	suite.mockReconciliationRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_DiscrepancyRecorded() {
	ctx := context.Background()
	req := dto.CreateReconciliationRequest{
		ReconciliationDate:    suite.statementDate,
		StatementBalanceCents: 250_000,
		Notes:                 "Bank statement March 2026",
	}

	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerSvc.On("GetBalanceAsOf", ctx, suite.firmID, suite.accountID, suite.userID, suite.statementDate).Return(int64(245_500), nil).Once()
	suite.mockReconciliationRepo.On("SaveReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return !r.IsBalanced && r.LedgerBalanceCents == 245_500
	})).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(nil).Once()

	rec, err := suite.service.ReconcileAccount(ctx, suite.firmID, suite.accountID, req, suite.userID)

	// The discrepancy is recorded, never auto-corrected.
	suite.Require().NoError(err)
	suite.False(rec.IsBalanced)
	suite.Equal(int64(245_500), rec.LedgerBalanceCents)
	suite.Equal(int64(250_000), rec.StatementBalanceCents)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_RepeatCreatesNewSnapshot() {
	ctx := context.Background()
	req := dto.CreateReconciliationRequest{
		ReconciliationDate:    suite.statementDate,
		StatementBalanceCents: 250_000,
	}

	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Twice()
	suite.mockLedgerSvc.On("GetBalanceAsOf", ctx, suite.firmID, suite.accountID, suite.userID, suite.statementDate).Return(int64(250_000), nil).Twice()
	suite.mockReconciliationRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.Reconciliation")).Return(nil).Twice()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(nil).Twice()

	first, err := suite.service.ReconcileAccount(ctx, suite.firmID, suite.accountID, req, suite.userID)
	suite.Require().NoError(err)
	second, err := suite.service.ReconcileAccount(ctx, suite.firmID, suite.accountID, req, suite.userID)
	suite.Require().NoError(err)

	// Same date twice yields two distinct immutable snapshots.
	suite.NotEqual(first.ReconciliationID, second.ReconciliationID)
	suite.mockReconciliationRepo.AssertNumberOfCalls(suite.T(), "SaveReconciliation", 2)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_AuthorizationFail() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ReconcileAccount(ctx, suite.firmID, suite.accountID, dto.CreateReconciliationRequest{
		ReconciliationDate: suite.statementDate,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReconciliationRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_UnknownAccount() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerSvc.On("GetBalanceAsOf", ctx, suite.firmID, suite.accountID, suite.userID, suite.statementDate).Return(int64(0), apperrors.ErrNotFound).Once()

	_, err := suite.service.ReconcileAccount(ctx, suite.firmID, suite.accountID, dto.CreateReconciliationRequest{
		ReconciliationDate: suite.statementDate,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestListReconciliations() {
	ctx := context.Background()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.firmID, suite.accountID, suite.userID).Return(&domain.TrustAccount{
		AccountID: suite.accountID,
		FirmID:    suite.firmID,
		IsActive:  true,
	}, nil).Once()
	suite.mockReconciliationRepo.On("ListReconciliationsByAccount", ctx, suite.accountID, 100, 0).Return([]domain.Reconciliation{
		{ReconciliationID: uuid.NewString(), AccountID: suite.accountID, IsBalanced: true},
		{ReconciliationID: uuid.NewString(), AccountID: suite.accountID, IsBalanced: false},
	}, nil).Once()

	recs, err := suite.service.ListReconciliations(ctx, suite.firmID, suite.accountID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(recs, 2)
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
