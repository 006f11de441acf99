package services_test

import (
	"context"
	"errors"
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

type TimeEntryServiceTestSuite struct {
	suite.Suite
	mockTimeEntryRepo *MockTimeEntryRepository
	mockGuidelineSvc  *MockGuidelineEnforcer
	mockClientSvc     *MockClientService
	mockFirmSvc       *MockFirmAuthorizer
	mockPublisher     *MockPublisher
	service           portssvc.TimeEntrySvcFacade
	firmID            string
	clientID          string
	matterID          string
	userID            string
}

func (suite *TimeEntryServiceTestSuite) SetupTest() {
	suite.mockTimeEntryRepo = new(MockTimeEntryRepository)
	suite.mockGuidelineSvc = new(MockGuidelineEnforcer)
	suite.mockClientSvc = new(MockClientService)
	suite.mockFirmSvc = new(MockFirmAuthorizer)
	suite.mockPublisher = new(MockPublisher)
	suite.service = services.NewTimeEntryService(
		suite.mockTimeEntryRepo,
		suite.mockGuidelineSvc,
		suite.mockClientSvc,
		suite.mockFirmSvc,
		suite.mockPublisher,
	)

	suite.firmID = uuid.NewString()
	suite.clientID = uuid.NewString()
	suite.matterID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TimeEntryServiceTestSuite) validRequest() dto.CreateTimeEntryRequest {
	return dto.CreateTimeEntryRequest{
		MatterID:        suite.matterID,
		EntryDate:       time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Description:     "Prepare witness outline",
		Billable:        true,
		RateCents:       30_000,
		Codes: []dto.UTBMSCodeDTO{
			{Code: "L330", Type: "TASK"},
		},
	}
}

func (suite *TimeEntryServiceTestSuite) expectMemberAndMatter(ctx context.Context) {
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockClientSvc.On("GetMatterByID", ctx, suite.firmID, suite.matterID, suite.userID).Return(&domain.Matter{
		MatterID: suite.matterID,
		FirmID:   suite.firmID,
		ClientID: suite.clientID,
		IsActive: true,
	}, nil).Once()
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_Compliant() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectMemberAndMatter(ctx)
	suite.mockGuidelineSvc.On("CheckTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(domain.Violations(nil), nil).Once()
	suite.mockTimeEntryRepo.On("SaveTimeEntry", ctx, mock.MatchedBy(func(e domain.TimeEntry) bool {
		return e.FirmID == suite.firmID &&
			e.ClientID == suite.clientID &&
			e.MatterID == suite.matterID &&
			e.OverriddenBy == nil
	})).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(suite.clientID, entry.ClientID)
	suite.Nil(entry.InvoiceID)
	suite.mockTimeEntryRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_ViolationsRejectWithoutOverride() {
	ctx := context.Background()
	req := suite.validRequest()
	found := domain.Violations{
		{Kind: domain.RateCapExceeded, GuidelineID: uuid.NewString(), Detail: "rate 30000 cents/hour exceeds cap of 25000 cents/hour"},
		{Kind: domain.MissingRequiredCode, GuidelineID: uuid.NewString(), Detail: "a UTBMS activity code is required"},
	}
	suite.expectMemberAndMatter(ctx)
	suite.mockGuidelineSvc.On("CheckTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(found, nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	// The complete correction list comes back as one error.
	suite.Require().Error(err)
	var violations domain.Violations
	suite.Require().True(errors.As(err, &violations))
	suite.Len(violations, 2)
	suite.mockTimeEntryRepo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_AdminOverrideRecorded() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Override = true
	req.OverrideNote = "Client pre-approved premium rate for trial counsel"
	found := domain.Violations{
		{Kind: domain.RateCapExceeded, GuidelineID: uuid.NewString(), Detail: "rate above cap"},
	}

	suite.expectMemberAndMatter(ctx)
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleAdmin).Return(nil).Once()
	suite.mockGuidelineSvc.On("CheckTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(found, nil).Once()
	suite.mockTimeEntryRepo.On("SaveTimeEntry", ctx, mock.MatchedBy(func(e domain.TimeEntry) bool {
		return e.OverriddenBy != nil && *e.OverriddenBy == suite.userID &&
			e.OverrideNote != nil && *e.OverrideNote == req.OverrideNote
	})).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.AnythingOfType("events.AuditEvent")).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.OverriddenBy)
	suite.Equal(suite.userID, *entry.OverriddenBy)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_OverrideRequiresAdmin() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Override = true
	req.OverrideNote = "Trying anyway"
	found := domain.Violations{{Kind: domain.RateCapExceeded, GuidelineID: uuid.NewString()}}

	suite.expectMemberAndMatter(ctx)
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()
	suite.mockGuidelineSvc.On("CheckTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(found, nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTimeEntryRepo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_OverrideRequiresNote() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Override = true
	found := domain.Violations{{Kind: domain.RateCapExceeded, GuidelineID: uuid.NewString()}}

	suite.expectMemberAndMatter(ctx)
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleAdmin).Return(nil).Once()
	suite.mockGuidelineSvc.On("CheckTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(found, nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_NonPositiveDuration() {
	ctx := context.Background()
	req := suite.validRequest()
	req.DurationMinutes = 0
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_BillableNeedsRate() {
	ctx := context.Background()
	req := suite.validRequest()
	req.RateCents = 0
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.firmID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimeEntryServiceTestSuite) TestCreateTimeEntry_InactiveMatter() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleMember).Return(nil).Once()
	suite.mockClientSvc.On("GetMatterByID", ctx, suite.firmID, suite.matterID, suite.userID).Return(&domain.Matter{
		MatterID: suite.matterID,
		FirmID:   suite.firmID,
		ClientID: suite.clientID,
		IsActive: false,
	}, nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.firmID, suite.validRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimeEntryServiceTestSuite) TestGetTimeEntryByID_WrongFirm() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTimeEntryRepo.On("FindTimeEntryByID", ctx, entryID).Return(&domain.TimeEntry{
		TimeEntryID: entryID,
		FirmID:      uuid.NewString(), // Another firm's entry
	}, nil).Once()

	_, err := suite.service.GetTimeEntryByID(ctx, suite.firmID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTimeEntryService(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
