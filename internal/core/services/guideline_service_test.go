package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/core/services"
	"github.com/praxisledger/trustd/internal/dto"
)

type GuidelineServiceTestSuite struct {
	suite.Suite
	mockGuidelineRepo *MockGuidelineRepository
	mockTimeEntryRepo *MockTimeEntryReader
	mockClientSvc     *MockClientService
	mockFirmSvc       *MockFirmAuthorizer
	service           portssvc.GuidelineSvcFacade
	firmID            string
	clientID          string
	userID            string
}

func (suite *GuidelineServiceTestSuite) SetupTest() {
	suite.mockGuidelineRepo = new(MockGuidelineRepository)
	suite.mockTimeEntryRepo = new(MockTimeEntryReader)
	suite.mockClientSvc = new(MockClientService)
	suite.mockFirmSvc = new(MockFirmAuthorizer)
	suite.service = services.NewGuidelineService(
		suite.mockGuidelineRepo,
		suite.mockTimeEntryRepo,
		suite.mockClientSvc,
		suite.mockFirmSvc,
	)

	suite.firmID = uuid.NewString()
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// billableEntry returns a compliant baseline entry: 60 minutes at 30000
// cents/hour with one task code and one activity code.
func (suite *GuidelineServiceTestSuite) billableEntry() domain.TimeEntry {
	return domain.TimeEntry{
		TimeEntryID:     uuid.NewString(),
		FirmID:          suite.firmID,
		ClientID:        suite.clientID,
		MatterID:        uuid.NewString(),
		UserID:          suite.userID,
		EntryDate:       time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Description:     "Draft motion for summary judgment",
		Billable:        true,
		RateCents:       30_000,
		Codes: []domain.UTBMSCode{
			{Code: "L240", Type: domain.TaskCode},
			{Code: "A103", Type: domain.ActivityCode},
		},
	}
}

func (suite *GuidelineServiceTestSuite) guideline(mutate func(*domain.BillingGuideline)) []domain.BillingGuideline {
	g := domain.BillingGuideline{
		GuidelineID: uuid.NewString(),
		FirmID:      suite.firmID,
		ClientID:    suite.clientID,
		Name:        "Outside counsel guidelines",
		IsActive:    true,
	}
	if mutate != nil {
		mutate(&g)
	}
	return []domain.BillingGuideline{g}
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_NonBillableSkipped() {
	ctx := context.Background()
	entry := suite.billableEntry()
	entry.Billable = false

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Empty(violations)
	suite.mockGuidelineRepo.AssertNotCalled(suite.T(), "ListActiveGuidelinesByClient", ctx, suite.clientID)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_NoActiveGuidelines() {
	ctx := context.Background()
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return([]domain.BillingGuideline{}, nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, suite.billableEntry())

	suite.Require().NoError(err)
	suite.Empty(violations)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_RateAtCapIsCompliant() {
	ctx := context.Background()
	cap := int64(30_000)
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.RateCapCents = &cap
	}), nil).Once()

	// Entry rate is exactly the cap; the cap is inclusive.
	violations, err := suite.service.CheckTimeEntry(ctx, suite.billableEntry())

	suite.Require().NoError(err)
	suite.Empty(violations)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_RateAboveCap() {
	ctx := context.Background()
	cap := int64(29_999)
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.RateCapCents = &cap
	}), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, suite.billableEntry())

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	suite.Equal(domain.RateCapExceeded, violations[0].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_DailyTotalAtCapIsCompliant() {
	ctx := context.Background()
	cap := decimal.NewFromInt(8)
	entry := suite.billableEntry() // 60 minutes
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.DailyHourCap = &cap
	}), nil).Once()
	// 420 prior minutes + 60 new = exactly 8 hours.
	suite.mockTimeEntryRepo.On("SumBillableMinutesForUserDate", ctx, suite.firmID, suite.userID, entry.EntryDate).Return(int64(420), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Empty(violations)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_DailyTotalAboveCap() {
	ctx := context.Background()
	cap := decimal.NewFromInt(8)
	entry := suite.billableEntry()
	entry.DurationMinutes = 90 // 420 prior + 90 = 8.5 hours
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.DailyHourCap = &cap
	}), nil).Once()
	suite.mockTimeEntryRepo.On("SumBillableMinutesForUserDate", ctx, suite.firmID, suite.userID, entry.EntryDate).Return(int64(420), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	suite.Equal(domain.DailyHourCapExceeded, violations[0].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_NoDayTotalQueryWithoutHourCap() {
	ctx := context.Background()
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(nil), nil).Once()

	_, err := suite.service.CheckTimeEntry(ctx, suite.billableEntry())

	suite.Require().NoError(err)
	suite.mockTimeEntryRepo.AssertNotCalled(suite.T(), "SumBillableMinutesForUserDate", ctx, suite.firmID, suite.userID, suite.billableEntry().EntryDate)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_BlockBillingMultipleTaskCodes() {
	ctx := context.Background()
	entry := suite.billableEntry()
	entry.Codes = append(entry.Codes, domain.UTBMSCode{Code: "L310", Type: domain.TaskCode})
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.BlockBillingProhibited = true
	}), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	suite.Equal(domain.BlockBillingDetected, violations[0].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_BlockBillingSegmentedDescription() {
	ctx := context.Background()
	entry := suite.billableEntry()
	entry.Description = "Review discovery responses; draft meet-and-confer letter; call with opposing counsel"
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.BlockBillingProhibited = true
	}), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	suite.Equal(domain.BlockBillingDetected, violations[0].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_TwoSegmentsNotBlockBilled() {
	ctx := context.Background()
	entry := suite.billableEntry()
	entry.Description = "Draft motion; revise per partner comments"
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.BlockBillingProhibited = true
	}), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Empty(violations)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_MissingRequiredCodes() {
	ctx := context.Background()
	entry := suite.billableEntry()
	entry.Codes = nil
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.TaskCodeRequired = true
		g.ActivityCodeRequired = true
	}), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 2)
	suite.Equal(domain.MissingRequiredCode, violations[0].Kind)
	suite.Equal(domain.MissingRequiredCode, violations[1].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_RestrictedCodeCaseInsensitive() {
	ctx := context.Background()
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.RestrictedCodes = []string{"l240"}
	}), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, suite.billableEntry())

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	suite.Equal(domain.RestrictedCodeUsed, violations[0].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_CollectsAllViolations() {
	ctx := context.Background()
	cap := int64(25_000)
	hourCap := decimal.NewFromInt(6)
	entry := suite.billableEntry()
	entry.Description = "Review; draft; file; serve"
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(suite.guideline(func(g *domain.BillingGuideline) {
		g.RateCapCents = &cap
		g.DailyHourCap = &hourCap
		g.BlockBillingProhibited = true
		g.RestrictedCodes = []string{"A103"}
	}), nil).Once()
	suite.mockTimeEntryRepo.On("SumBillableMinutesForUserDate", ctx, suite.firmID, suite.userID, entry.EntryDate).Return(int64(330), nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	// Evaluation never short-circuits: the rate, the day total, the blocked
	// description and the restricted code are all reported at once.
	suite.Require().NoError(err)
	suite.Require().Len(violations, 4)
	kinds := make(map[domain.ViolationKind]bool)
	for _, v := range violations {
		kinds[v.Kind] = true
	}
	suite.True(kinds[domain.RateCapExceeded])
	suite.True(kinds[domain.DailyHourCapExceeded])
	suite.True(kinds[domain.BlockBillingDetected])
	suite.True(kinds[domain.RestrictedCodeUsed])
}

func (suite *GuidelineServiceTestSuite) TestCheckTimeEntry_MultipleGuidelinesAggregated() {
	ctx := context.Background()
	cap := int64(20_000)
	guidelines := append(
		suite.guideline(func(g *domain.BillingGuideline) { g.RateCapCents = &cap }),
		suite.guideline(func(g *domain.BillingGuideline) { g.TaskCodeRequired = true })...,
	)
	entry := suite.billableEntry()
	entry.Codes = []domain.UTBMSCode{{Code: "A103", Type: domain.ActivityCode}}
	suite.mockGuidelineRepo.On("ListActiveGuidelinesByClient", ctx, suite.clientID).Return(guidelines, nil).Once()

	violations, err := suite.service.CheckTimeEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 2)
	suite.Equal(domain.RateCapExceeded, violations[0].Kind)
	suite.Equal(domain.MissingRequiredCode, violations[1].Kind)
}

func (suite *GuidelineServiceTestSuite) TestCreateGuideline_RequiresAdmin() {
	ctx := context.Background()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateGuideline(ctx, suite.firmID, dto.CreateGuidelineRequest{ClientID: suite.clientID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GuidelineServiceTestSuite) TestCreateGuideline_NonPositiveRateCap() {
	ctx := context.Background()
	badCap := int64(0)
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleAdmin).Return(nil).Once()
	suite.mockClientSvc.On("GetClientByID", ctx, suite.firmID, suite.clientID, suite.userID).Return(&domain.Client{
		ClientID: suite.clientID,
		FirmID:   suite.firmID,
		IsActive: true,
	}, nil).Once()

	_, err := suite.service.CreateGuideline(ctx, suite.firmID, dto.CreateGuidelineRequest{
		ClientID:     suite.clientID,
		Name:         "Bad cap",
		RateCapCents: &badCap,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGuidelineRepo.AssertNotCalled(suite.T(), "SaveGuideline", ctx, suite.firmID)
}

func (suite *GuidelineServiceTestSuite) TestGetGuidelineByID_WrongFirm() {
	ctx := context.Background()
	guidelineID := uuid.NewString()
	suite.mockFirmSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.firmID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockGuidelineRepo.On("FindGuidelineByID", ctx, guidelineID).Return(&domain.BillingGuideline{
		GuidelineID: guidelineID,
		FirmID:      uuid.NewString(), // Another firm's guideline
	}, nil).Once()

	_, err := suite.service.GetGuidelineByID(ctx, suite.firmID, guidelineID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestGuidelineService(t *testing.T) {
	suite.Run(t, new(GuidelineServiceTestSuite))
}
