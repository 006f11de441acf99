package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/core/services"
)

// --- Mock FirmRepository ---
type MockFirmRepository struct {
	mock.Mock
}

var _ portsrepo.FirmRepositoryFacade = (*MockFirmRepository)(nil)

func (m *MockFirmRepository) SaveFirm(ctx context.Context, firm domain.Firm, creatorMembership domain.UserFirm) error {
	args := m.Called(ctx, firm, creatorMembership)
	return args.Error(0)
}

func (m *MockFirmRepository) FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error) {
	args := m.Called(ctx, firmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Firm), args.Error(1)
}

func (m *MockFirmRepository) FindUserFirmRole(ctx context.Context, userID string, firmID string) (*domain.UserFirm, error) {
	args := m.Called(ctx, userID, firmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFirm), args.Error(1)
}

func (m *MockFirmRepository) AddUserToFirm(ctx context.Context, membership domain.UserFirm) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockFirmRepository) ListFirmUsers(ctx context.Context, firmID string) ([]domain.UserFirm, error) {
	args := m.Called(ctx, firmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserFirm), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type FirmServiceTestSuite struct {
	suite.Suite
	mockFirmRepo *MockFirmRepository
	mockUserRepo *MockUserRepository
	service      portssvc.FirmSvcFacade
	firmID       string
	userID       string
}

func (suite *FirmServiceTestSuite) SetupTest() {
	suite.mockFirmRepo = new(MockFirmRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewFirmService(suite.mockFirmRepo, suite.mockUserRepo)

	suite.firmID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FirmServiceTestSuite) TestCreateFirm_CreatorBecomesAdmin() {
	ctx := context.Background()
	suite.mockFirmRepo.On("SaveFirm", ctx, mock.MatchedBy(func(f domain.Firm) bool {
		return f.Name == "Dewey & Howe LLP" && f.IsActive
	}), mock.MatchedBy(func(m domain.UserFirm) bool {
		return m.UserID == suite.userID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	firm, err := suite.service.CreateFirm(ctx, "Dewey & Howe LLP", suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(firm.FirmID)
	suite.mockFirmRepo.AssertExpectations(suite.T())
}

func (suite *FirmServiceTestSuite) TestCreateFirm_EmptyName() {
	ctx := context.Background()

	_, err := suite.service.CreateFirm(ctx, "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFirmRepo.AssertNotCalled(suite.T(), "SaveFirm", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FirmServiceTestSuite) TestAuthorizeUserAction_NonMemberGetsNotFound() {
	ctx := context.Background()
	// Non-members see not-found, not forbidden, so firm existence leaks nothing.
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, suite.userID, suite.firmID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.firmID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FirmServiceTestSuite) TestAuthorizeUserAction_InsufficientRole() {
	ctx := context.Background()
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, suite.userID, suite.firmID).Return(&domain.UserFirm{
		UserID: suite.userID,
		FirmID: suite.firmID,
		Role:   domain.RoleReadOnly,
	}, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.firmID, domain.RoleAdmin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FirmServiceTestSuite) TestAuthorizeUserAction_AdminActsAsMember() {
	ctx := context.Background()
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, suite.userID, suite.firmID).Return(&domain.UserFirm{
		UserID: suite.userID,
		FirmID: suite.firmID,
		Role:   domain.RoleAdmin,
	}, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.firmID, domain.RoleMember)

	suite.Require().NoError(err)
}

func (suite *FirmServiceTestSuite) TestAddUserToFirm_DuplicateMembership() {
	ctx := context.Background()
	targetID := uuid.NewString()
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, suite.userID, suite.firmID).Return(&domain.UserFirm{
		UserID: suite.userID, FirmID: suite.firmID, Role: domain.RoleAdmin,
	}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, targetID, suite.firmID).Return(&domain.UserFirm{
		UserID: targetID, FirmID: suite.firmID, Role: domain.RoleMember,
	}, nil).Once()

	err := suite.service.AddUserToFirm(ctx, suite.userID, targetID, suite.firmID, domain.RoleMember)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockFirmRepo.AssertNotCalled(suite.T(), "AddUserToFirm", mock.Anything, mock.Anything)
}

func (suite *FirmServiceTestSuite) TestAddUserToFirm_Success() {
	ctx := context.Background()
	targetID := uuid.NewString()
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, suite.userID, suite.firmID).Return(&domain.UserFirm{
		UserID: suite.userID, FirmID: suite.firmID, Role: domain.RoleAdmin,
	}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()
	suite.mockFirmRepo.On("FindUserFirmRole", ctx, targetID, suite.firmID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFirmRepo.On("AddUserToFirm", ctx, mock.MatchedBy(func(m domain.UserFirm) bool {
		return m.UserID == targetID && m.Role == domain.RoleReadOnly && m.CreatedBy == suite.userID
	})).Return(nil).Once()

	err := suite.service.AddUserToFirm(ctx, suite.userID, targetID, suite.firmID, domain.RoleReadOnly)

	suite.Require().NoError(err)
	suite.mockFirmRepo.AssertExpectations(suite.T())
}

func TestFirmService(t *testing.T) {
	suite.Run(t, new(FirmServiceTestSuite))
}
