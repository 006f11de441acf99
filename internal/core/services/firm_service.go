package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/middleware"
)

// firmService provides firm and membership operations.
type firmService struct {
	firmRepo portsrepo.FirmRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewFirmService creates a new FirmService.
func NewFirmService(firmRepo portsrepo.FirmRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.FirmSvcFacade {
	return &firmService{
		firmRepo: firmRepo,
		userRepo: userRepo,
	}
}

var _ portssvc.FirmSvcFacade = (*firmService)(nil)

// CreateFirm persists a new firm with the creator as ADMIN.
func (s *firmService) CreateFirm(ctx context.Context, name string, creatorUserID string) (*domain.Firm, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: firm name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	firm := domain.Firm{
		FirmID:   uuid.NewString(),
		Name:     name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	membership := domain.UserFirm{
		UserID: creatorUserID,
		FirmID: firm.FirmID,
		Role:   domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.firmRepo.SaveFirm(ctx, firm, membership); err != nil {
		logger.Error("Failed to save firm", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save firm: %w", err)
	}

	logger.Info("Firm created", slog.String("firm_id", firm.FirmID))
	return &firm, nil
}

// FindFirmByID retrieves a firm by ID.
func (s *firmService) FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error) {
	firm, err := s.firmRepo.FindFirmByID(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to find firm %s: %w", firmID, err)
	}
	return firm, nil
}

// ListFirmUsers retrieves all memberships for a firm. Requires membership.
func (s *firmService) ListFirmUsers(ctx context.Context, firmID string, requestingUserID string) ([]domain.UserFirm, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.firmRepo.ListFirmUsers(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to list firm users: %w", err)
	}
	return memberships, nil
}

// AddUserToFirm adds a user to a firm with a specific role. Admin only.
func (s *firmService) AddUserToFirm(ctx context.Context, addingUserID, targetUserID, firmID string, role domain.UserFirmRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, firmID, domain.RoleAdmin); err != nil {
		return err
	}

	if role != domain.RoleAdmin && role != domain.RoleMember && role != domain.RoleReadOnly {
		return fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, role)
	}

	// Ensure the target user exists
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return fmt.Errorf("failed to find user %s: %w", targetUserID, err)
	}

	// Reject duplicate membership
	if _, err := s.firmRepo.FindUserFirmRole(ctx, targetUserID, firmID); err == nil {
		return fmt.Errorf("%w: user %s is already a member of firm %s", apperrors.ErrDuplicate, targetUserID, firmID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check existing membership: %w", err)
	}

	now := time.Now().UTC()
	membership := domain.UserFirm{
		UserID: targetUserID,
		FirmID: firmID,
		Role:   role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     addingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: addingUserID,
		},
	}
	if err := s.firmRepo.AddUserToFirm(ctx, membership); err != nil {
		logger.Error("Failed to add user to firm", slog.String("error", err.Error()), slog.String("firm_id", firmID), slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to add user to firm: %w", err)
	}

	logger.Info("User added to firm", slog.String("firm_id", firmID), slog.String("target_user_id", targetUserID), slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a firm.
// Returns apperrors.ErrNotFound when the user is not a member (obscuring the
// firm's existence) and apperrors.ErrForbidden when the role is insufficient.
func (s *firmService) AuthorizeUserAction(ctx context.Context, userID, firmID string, requiredRole domain.UserFirmRole) error {
	membership, err := s.firmRepo.FindUserFirmRole(ctx, userID, firmID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check firm membership: %w", err)
	}

	if !membership.Role.CanActAs(requiredRole) {
		return fmt.Errorf("%w: role %s cannot perform actions requiring %s", apperrors.ErrForbidden, membership.Role, requiredRole)
	}
	return nil
}
