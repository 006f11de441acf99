package services

import (
	"context"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// FirmReaderSvc defines read operations for firm data
type FirmReaderSvc interface {
	// FindFirmByID retrieves a specific firm by its ID.
	FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error)

	// ListFirmUsers retrieves all users and their roles for a firm.
	// Only members of the firm can access this data.
	ListFirmUsers(ctx context.Context, firmID string, requestingUserID string) ([]domain.UserFirm, error)
}

// FirmWriterSvc defines write operations for firm data
type FirmWriterSvc interface {
	// CreateFirm persists a new firm with the creator as ADMIN.
	CreateFirm(ctx context.Context, name string, creatorUserID string) (*domain.Firm, error)
}

// FirmMembershipSvc defines operations for managing firm membership
type FirmMembershipSvc interface {
	// AddUserToFirm adds a user to a firm with a specific role.
	// Only firm admins can add users.
	AddUserToFirm(ctx context.Context, addingUserID, targetUserID, firmID string, role domain.UserFirmRole) error
}

// FirmAuthorizerSvc defines operations for firm authorization
type FirmAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a firm.
	AuthorizeUserAction(ctx context.Context, userID, firmID string, requiredRole domain.UserFirmRole) error
}

// FirmSvcFacade combines all firm-related service interfaces
// This is a facade for clients that need access to all operations
type FirmSvcFacade interface {
	FirmReaderSvc
	FirmWriterSvc
	FirmMembershipSvc
	FirmAuthorizerSvc
}
