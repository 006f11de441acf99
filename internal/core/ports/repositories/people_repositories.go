package repositories

import (
	"context"
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// UserRepositoryFacade defines operations for user data
type UserRepositoryFacade interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// FirmRepositoryFacade defines operations for firm and membership data
type FirmRepositoryFacade interface {
	// SaveFirm persists a new firm and its creator's ADMIN membership atomically.
	SaveFirm(ctx context.Context, firm domain.Firm, creatorMembership domain.UserFirm) error

	// FindFirmByID retrieves a firm by ID.
	FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error)

	// FindUserFirmRole retrieves the membership record linking a user to a
	// firm, or apperrors.ErrNotFound if the user is not a member.
	FindUserFirmRole(ctx context.Context, userID string, firmID string) (*domain.UserFirm, error)

	// AddUserToFirm persists a membership record.
	AddUserToFirm(ctx context.Context, membership domain.UserFirm) error

	// ListFirmUsers retrieves all memberships for a firm.
	ListFirmUsers(ctx context.Context, firmID string) ([]domain.UserFirm, error)
}

// ClientRepositoryFacade defines operations for client and matter registry data
type ClientRepositoryFacade interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// FindClientByID retrieves a client by ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClientsByFirm retrieves a paginated list of active clients for a firm.
	ListClientsByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.Client, error)

	// DeactivateClient marks a client inactive.
	DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error

	// SaveMatter persists a new matter.
	SaveMatter(ctx context.Context, matter domain.Matter) error

	// FindMatterByID retrieves a matter by ID.
	FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error)

	// ListMattersByClient retrieves the matters for a client.
	ListMattersByClient(ctx context.Context, clientID string) ([]domain.Matter, error)
}
