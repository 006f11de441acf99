package services

import (
	"context"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// ClientSvcFacade defines operations for the client and matter registry.
type ClientSvcFacade interface {
	// CreateClient registers a new client for a firm.
	CreateClient(ctx context.Context, firmID string, name string, email string, creatorUserID string) (*domain.Client, error)

	// GetClientByID retrieves a client by ID.
	GetClientByID(ctx context.Context, firmID string, clientID string, userID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of active clients for a firm.
	ListClients(ctx context.Context, firmID string, userID string, limit, offset int) ([]domain.Client, error)

	// DeactivateClient marks a client inactive. Inactive clients reject
	// new ledger entries, time entries and invoices.
	DeactivateClient(ctx context.Context, firmID string, clientID string, userID string) error

	// CreateMatter opens a new matter for a client.
	CreateMatter(ctx context.Context, firmID string, clientID string, name string, creatorUserID string) (*domain.Matter, error)

	// GetMatterByID retrieves a matter by ID.
	GetMatterByID(ctx context.Context, firmID string, matterID string, userID string) (*domain.Matter, error)

	// ListMattersByClient retrieves the matters for a client.
	ListMattersByClient(ctx context.Context, firmID string, clientID string, userID string) ([]domain.Matter, error)
}
