package services

import (
	"context"
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

// clientService provides client and matter registry operations.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
	firmSvc    portssvc.FirmAuthorizerSvc
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, firmSvc portssvc.FirmAuthorizerSvc) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo: clientRepo,
		firmSvc:    firmSvc,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient registers a new client for a firm.
func (s *clientService) CreateClient(ctx context.Context, firmID string, name string, email string, creatorUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleMember); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID: uuid.NewString(),
		FirmID:   firmID,
		Name:     name,
		Email:    email,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("firm_id", firmID))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID), slog.String("firm_id", firmID))
	return &client, nil
}

// GetClientByID retrieves a client by ID, scoped to the firm.
func (s *clientService) GetClientByID(ctx context.Context, firmID string, clientID string, userID string) (*domain.Client, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.FirmID != firmID {
		// Obscure existence across firm boundaries
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

// ListClients retrieves a paginated list of active clients for a firm.
func (s *clientService) ListClients(ctx context.Context, firmID string, userID string, limit, offset int) ([]domain.Client, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	clients, err := s.clientRepo.ListClientsByFirm(ctx, firmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// DeactivateClient marks a client inactive. Admin only.
func (s *clientService) DeactivateClient(ctx context.Context, firmID string, clientID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleAdmin); err != nil {
		return err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.FirmID != firmID {
		return apperrors.ErrNotFound
	}

	if err := s.clientRepo.DeactivateClient(ctx, clientID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return fmt.Errorf("failed to deactivate client: %w", err)
	}

	logger.Info("Client deactivated", slog.String("client_id", clientID))
	return nil
}

// CreateMatter opens a new matter for a client.
func (s *clientService) CreateMatter(ctx context.Context, firmID string, clientID string, name string, creatorUserID string) (*domain.Matter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleMember); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: matter name is required", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, clientID)
	}

	now := time.Now().UTC()
	matter := domain.Matter{
		MatterID: uuid.NewString(),
		FirmID:   firmID,
		ClientID: clientID,
		Name:     name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveMatter(ctx, matter); err != nil {
		logger.Error("Failed to save matter", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to save matter: %w", err)
	}

	logger.Info("Matter created", slog.String("matter_id", matter.MatterID), slog.String("client_id", clientID))
	return &matter, nil
}

// GetMatterByID retrieves a matter by ID, scoped to the firm.
func (s *clientService) GetMatterByID(ctx context.Context, firmID string, matterID string, userID string) (*domain.Matter, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	matter, err := s.clientRepo.FindMatterByID(ctx, matterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find matter %s: %w", matterID, err)
	}
	if matter.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}
	return matter, nil
}

// ListMattersByClient retrieves the matters for a client.
func (s *clientService) ListMattersByClient(ctx context.Context, firmID string, clientID string, userID string) ([]domain.Matter, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}

	matters, err := s.clientRepo.ListMattersByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}
	return matters, nil
}
