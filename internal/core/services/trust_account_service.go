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
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
	"github.com/praxisledger/trustd/internal/utils"
)

// trustAccountService provides trust account lifecycle operations.
// Balances are never mutated here; only the ledger moves money.
type trustAccountService struct {
	accountRepo   portsrepo.TrustAccountRepositoryFacade
	firmSvc       portssvc.FirmAuthorizerSvc
	encryptionKey string
}

// NewTrustAccountService creates a new TrustAccountService.
func NewTrustAccountService(accountRepo portsrepo.TrustAccountRepositoryFacade, firmSvc portssvc.FirmAuthorizerSvc, encryptionKey string) portssvc.TrustAccountSvcFacade {
	return &trustAccountService{
		accountRepo:   accountRepo,
		firmSvc:       firmSvc,
		encryptionKey: encryptionKey,
	}
}

var _ portssvc.TrustAccountSvcFacade = (*trustAccountService)(nil)

// CreateAccount opens a new trust account with a zero balance.
// Bank details are encrypted before they reach the repository.
func (s *trustAccountService) CreateAccount(ctx context.Context, firmID string, req dto.CreateTrustAccountRequest, creatorUserID string) (*domain.TrustAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	accountNumberEnc, err := utils.EncryptString(req.AccountNumber, s.encryptionKey)
	if err != nil {
		logger.Error("Failed to encrypt account number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to encrypt bank details: %w", apperrors.ErrInternal)
	}
	routingNumberEnc, err := utils.EncryptString(req.RoutingNumber, s.encryptionKey)
	if err != nil {
		logger.Error("Failed to encrypt routing number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to encrypt bank details: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	account := domain.TrustAccount{
		AccountID:        uuid.NewString(),
		FirmID:           firmID,
		Name:             req.Name,
		BankName:         req.BankName,
		AccountNumberEnc: accountNumberEnc,
		RoutingNumberEnc: routingNumberEnc,
		BalanceCents:     0,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save trust account", slog.String("error", err.Error()), slog.String("firm_id", firmID))
		return nil, fmt.Errorf("failed to save trust account: %w", err)
	}

	logger.Info("Trust account created", slog.String("account_id", account.AccountID), slog.String("firm_id", firmID))
	return &account, nil
}

// GetAccountByID retrieves a trust account, scoped to the firm.
func (s *trustAccountService) GetAccountByID(ctx context.Context, firmID string, accountID string, userID string) (*domain.TrustAccount, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trust account %s: %w", accountID, err)
	}
	if account.FirmID != firmID {
		// Obscure existence across firm boundaries
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of trust accounts for a firm.
func (s *trustAccountService) ListAccounts(ctx context.Context, firmID string, userID string, params dto.ListTrustAccountsParams) ([]domain.TrustAccount, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	accounts, err := s.accountRepo.ListAccountsByFirm(ctx, firmID, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trust accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates display details of an account.
func (s *trustAccountService) UpdateAccount(ctx context.Context, firmID string, accountID string, req dto.UpdateTrustAccountRequest, userID string) (*domain.TrustAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trust account %s: %w", accountID, err)
	}
	if account.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update trust account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update trust account: %w", err)
	}

	return account, nil
}

// DeactivateAccount marks an account inactive. Inactive accounts reject new
// ledger entries but remain readable for reconciliation and reporting.
func (s *trustAccountService) DeactivateAccount(ctx context.Context, firmID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleAdmin); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find trust account %s: %w", accountID, err)
	}
	if account.FirmID != firmID {
		return apperrors.ErrNotFound
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate trust account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate trust account: %w", err)
	}

	logger.Info("Trust account deactivated", slog.String("account_id", accountID))
	return nil
}
