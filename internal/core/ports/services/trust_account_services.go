package services

import (
	"context"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/dto"
)

// TrustAccountReaderSvc defines read operations for trust account data
type TrustAccountReaderSvc interface {
	// GetAccountByID retrieves a specific trust account by its unique identifier.
	GetAccountByID(ctx context.Context, firmID string, accountID string, userID string) (*domain.TrustAccount, error)

	// ListAccounts retrieves a paginated list of trust accounts for a firm.
	ListAccounts(ctx context.Context, firmID string, userID string, params dto.ListTrustAccountsParams) ([]domain.TrustAccount, error)
}

// TrustAccountWriterSvc defines write operations for trust account data
type TrustAccountWriterSvc interface {
	// CreateAccount opens a new trust account with a zero balance.
	CreateAccount(ctx context.Context, firmID string, req dto.CreateTrustAccountRequest, creatorUserID string) (*domain.TrustAccount, error)

	// UpdateAccount updates display details of an account. Balances are
	// never updated here; they only move through ledger appends.
	UpdateAccount(ctx context.Context, firmID string, accountID string, req dto.UpdateTrustAccountRequest, userID string) (*domain.TrustAccount, error)

	// DeactivateAccount marks an account inactive. Inactive accounts
	// reject new ledger entries but remain readable.
	DeactivateAccount(ctx context.Context, firmID string, accountID string, userID string) error
}

// TrustAccountSvcFacade combines all trust-account-related service interfaces
// This is a facade for clients that need access to all operations
type TrustAccountSvcFacade interface {
	TrustAccountReaderSvc
	TrustAccountWriterSvc
}
