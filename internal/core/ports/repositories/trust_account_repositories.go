package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/praxisledger/trustd/internal/core/domain"
)

// TrustAccountReader defines read operations for trust account data
type TrustAccountReader interface {
	// FindAccountByID retrieves a specific trust account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.TrustAccount, error)

	// ListAccountsByFirm retrieves a paginated list of trust accounts for a firm.
	ListAccountsByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.TrustAccount, error)
}

// TrustAccountWriter defines write operations for trust account data
type TrustAccountWriter interface {
	// SaveAccount persists a new trust account.
	SaveAccount(ctx context.Context, account domain.TrustAccount) error

	// UpdateAccount updates an account's mutable details (name, bank name).
	// Balance is never updated through this method.
	UpdateAccount(ctx context.Context, account domain.TrustAccount) error

	// DeactivateAccount marks a trust account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// TrustAccountTransactionSupport defines operations used inside ledger transactions
type TrustAccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account row and locks it for
	// update within a transaction. This is the serialization point for
	// ledger appends against the account.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.TrustAccount, error)

	// UpdateAccountBalanceInTx sets the account's current balance within a transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balanceCents int64, userID string, now time.Time) error
}

// TrustAccountRepositoryFacade combines all trust-account repository interfaces
type TrustAccountRepositoryFacade interface {
	TrustAccountReader
	TrustAccountWriter
	TrustAccountTransactionSupport
}
