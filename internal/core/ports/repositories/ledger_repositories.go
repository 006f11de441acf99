package repositories

import (
	"context"
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// LedgerReader defines read operations for trust ledger data
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of ledger entries for
	// an account, newest first, using token-based pagination.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// LedgerBalanceAsOf returns the running balance of the latest entry
	// with entry_date <= asOf, or zero if no such entry exists.
	LedgerBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (int64, error)
}

// LedgerWriter defines write operations for trust ledger data.
// The ledger is append-only: there is no update or delete.
type LedgerWriter interface {
	// AppendEntry atomically validates and appends an entry to the
	// account's ledger: the account row is locked, the running balance is
	// derived from the locked balance, the entry is inserted and the
	// account balance updated, all in one transaction. Returns the entry
	// with its assigned running balance.
	//
	// Fails with apperrors.ErrAccountInactive, ErrInsufficientTrustFunds,
	// or ErrConcurrentModification (serialization conflict, caller may retry).
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// ReconciliationRepositoryFacade defines operations for reconciliation snapshots.
// Snapshots are insert-only.
type ReconciliationRepositoryFacade interface {
	// SaveReconciliation persists a new reconciliation snapshot.
	SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error

	// ListReconciliationsByAccount retrieves snapshots for an account, newest first.
	ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Reconciliation, error)
}
