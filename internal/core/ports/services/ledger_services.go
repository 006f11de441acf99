package services

import (
	"context"
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/dto"
)

// LedgerReaderSvc defines read operations for trust ledger data
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific ledger entry by its ID.
	GetEntryByID(ctx context.Context, firmID string, accountID string, entryID string, userID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of ledger entries for an account,
	// newest first.
	ListEntries(ctx context.Context, firmID string, accountID string, userID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)

	// GetBalanceAsOf derives the account balance from the ledger as of the
	// end of the given date.
	GetBalanceAsOf(ctx context.Context, firmID string, accountID string, userID string, asOf time.Time) (int64, error)
}

// LedgerWriterSvc defines append operations for trust ledger data.
// The ledger is append-only: entries are never updated or deleted.
type LedgerWriterSvc interface {
	// AppendEntry validates and appends one ledger entry, deriving its
	// running balance under a per-account lock. Concurrent appends to the
	// same account are serialized; after exhausting retries the append
	// fails with apperrors.ErrConcurrentModification.
	AppendEntry(ctx context.Context, firmID string, accountID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

// ReconciliationSvcFacade defines operations for trust account reconciliation.
type ReconciliationSvcFacade interface {
	// ReconcileAccount derives the ledger balance as of the statement date,
	// compares it to the reported statement balance and persists an
	// immutable snapshot of the comparison. Repeating a reconciliation for
	// the same date creates a new snapshot; history is never collapsed.
	ReconcileAccount(ctx context.Context, firmID string, accountID string, req dto.CreateReconciliationRequest, userID string) (*domain.Reconciliation, error)

	// ListReconciliations retrieves the reconciliation history of an
	// account, newest first.
	ListReconciliations(ctx context.Context, firmID string, accountID string, userID string) ([]domain.Reconciliation, error)
}
