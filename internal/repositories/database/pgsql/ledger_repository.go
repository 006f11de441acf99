package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	"github.com/praxisledger/trustd/internal/models"
	"github.com/praxisledger/trustd/internal/utils/accounting"
	"github.com/praxisledger/trustd/internal/utils/mapping"
	"github.com/praxisledger/trustd/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.TrustAccountTransactionSupport
}

// newPgxLedgerRepository creates a new repository for trust ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.TrustAccountTransactionSupport) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerEntryColumns = `entry_id, account_id, client_id, matter_id, entry_type, amount_cents, running_balance_cents, description, reference_number, entry_date, created_at, created_by, last_updated_at, last_updated_by`

// isSerializationFailure reports whether the error is a transient conflict
// between concurrent transactions that the caller may retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01" // serialization_failure, deadlock_detected
}

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.ClientID,
		&m.MatterID,
		&m.EntryType,
		&m.AmountCents,
		&m.RunningBalanceCents,
		&m.Description,
		&m.ReferenceNumber,
		&m.EntryDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AppendEntry atomically appends one entry to the account's ledger. The
// account row is locked first, so concurrent appends against the same
// account queue up behind each other and every running balance derives from
// the balance the lock guaranteed.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, entry.AccountID)
		}
		return nil, err
	}

	// Re-checked under the lock: a deactivation racing this append loses.
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, entry.AccountID)
	}

	signedAmount, err := accounting.SignedAmountCents(entry.EntryType, entry.AmountCents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	newBalance := account.BalanceCents + signedAmount
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: balance %d cents, attempted %s of %d cents",
			apperrors.ErrInsufficientTrustFunds, account.BalanceCents, entry.EntryType, entry.AmountCents)
	}
	entry.RunningBalanceCents = newBalance

	m := mapping.ToModelLedgerEntry(entry)
	insertQuery := `
		INSERT INTO trust_ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.EntryID,
		m.AccountID,
		m.ClientID,
		m.MatterID,
		m.EntryType,
		m.AmountCents,
		m.RunningBalanceCents,
		m.Description,
		m.ReferenceNumber,
		m.EntryDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, entry.AccountID)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return nil, fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, entry.AccountID, newBalance, entry.CreatedBy, entry.CreatedAt); err != nil {
		if isSerializationFailure(err) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, entry.AccountID)
		}
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		if isSerializationFailure(err) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, entry.AccountID)
		}
		return nil, err
	}

	return &entry, nil
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM trust_ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by ID %s: %w", entryID, err)
	}

	d := mapping.ToDomainLedgerEntry(*m)
	return &d, nil
}

// ListEntriesByAccount retrieves a paginated list of ledger entries for an
// account, newest first, using token-based pagination.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + ledgerEntryColumns + ` FROM trust_ledger_entries`
	filterClause := `WHERE account_id = $1`
	// Stable ordering: entry_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor condition aligned with the ordering.
		filterClause += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

// LedgerBalanceAsOf returns the running balance of the latest entry with
// entry_date <= asOf, or zero if the account has no entries in that range.
func (r *PgxLedgerRepository) LedgerBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (int64, error) {
	query := `
		SELECT running_balance_cents
		FROM trust_ledger_entries
		WHERE account_id = $1 AND entry_date <= $2
		ORDER BY entry_date DESC, created_at DESC
		LIMIT 1;
	`
	var balance int64
	err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to derive ledger balance for account %s: %w", accountID, err)
	}
	return balance, nil
}
