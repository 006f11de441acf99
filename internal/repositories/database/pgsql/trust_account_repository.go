package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	"github.com/praxisledger/trustd/internal/models"
	"github.com/praxisledger/trustd/internal/utils/mapping"
)

type PgxTrustAccountRepository struct {
	BaseRepository
}

// newPgxTrustAccountRepository creates a new repository for trust account data.
func newPgxTrustAccountRepository(pool *pgxpool.Pool) portsrepo.TrustAccountRepositoryFacade {
	return &PgxTrustAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TrustAccountRepositoryFacade = (*PgxTrustAccountRepository)(nil)

const trustAccountColumns = `account_id, firm_id, name, bank_name, account_number_enc, routing_number_enc, balance_cents, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTrustAccount(row pgx.Row) (*models.TrustAccount, error) {
	var m models.TrustAccount
	err := row.Scan(
		&m.AccountID,
		&m.FirmID,
		&m.Name,
		&m.BankName,
		&m.AccountNumberEnc,
		&m.RoutingNumberEnc,
		&m.BalanceCents,
		&m.IsActive,
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

// SaveAccount inserts a new trust account.
func (r *PgxTrustAccountRepository) SaveAccount(ctx context.Context, account domain.TrustAccount) error {
	m := mapping.ToModelTrustAccount(account)

	query := `
		INSERT INTO trust_accounts (` + trustAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.FirmID,
		m.Name,
		m.BankName,
		m.AccountNumberEnc,
		m.RoutingNumberEnc,
		m.BalanceCents,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: trust account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save trust account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a trust account by its ID.
func (r *PgxTrustAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.TrustAccount, error) {
	query := `SELECT ` + trustAccountColumns + ` FROM trust_accounts WHERE account_id = $1;`

	m, err := scanTrustAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trust account by ID %s: %w", accountID, err)
	}

	d := mapping.ToDomainTrustAccount(*m)
	return &d, nil
}

// ListAccountsByFirm retrieves a paginated list of trust accounts for a firm.
func (r *PgxTrustAccountRepository) ListAccountsByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.TrustAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + trustAccountColumns + `
		FROM trust_accounts
		WHERE firm_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, firmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query trust accounts for firm %s: %w", firmID, err)
	}
	defer rows.Close()

	accounts := []domain.TrustAccount{}
	for rows.Next() {
		m, err := scanTrustAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trust account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainTrustAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trust account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an account's mutable details. The balance column is
// deliberately absent from this statement.
func (r *PgxTrustAccountRepository) UpdateAccount(ctx context.Context, account domain.TrustAccount) error {
	query := `
		UPDATE trust_accounts
		SET name = $2, bank_name = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.BankName,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update trust account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks a trust account as inactive.
func (r *PgxTrustAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE trust_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate trust account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByIDForUpdate selects an account row and locks it within the
// given transaction. Every ledger append against the account serializes on
// this lock.
func (r *PgxTrustAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.TrustAccount, error) {
	query := `SELECT ` + trustAccountColumns + ` FROM trust_accounts WHERE account_id = $1 FOR UPDATE;`

	m, err := scanTrustAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock trust account %s: %w", accountID, err)
	}

	d := mapping.ToDomainTrustAccount(*m)
	return &d, nil
}

// UpdateAccountBalanceInTx sets the account's current balance within a transaction.
func (r *PgxTrustAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balanceCents int64, userID string, now time.Time) error {
	query := `
		UPDATE trust_accounts
		SET balance_cents = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, balanceCents, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for trust account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
