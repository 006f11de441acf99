package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	"github.com/praxisledger/trustd/internal/models"
	"github.com/praxisledger/trustd/internal/utils/mapping"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation snapshots.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const reconciliationColumns = `reconciliation_id, account_id, reconciliation_date, statement_balance_cents, ledger_balance_cents, is_balanced, notes, performed_by, created_at`

func scanReconciliation(row pgx.Row) (*models.Reconciliation, error) {
	var m models.Reconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.AccountID,
		&m.ReconciliationDate,
		&m.StatementBalanceCents,
		&m.LedgerBalanceCents,
		&m.IsBalanced,
		&m.Notes,
		&m.PerformedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveReconciliation persists a new reconciliation snapshot. Snapshots are
// never updated or deleted.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	query := `
		INSERT INTO trust_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.AccountID,
		m.ReconciliationDate,
		m.StatementBalanceCents,
		m.LedgerBalanceCents,
		m.IsBalanced,
		m.Notes,
		m.PerformedBy,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reconciliation %s: %w", m.ReconciliationID, err)
	}
	return nil
}

// ListReconciliationsByAccount retrieves snapshots for an account, newest first.
func (r *PgxReconciliationRepository) ListReconciliationsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Reconciliation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + reconciliationColumns + `
		FROM trust_reconciliations
		WHERE account_id = $1
		ORDER BY reconciliation_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliations for account %s: %w", accountID, err)
	}
	defer rows.Close()

	recs := []domain.Reconciliation{}
	for rows.Next() {
		m, err := scanReconciliation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		recs = append(recs, mapping.ToDomainReconciliation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation rows: %w", err)
	}
	return recs, nil
}
