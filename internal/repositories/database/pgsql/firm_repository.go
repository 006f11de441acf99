package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	"github.com/praxisledger/trustd/internal/models"
	"github.com/praxisledger/trustd/internal/utils/mapping"
)

type PgxFirmRepository struct {
	BaseRepository
}

// newPgxFirmRepository creates a new repository for firm and membership data.
func newPgxFirmRepository(pool *pgxpool.Pool) portsrepo.FirmRepositoryFacade {
	return &PgxFirmRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FirmRepositoryFacade = (*PgxFirmRepository)(nil)

const firmColumns = `firm_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by`
const userFirmColumns = `user_id, firm_id, role, created_at, created_by, last_updated_at, last_updated_by`

const insertUserFirmQuery = `
	INSERT INTO user_firms (` + userFirmColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func userFirmArgs(m models.UserFirm) []interface{} {
	return []interface{}{m.UserID, m.FirmID, m.Role, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy}
}

func scanUserFirm(row pgx.Row) (*models.UserFirm, error) {
	var m models.UserFirm
	err := row.Scan(
		&m.UserID,
		&m.FirmID,
		&m.Role,
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

// SaveFirm persists a new firm and its creator's ADMIN membership in one
// transaction. A firm without at least one admin would be unmanageable.
func (r *PgxFirmRepository) SaveFirm(ctx context.Context, firm domain.Firm, creatorMembership domain.UserFirm) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	fm := mapping.ToModelFirm(firm)
	firmQuery := `
		INSERT INTO firms (` + firmColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, firmQuery,
		fm.FirmID,
		fm.Name,
		fm.IsActive,
		fm.CreatedAt,
		fm.CreatedBy,
		fm.LastUpdatedAt,
		fm.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: firm %s already exists", apperrors.ErrDuplicate, fm.FirmID)
		}
		return fmt.Errorf("failed to insert firm %s: %w", fm.FirmID, err)
	}

	mm := mapping.ToModelUserFirm(creatorMembership)
	if _, err := tx.Exec(ctx, insertUserFirmQuery, userFirmArgs(mm)...); err != nil {
		return fmt.Errorf("failed to insert creator membership for firm %s: %w", fm.FirmID, err)
	}

	return r.Commit(ctx, tx)
}

// FindFirmByID retrieves a firm by ID.
func (r *PgxFirmRepository) FindFirmByID(ctx context.Context, firmID string) (*domain.Firm, error) {
	query := `SELECT ` + firmColumns + ` FROM firms WHERE firm_id = $1;`

	var m models.Firm
	err := r.Pool.QueryRow(ctx, query, firmID).Scan(
		&m.FirmID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find firm by ID %s: %w", firmID, err)
	}
	d := mapping.ToDomainFirm(m)
	return &d, nil
}

// FindUserFirmRole retrieves the membership linking a user to a firm.
func (r *PgxFirmRepository) FindUserFirmRole(ctx context.Context, userID string, firmID string) (*domain.UserFirm, error) {
	query := `SELECT ` + userFirmColumns + ` FROM user_firms WHERE user_id = $1 AND firm_id = $2;`

	m, err := scanUserFirm(r.Pool.QueryRow(ctx, query, userID, firmID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s in firm %s: %w", userID, firmID, err)
	}
	d := mapping.ToDomainUserFirm(*m)
	return &d, nil
}

// AddUserToFirm persists a membership record.
func (r *PgxFirmRepository) AddUserToFirm(ctx context.Context, membership domain.UserFirm) error {
	m := mapping.ToModelUserFirm(membership)
	if _, err := r.Pool.Exec(ctx, insertUserFirmQuery, userFirmArgs(m)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s is already a member of firm %s", apperrors.ErrDuplicate, m.UserID, m.FirmID)
		}
		return fmt.Errorf("failed to insert membership for user %s in firm %s: %w", m.UserID, m.FirmID, err)
	}
	return nil
}

// ListFirmUsers retrieves all memberships for a firm.
func (r *PgxFirmRepository) ListFirmUsers(ctx context.Context, firmID string) ([]domain.UserFirm, error) {
	query := `SELECT ` + userFirmColumns + ` FROM user_firms WHERE firm_id = $1 ORDER BY created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships for firm %s: %w", firmID, err)
	}
	defer rows.Close()

	memberships := []domain.UserFirm{}
	for rows.Next() {
		m, err := scanUserFirm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, mapping.ToDomainUserFirm(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	return memberships, nil
}
