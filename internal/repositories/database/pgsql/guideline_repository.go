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

type PgxGuidelineRepository struct {
	BaseRepository
}

// newPgxGuidelineRepository creates a new repository for billing guideline data.
func newPgxGuidelineRepository(pool *pgxpool.Pool) portsrepo.GuidelineRepositoryFacade {
	return &PgxGuidelineRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GuidelineRepositoryFacade = (*PgxGuidelineRepository)(nil)

const guidelineColumns = `guideline_id, firm_id, client_id, name, rate_cap_cents, daily_hour_cap, block_billing_prohibited, task_code_required, activity_code_required, restricted_codes, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanGuideline(row pgx.Row) (*models.BillingGuideline, error) {
	var m models.BillingGuideline
	err := row.Scan(
		&m.GuidelineID,
		&m.FirmID,
		&m.ClientID,
		&m.Name,
		&m.RateCapCents,
		&m.DailyHourCap,
		&m.BlockBillingProhibited,
		&m.TaskCodeRequired,
		&m.ActivityCodeRequired,
		&m.RestrictedCodes,
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

// SaveGuideline persists a new billing guideline.
func (r *PgxGuidelineRepository) SaveGuideline(ctx context.Context, g domain.BillingGuideline) error {
	m := mapping.ToModelGuideline(g)
	query := `
		INSERT INTO billing_guidelines (` + guidelineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GuidelineID,
		m.FirmID,
		m.ClientID,
		m.Name,
		m.RateCapCents,
		m.DailyHourCap,
		m.BlockBillingProhibited,
		m.TaskCodeRequired,
		m.ActivityCodeRequired,
		m.RestrictedCodes,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: guideline %s already exists", apperrors.ErrDuplicate, m.GuidelineID)
		}
		return fmt.Errorf("failed to insert guideline %s: %w", m.GuidelineID, err)
	}
	return nil
}

// UpdateGuideline updates an existing guideline's policy fields.
func (r *PgxGuidelineRepository) UpdateGuideline(ctx context.Context, g domain.BillingGuideline) error {
	m := mapping.ToModelGuideline(g)
	query := `
		UPDATE billing_guidelines SET
			name = $2,
			rate_cap_cents = $3,
			daily_hour_cap = $4,
			block_billing_prohibited = $5,
			task_code_required = $6,
			activity_code_required = $7,
			restricted_codes = $8,
			is_active = $9,
			last_updated_at = $10,
			last_updated_by = $11
		WHERE guideline_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GuidelineID,
		m.Name,
		m.RateCapCents,
		m.DailyHourCap,
		m.BlockBillingProhibited,
		m.TaskCodeRequired,
		m.ActivityCodeRequired,
		m.RestrictedCodes,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update guideline %s: %w", m.GuidelineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindGuidelineByID retrieves a guideline by its identifier.
func (r *PgxGuidelineRepository) FindGuidelineByID(ctx context.Context, guidelineID string) (*domain.BillingGuideline, error) {
	query := `SELECT ` + guidelineColumns + ` FROM billing_guidelines WHERE guideline_id = $1;`

	m, err := scanGuideline(r.Pool.QueryRow(ctx, query, guidelineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find guideline by ID %s: %w", guidelineID, err)
	}
	d := mapping.ToDomainGuideline(*m)
	return &d, nil
}

// ListActiveGuidelinesByClient retrieves the active guidelines for a client.
func (r *PgxGuidelineRepository) ListActiveGuidelinesByClient(ctx context.Context, clientID string) ([]domain.BillingGuideline, error) {
	query := `
		SELECT ` + guidelineColumns + `
		FROM billing_guidelines
		WHERE client_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active guidelines for client %s: %w", clientID, err)
	}
	defer rows.Close()

	return collectGuidelines(rows)
}

// ListGuidelinesByFirm retrieves all guidelines for a firm.
func (r *PgxGuidelineRepository) ListGuidelinesByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.BillingGuideline, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + guidelineColumns + `
		FROM billing_guidelines
		WHERE firm_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, firmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query guidelines for firm %s: %w", firmID, err)
	}
	defer rows.Close()

	return collectGuidelines(rows)
}

func collectGuidelines(rows pgx.Rows) ([]domain.BillingGuideline, error) {
	guidelines := []domain.BillingGuideline{}
	for rows.Next() {
		m, err := scanGuideline(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guideline row: %w", err)
		}
		guidelines = append(guidelines, mapping.ToDomainGuideline(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guideline rows: %w", err)
	}
	return guidelines, nil
}
