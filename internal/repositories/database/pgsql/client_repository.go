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

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client and matter data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, firm_id, name, email, is_active, created_at, created_by, last_updated_at, last_updated_by`
const matterColumns = `matter_id, firm_id, client_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.FirmID,
		&m.Name,
		&m.Email,
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

func scanMatter(row pgx.Row) (*models.Matter, error) {
	var m models.Matter
	err := row.Scan(
		&m.MatterID,
		&m.FirmID,
		&m.ClientID,
		&m.Name,
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

// SaveClient persists a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.FirmID,
		m.Name,
		m.Email,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: client %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to insert client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	d := mapping.ToDomainClient(*m)
	return &d, nil
}

// ListClientsByFirm retrieves a paginated list of active clients for a firm.
func (r *PgxClientRepository) ListClientsByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE firm_id = $1 AND is_active = TRUE
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, firmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients for firm %s: %w", firmID, err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

// DeactivateClient marks a client inactive.
func (r *PgxClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, clientID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveMatter persists a new matter.
func (r *PgxClientRepository) SaveMatter(ctx context.Context, matter domain.Matter) error {
	m := mapping.ToModelMatter(matter)
	query := `
		INSERT INTO matters (` + matterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MatterID,
		m.FirmID,
		m.ClientID,
		m.Name,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: matter %s already exists", apperrors.ErrDuplicate, m.MatterID)
		}
		return fmt.Errorf("failed to insert matter %s: %w", m.MatterID, err)
	}
	return nil
}

// FindMatterByID retrieves a matter by ID.
func (r *PgxClientRepository) FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error) {
	query := `SELECT ` + matterColumns + ` FROM matters WHERE matter_id = $1;`

	m, err := scanMatter(r.Pool.QueryRow(ctx, query, matterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find matter by ID %s: %w", matterID, err)
	}
	d := mapping.ToDomainMatter(*m)
	return &d, nil
}

// ListMattersByClient retrieves the matters for a client.
func (r *PgxClientRepository) ListMattersByClient(ctx context.Context, clientID string) ([]domain.Matter, error) {
	query := `SELECT ` + matterColumns + ` FROM matters WHERE client_id = $1 ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matters for client %s: %w", clientID, err)
	}
	defer rows.Close()

	matters := []domain.Matter{}
	for rows.Next() {
		m, err := scanMatter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matter row: %w", err)
		}
		matters = append(matters, mapping.ToDomainMatter(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matter rows: %w", err)
	}
	return matters, nil
}
