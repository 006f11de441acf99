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
	"github.com/praxisledger/trustd/internal/utils/mapping"
	"github.com/praxisledger/trustd/internal/utils/pagination"
)

type PgxTimeEntryRepository struct {
	BaseRepository
}

// newPgxTimeEntryRepository creates a new repository for time entry data.
func newPgxTimeEntryRepository(pool *pgxpool.Pool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

const timeEntryColumns = `time_entry_id, firm_id, matter_id, client_id, user_id, entry_date, duration_minutes, description, billable, rate_cents, invoice_id, overridden_by, override_note, created_at, created_by, last_updated_at, last_updated_by`

func scanTimeEntry(row pgx.Row) (*models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.TimeEntryID,
		&m.FirmID,
		&m.MatterID,
		&m.ClientID,
		&m.UserID,
		&m.EntryDate,
		&m.DurationMinutes,
		&m.Description,
		&m.Billable,
		&m.RateCents,
		&m.InvoiceID,
		&m.OverriddenBy,
		&m.OverrideNote,
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

// SaveTimeEntry persists a time entry and its attached UTBMS codes in one
// transaction.
func (r *PgxTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTimeEntry(entry)
	insertQuery := `
		INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TimeEntryID,
		m.FirmID,
		m.MatterID,
		m.ClientID,
		m.UserID,
		m.EntryDate,
		m.DurationMinutes,
		m.Description,
		m.Billable,
		m.RateCents,
		m.InvoiceID,
		m.OverriddenBy,
		m.OverrideNote,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: time entry %s already exists", apperrors.ErrDuplicate, m.TimeEntryID)
		}
		return fmt.Errorf("failed to insert time entry %s: %w", m.TimeEntryID, err)
	}

	if len(entry.Codes) > 0 {
		batch := &pgx.Batch{}
		codeQuery := `INSERT INTO time_entry_codes (time_entry_id, code, code_type) VALUES ($1, $2, $3);`
		for _, c := range entry.Codes {
			batch.Queue(codeQuery, entry.TimeEntryID, c.Code, string(c.Type))
		}
		br := tx.SendBatch(ctx, batch)
		for range entry.Codes {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert codes for time entry %s: %w", entry.TimeEntryID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close code batch for time entry %s: %w", entry.TimeEntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindTimeEntryByID retrieves a time entry with its attached UTBMS codes.
func (r *PgxTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE time_entry_id = $1;`

	m, err := scanTimeEntry(r.Pool.QueryRow(ctx, query, timeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find time entry by ID %s: %w", timeEntryID, err)
	}

	codes, err := r.loadCodes(ctx, []string{timeEntryID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainTimeEntry(*m, codes[timeEntryID])
	return &d, nil
}

// FindTimeEntriesByIDs retrieves multiple time entries with codes, keyed by ID.
// IDs with no matching row are simply absent from the result map.
func (r *PgxTimeEntryRepository) FindTimeEntriesByIDs(ctx context.Context, timeEntryIDs []string) (map[string]domain.TimeEntry, error) {
	result := make(map[string]domain.TimeEntry, len(timeEntryIDs))
	if len(timeEntryIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE time_entry_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, timeEntryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries by IDs: %w", err)
	}
	defer rows.Close()

	entryModels := []models.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entryModels = append(entryModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}

	codes, err := r.loadCodes(ctx, timeEntryIDs)
	if err != nil {
		return nil, err
	}

	for _, m := range entryModels {
		result[m.TimeEntryID] = mapping.ToDomainTimeEntry(m, codes[m.TimeEntryID])
	}
	return result, nil
}

// ListTimeEntriesByMatter retrieves a paginated list of entries for a matter,
// newest first, using token-based pagination.
func (r *PgxTimeEntryRepository) ListTimeEntriesByMatter(ctx context.Context, matterID string, limit int, nextToken *string) ([]domain.TimeEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	filterClause := `WHERE matter_id = $1`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{matterID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query time entries for matter %s: %w", matterID, err)
	}
	defer rows.Close()

	entryModels := []models.TimeEntry{}
	ids := []string{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entryModels = append(entryModels, *m)
		ids = append(ids, m.TimeEntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(entryModels) > limit {
		entryModels = entryModels[:limit]
		ids = ids[:limit]
		last := entryModels[len(entryModels)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
	}

	codes, err := r.loadCodes(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.TimeEntry, 0, len(entryModels))
	for _, m := range entryModels {
		entries = append(entries, mapping.ToDomainTimeEntry(m, codes[m.TimeEntryID]))
	}
	return entries, nextTokenVal, nil
}

// SumBillableMinutesForUserDate sums billable minutes already recorded by a
// user on a calendar date within a firm.
func (r *PgxTimeEntryRepository) SumBillableMinutesForUserDate(ctx context.Context, firmID string, userID string, date time.Time) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM time_entries
		WHERE firm_id = $1 AND user_id = $2 AND billable = TRUE
		  AND entry_date >= $3 AND entry_date < $4;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, firmID, userID, dayStart, dayEnd).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum billable minutes for user %s on %s: %w", userID, dayStart.Format("2006-01-02"), err)
	}
	return total, nil
}

// loadCodes fetches the UTBMS codes attached to the given time entries,
// grouped by time entry ID.
func (r *PgxTimeEntryRepository) loadCodes(ctx context.Context, timeEntryIDs []string) (map[string][]models.TimeEntryCode, error) {
	grouped := make(map[string][]models.TimeEntryCode, len(timeEntryIDs))
	if len(timeEntryIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT time_entry_id, code, code_type FROM time_entry_codes WHERE time_entry_id = ANY($1) ORDER BY code ASC;`
	rows, err := r.Pool.Query(ctx, query, timeEntryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entry codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.TimeEntryCode
		if err := rows.Scan(&c.TimeEntryID, &c.Code, &c.CodeType); err != nil {
			return nil, fmt.Errorf("failed to scan time entry code row: %w", err)
		}
		grouped[c.TimeEntryID] = append(grouped[c.TimeEntryID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry code rows: %w", err)
	}
	return grouped, nil
}
