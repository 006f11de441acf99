package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	"github.com/praxisledger/trustd/internal/models"
	"github.com/praxisledger/trustd/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, firm_id, client_id, matter_id, invoice_number, subtotal_cents, tax_rate, tax_cents, total_cents, status, issue_date, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.FirmID,
		&m.ClientID,
		&m.MatterID,
		&m.InvoiceNumber,
		&m.SubtotalCents,
		&m.TaxRate,
		&m.TaxCents,
		&m.TotalCents,
		&m.Status,
		&m.IssueDate,
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

// CreateInvoice atomically assigns the next firm-wide invoice number, inserts
// the header and line items, and stamps the consumed time entries. The
// counter row is locked by the upsert, so concurrent invoice creation within
// a firm serializes here and numbers stay strictly increasing. Numbers
// consumed by a transaction that later rolls back are gaps, never reuses.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.InvoiceLineItem) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	counterQuery := `
		INSERT INTO invoice_counters (firm_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (firm_id) DO UPDATE SET last_number = invoice_counters.last_number + 1
		RETURNING last_number;
	`
	var invoiceNumber int64
	if err := tx.QueryRow(ctx, counterQuery, invoice.FirmID).Scan(&invoiceNumber); err != nil {
		return nil, fmt.Errorf("failed to advance invoice counter for firm %s: %w", invoice.FirmID, err)
	}
	invoice.InvoiceNumber = invoiceNumber

	m := mapping.ToModelInvoice(invoice)
	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.InvoiceID,
		m.FirmID,
		m.ClientID,
		m.MatterID,
		m.InvoiceNumber,
		m.SubtotalCents,
		m.TaxRate,
		m.TaxCents,
		m.TotalCents,
		m.Status,
		m.IssueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceID, err)
	}

	lineItemQuery := `
		INSERT INTO invoice_line_items (line_item_id, invoice_id, time_entry_id, description, duration_minutes, rate_cents, amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, li := range lineItems {
		batch.Queue(lineItemQuery, li.LineItemID, li.InvoiceID, li.TimeEntryID, li.Description, li.DurationMinutes, li.RateCents, li.AmountCents)
	}
	br := tx.SendBatch(ctx, batch)
	for range lineItems {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("failed to insert line items for invoice %s: %w", m.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close line item batch for invoice %s: %w", m.InvoiceID, err)
	}

	// Conditional stamp: a zero row count means another invoice claimed the
	// entry between the service's eligibility check and now.
	stampQuery := `
		UPDATE time_entries
		SET invoice_id = $1, last_updated_at = $3, last_updated_by = $4
		WHERE time_entry_id = $2 AND invoice_id IS NULL;
	`
	for _, li := range lineItems {
		tag, err := tx.Exec(ctx, stampQuery, invoice.InvoiceID, li.TimeEntryID, invoice.LastUpdatedAt, invoice.LastUpdatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to stamp time entry %s: %w", li.TimeEntryID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("%w: time entry %s", apperrors.ErrTimeEntryAlreadyInvoiced, li.TimeEntryID)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	invoice.LineItems = lineItems
	return &invoice, nil
}

// FindInvoiceByID retrieves an invoice header with its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainInvoice(*m)

	lineQuery := `
		SELECT line_item_id, invoice_id, time_entry_id, description, duration_minutes, rate_cents, amount_cents
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_item_id ASC;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var li models.InvoiceLineItem
		if err := rows.Scan(&li.LineItemID, &li.InvoiceID, &li.TimeEntryID, &li.Description, &li.DurationMinutes, &li.RateCents, &li.AmountCents); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		d.LineItems = append(d.LineItems, mapping.ToDomainLineItem(li))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return &d, nil
}

// ListInvoicesByFirm retrieves a paginated list of invoice headers, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE firm_id = $1
		ORDER BY invoice_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, firmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for firm %s: %w", firmID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// VoidInvoice marks an invoice VOID and releases its time entries so they may
// be invoiced again. The invoice number is never reused.
func (r *PgxInvoiceRepository) VoidInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	voidQuery := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND status <> $2;
	`
	tag, err := tx.Exec(ctx, voidQuery, invoiceID, string(domain.Void), now, userID)
	if err != nil {
		return fmt.Errorf("failed to void invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_id = $1);`, invoiceID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check invoice %s: %w", invoiceID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: invoice %s is already void", apperrors.ErrConflict, invoiceID)
	}

	releaseQuery := `
		UPDATE time_entries
		SET invoice_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, releaseQuery, invoiceID, now, userID); err != nil {
		return fmt.Errorf("failed to release time entries for invoice %s: %w", invoiceID, err)
	}

	return r.Commit(ctx, tx)
}
