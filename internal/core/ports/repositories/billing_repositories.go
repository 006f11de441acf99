package repositories

import (
	"context"
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// GuidelineRepositoryFacade defines operations for billing guideline data
type GuidelineRepositoryFacade interface {
	// SaveGuideline persists a new billing guideline.
	SaveGuideline(ctx context.Context, g domain.BillingGuideline) error

	// UpdateGuideline updates an existing guideline's policy fields.
	UpdateGuideline(ctx context.Context, g domain.BillingGuideline) error

	// FindGuidelineByID retrieves a guideline by its identifier.
	FindGuidelineByID(ctx context.Context, guidelineID string) (*domain.BillingGuideline, error)

	// ListActiveGuidelinesByClient retrieves the active guidelines for a client.
	ListActiveGuidelinesByClient(ctx context.Context, clientID string) ([]domain.BillingGuideline, error)

	// ListGuidelinesByFirm retrieves all guidelines for a firm.
	ListGuidelinesByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.BillingGuideline, error)
}

// TimeEntryReader defines read operations for time entry data
type TimeEntryReader interface {
	// FindTimeEntryByID retrieves a time entry with its attached UTBMS codes.
	FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error)

	// FindTimeEntriesByIDs retrieves multiple time entries with codes, keyed by ID.
	FindTimeEntriesByIDs(ctx context.Context, timeEntryIDs []string) (map[string]domain.TimeEntry, error)

	// ListTimeEntriesByMatter retrieves a paginated list of entries for a matter, newest first.
	ListTimeEntriesByMatter(ctx context.Context, matterID string, limit int, nextToken *string) ([]domain.TimeEntry, *string, error)

	// SumBillableMinutesForUserDate sums billable minutes already recorded
	// by a user on a calendar date within a firm. Used for daily-hour-cap checks.
	SumBillableMinutesForUserDate(ctx context.Context, firmID string, userID string, date time.Time) (int64, error)
}

// TimeEntryWriter defines write operations for time entry data
type TimeEntryWriter interface {
	// SaveTimeEntry persists a time entry and its attached codes atomically.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error
}

// TimeEntryRepositoryFacade combines time entry repository interfaces
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}

// InvoiceRepositoryFacade defines operations for invoice data
type InvoiceRepositoryFacade interface {
	// CreateInvoice atomically assigns the next firm-wide invoice number,
	// inserts the invoice header and line items, and stamps the consumed
	// time entries with the invoice ID. If any entry was invoiced
	// concurrently the whole operation fails with
	// apperrors.ErrTimeEntryAlreadyInvoiced and nothing is persisted.
	CreateInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.InvoiceLineItem) (*domain.Invoice, error)

	// FindInvoiceByID retrieves an invoice header with its line items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByFirm retrieves a paginated list of invoices, newest first.
	ListInvoicesByFirm(ctx context.Context, firmID string, limit int, offset int) ([]domain.Invoice, error)

	// VoidInvoice marks an invoice VOID and releases its time entries so
	// they may be invoiced again. The invoice number is never reused.
	VoidInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error
}
