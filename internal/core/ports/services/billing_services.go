package services

import (
	"context"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/dto"
)

// GuidelineReaderSvc defines read operations for billing guidelines
type GuidelineReaderSvc interface {
	// GetGuidelineByID retrieves a specific guideline by its ID.
	GetGuidelineByID(ctx context.Context, firmID string, guidelineID string, userID string) (*domain.BillingGuideline, error)

	// ListGuidelines retrieves all guidelines for a firm.
	ListGuidelines(ctx context.Context, firmID string, userID string) ([]domain.BillingGuideline, error)
}

// GuidelineWriterSvc defines write operations for billing guidelines
type GuidelineWriterSvc interface {
	// CreateGuideline persists a new per-client guideline.
	CreateGuideline(ctx context.Context, firmID string, req dto.CreateGuidelineRequest, creatorUserID string) (*domain.BillingGuideline, error)

	// UpdateGuideline updates an existing guideline. Changes apply only to
	// time entries validated after the update.
	UpdateGuideline(ctx context.Context, firmID string, guidelineID string, req dto.UpdateGuidelineRequest, userID string) (*domain.BillingGuideline, error)
}

// GuidelineEnforcerSvc defines the compliance check applied to time entries
type GuidelineEnforcerSvc interface {
	// CheckTimeEntry evaluates a time entry against every active guideline
	// of its client and returns all violations found. Rules never
	// short-circuit: the result is the complete correction list. A nil
	// result means the entry is compliant.
	CheckTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.Violations, error)
}

// GuidelineSvcFacade combines all guideline-related service interfaces
type GuidelineSvcFacade interface {
	GuidelineReaderSvc
	GuidelineWriterSvc
	GuidelineEnforcerSvc
}

// TimeEntryReaderSvc defines read operations for time entries
type TimeEntryReaderSvc interface {
	// GetTimeEntryByID retrieves a time entry by its ID.
	GetTimeEntryByID(ctx context.Context, firmID string, timeEntryID string, userID string) (*domain.TimeEntry, error)

	// ListTimeEntriesByMatter retrieves a paginated list of time entries
	// for a matter, newest first.
	ListTimeEntriesByMatter(ctx context.Context, firmID string, matterID string, userID string, params dto.ListTimeEntriesParams) (*dto.ListTimeEntriesResponse, error)
}

// TimeEntryWriterSvc defines write operations for time entries
type TimeEntryWriterSvc interface {
	// CreateTimeEntry validates the entry against the client's guidelines
	// and persists it. Violations reject the entry unless the request
	// carries an admin override, which is recorded on the entry.
	CreateTimeEntry(ctx context.Context, firmID string, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error)
}

// TimeEntrySvcFacade combines all time-entry-related service interfaces
type TimeEntrySvcFacade interface {
	TimeEntryReaderSvc
	TimeEntryWriterSvc
}

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its line items.
	GetInvoiceByID(ctx context.Context, firmID string, invoiceID string, userID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices for a firm,
	// without line items.
	ListInvoices(ctx context.Context, firmID string, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice assembles an invoice from the given time entries.
	// Assembly is all-or-nothing: any ineligible entry fails the whole
	// request and no invoice number is consumed.
	CreateInvoice(ctx context.Context, firmID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// VoidInvoice marks an invoice void and releases its time entries for
	// re-invoicing. The invoice number is never reused.
	VoidInvoice(ctx context.Context, firmID string, invoiceID string, userID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
