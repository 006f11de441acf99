package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/core/ports/events"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
	"github.com/praxisledger/trustd/internal/utils/accounting"
)

// invoiceService assembles validated time entries into immutable invoices.
// Assembly is all-or-nothing: one ineligible entry fails the whole request
// and no invoice number is consumed.
type invoiceService struct {
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	timeEntryRepo  portsrepo.TimeEntryReader
	clientSvc      portssvc.ClientSvcFacade
	firmSvc        portssvc.FirmAuthorizerSvc
	publisher      events.Publisher
	defaultTaxRate decimal.Decimal
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	timeEntryRepo portsrepo.TimeEntryReader,
	clientSvc portssvc.ClientSvcFacade,
	firmSvc portssvc.FirmAuthorizerSvc,
	publisher events.Publisher,
	defaultTaxRate decimal.Decimal,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:    invoiceRepo,
		timeEntryRepo:  timeEntryRepo,
		clientSvc:      clientSvc,
		firmSvc:        firmSvc,
		publisher:      publisher,
		defaultTaxRate: defaultTaxRate,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice assembles an invoice from the given time entries.
func (s *invoiceService) CreateInvoice(ctx context.Context, firmID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleMember); err != nil {
		return nil, err
	}

	// Matter must exist, belong to the firm and to the requested client.
	matter, err := s.clientSvc.GetMatterByID(ctx, firmID, req.MatterID, creatorUserID)
	if err != nil {
		return nil, err
	}
	if matter.ClientID != req.ClientID {
		return nil, fmt.Errorf("%w: matter %s does not belong to client %s", apperrors.ErrValidation, req.MatterID, req.ClientID)
	}

	// Reject duplicate entry IDs in the request itself.
	seen := make(map[string]bool, len(req.TimeEntryIDs))
	for _, id := range req.TimeEntryIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: time entry %s listed more than once", apperrors.ErrValidation, id)
		}
		seen[id] = true
	}

	entriesByID, err := s.timeEntryRepo.FindTimeEntriesByIDs(ctx, req.TimeEntryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}

	// Eligibility: every entry must exist, belong to this firm and matter,
	// be billable, and not already sit on an invoice.
	for _, id := range req.TimeEntryIDs {
		entry, found := entriesByID[id]
		if !found {
			return nil, fmt.Errorf("%w: time entry %s", apperrors.ErrNotFound, id)
		}
		if entry.FirmID != firmID {
			return nil, fmt.Errorf("%w: time entry %s", apperrors.ErrNotFound, id)
		}
		if entry.MatterID != req.MatterID {
			return nil, fmt.Errorf("%w: time entry %s belongs to a different matter", apperrors.ErrValidation, id)
		}
		if !entry.Billable {
			return nil, fmt.Errorf("%w: time entry %s is not billable", apperrors.ErrValidation, id)
		}
		if entry.InvoiceID != nil {
			return nil, fmt.Errorf("%w: time entry %s is on invoice %s", apperrors.ErrTimeEntryAlreadyInvoiced, id, *entry.InvoiceID)
		}
	}

	taxRate := s.defaultTaxRate
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
		}
		taxRate = *req.TaxRate
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	// One line item per entry, in request order. Amounts prorate the hourly
	// rate over the entry duration with half-up rounding to whole cents.
	lineItems := make([]domain.InvoiceLineItem, len(req.TimeEntryIDs))
	var subtotalCents int64
	for i, id := range req.TimeEntryIDs {
		entry := entriesByID[id]
		amount := accounting.LineItemAmountCents(entry.RateCents, entry.DurationMinutes)
		lineItems[i] = domain.InvoiceLineItem{
			LineItemID:      uuid.NewString(),
			InvoiceID:       invoiceID,
			TimeEntryID:     entry.TimeEntryID,
			Description:     entry.Description,
			DurationMinutes: entry.DurationMinutes,
			RateCents:       entry.RateCents,
			AmountCents:     amount,
		}
		subtotalCents += amount
	}

	taxCents := accounting.TaxCents(subtotalCents, taxRate)
	invoice := domain.Invoice{
		InvoiceID:     invoiceID,
		FirmID:        firmID,
		ClientID:      req.ClientID,
		MatterID:      req.MatterID,
		SubtotalCents: subtotalCents,
		TaxRate:       taxRate,
		TaxCents:      taxCents,
		TotalCents:    subtotalCents + taxCents,
		Status:        domain.Issued,
		IssueDate:     req.IssueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		// InvoiceNumber is assigned from the firm counter inside the repository.
	}

	saved, err := s.invoiceRepo.CreateInvoice(ctx, invoice, lineItems)
	if err != nil {
		logger.Error("Failed to create invoice", slog.String("error", err.Error()), slog.String("matter_id", req.MatterID))
		return nil, err
	}

	logger.Info("Invoice issued",
		slog.String("invoice_id", saved.InvoiceID),
		slog.Int64("invoice_number", saved.InvoiceNumber),
		slog.Int64("total_cents", saved.TotalCents),
		slog.Int("line_items", len(lineItems)),
	)

	if s.publisher != nil {
		event := events.AuditEvent{
			EventID:    uuid.NewString(),
			EventType:  events.EventInvoiceIssued,
			FirmID:     firmID,
			EntityID:   saved.InvoiceID,
			ActorID:    creatorUserID,
			OccurredAt: now,
			Detail:     fmt.Sprintf("invoice %d issued for %d cents", saved.InvoiceNumber, saved.TotalCents),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Error("Failed to publish invoice audit event", slog.String("error", err.Error()), slog.String("invoice_id", saved.InvoiceID))
		}
	}

	return saved, nil
}

// GetInvoiceByID retrieves an invoice with its line items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, firmID string, invoiceID string, userID string) (*domain.Invoice, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ListInvoices retrieves a paginated list of invoices for a firm.
func (s *invoiceService) ListInvoices(ctx context.Context, firmID string, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, err := s.invoiceRepo.ListInvoicesByFirm(ctx, firmID, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// VoidInvoice marks an invoice void and releases its time entries for
// re-invoicing. The number stays consumed so the firm-wide sequence keeps
// no gaps from reuse.
func (s *invoiceService) VoidInvoice(ctx context.Context, firmID string, invoiceID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}
	if invoice.Status == domain.Void {
		return nil, fmt.Errorf("%w: invoice %s is already void", apperrors.ErrConflict, invoiceID)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.VoidInvoice(ctx, invoiceID, userID, now); err != nil {
		logger.Error("Failed to void invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to void invoice: %w", err)
	}

	invoice.Status = domain.Void
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	logger.Info("Invoice voided", slog.String("invoice_id", invoiceID), slog.Int64("invoice_number", invoice.InvoiceNumber))

	if s.publisher != nil {
		event := events.AuditEvent{
			EventID:    uuid.NewString(),
			EventType:  events.EventInvoiceVoided,
			FirmID:     firmID,
			EntityID:   invoiceID,
			ActorID:    userID,
			OccurredAt: now,
			Detail:     fmt.Sprintf("invoice %d voided; time entries released", invoice.InvoiceNumber),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Error("Failed to publish void audit event", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
	}

	return invoice, nil
}
