package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to assemble an invoice from
// existing time entries. Assembly is all-or-nothing: if any entry is
// ineligible no invoice is created.
type CreateInvoiceRequest struct {
	ClientID     string           `json:"clientID" binding:"required"`
	MatterID     string           `json:"matterID" binding:"required"`
	TimeEntryIDs []string         `json:"timeEntryIDs" binding:"required,min=1"`
	TaxRate      *decimal.Decimal `json:"taxRate"` // Optional; falls back to the configured default
	IssueDate    time.Time        `json:"issueDate" binding:"required"`
}

// InvoiceLineItemResponse defines the data returned for one invoice line.
type InvoiceLineItemResponse struct {
	LineItemID      string `json:"lineItemID"`
	TimeEntryID     string `json:"timeEntryID"`
	Description     string `json:"description"`
	DurationMinutes int64  `json:"durationMinutes"`
	RateCents       int64  `json:"rateCents"`
	AmountCents     int64  `json:"amountCents"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                    `json:"invoiceID"`
	FirmID        string                    `json:"firmID"`
	ClientID      string                    `json:"clientID"`
	MatterID      string                    `json:"matterID"`
	InvoiceNumber int64                     `json:"invoiceNumber"`
	SubtotalCents int64                     `json:"subtotalCents"`
	TaxRate       decimal.Decimal           `json:"taxRate"`
	TaxCents      int64                     `json:"taxCents"`
	TotalCents    int64                     `json:"totalCents"`
	Status        string                    `json:"status"`
	IssueDate     time.Time                 `json:"issueDate"`
	CreatedAt     time.Time                 `json:"createdAt"`
	CreatedBy     string                    `json:"createdBy"`
	LineItems     []InvoiceLineItemResponse `json:"lineItems,omitempty"`
}

// ToInvoiceLineItemResponse converts a domain.InvoiceLineItem to DTO.
func ToInvoiceLineItemResponse(li *domain.InvoiceLineItem) InvoiceLineItemResponse {
	return InvoiceLineItemResponse{
		LineItemID:      li.LineItemID,
		TimeEntryID:     li.TimeEntryID,
		Description:     li.Description,
		DurationMinutes: li.DurationMinutes,
		RateCents:       li.RateCents,
		AmountCents:     li.AmountCents,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		lines[i] = ToInvoiceLineItemResponse(&li)
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		FirmID:        inv.FirmID,
		ClientID:      inv.ClientID,
		MatterID:      inv.MatterID,
		InvoiceNumber: inv.InvoiceNumber,
		SubtotalCents: inv.SubtotalCents,
		TaxRate:       inv.TaxRate,
		TaxCents:      inv.TaxCents,
		TotalCents:    inv.TotalCents,
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		LineItems:     lines,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListInvoicesResponse wraps the list of invoices (without line items).
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToListInvoicesResponse converts a slice of domain.Invoice to DTO.
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: res}
}
