package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the state of an invoice.
type InvoiceStatus string

const (
	Issued InvoiceStatus = "ISSUED"
	Void   InvoiceStatus = "VOID"
)

// Invoice aggregates validated time entries for one client/matter into an
// immutable billing document. InvoiceNumber is firm-wide, strictly
// increasing and never reused (voided invoices keep their number).
// Invariant: SubtotalCents == sum of line item amounts, and
// TotalCents == SubtotalCents + TaxCents.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary key (UUID)
	FirmID        string          `json:"firmID"`
	ClientID      string          `json:"clientID"`
	MatterID      string          `json:"matterID"`
	InvoiceNumber int64           `json:"invoiceNumber"`
	SubtotalCents int64           `json:"subtotalCents"`
	TaxRate       decimal.Decimal `json:"taxRate"` // e.g. 0.0825 for 8.25%
	TaxCents      int64           `json:"taxCents"`
	TotalCents    int64           `json:"totalCents"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	AuditFields
	LineItems []InvoiceLineItem `json:"lineItems,omitempty"` // Loaded on demand
}

// InvoiceLineItem is one line of an invoice, derived from exactly one time
// entry. Line items are immutable once the invoice is issued.
type InvoiceLineItem struct {
	LineItemID      string `json:"lineItemID"` // Primary key (UUID)
	InvoiceID       string `json:"invoiceID"`
	TimeEntryID     string `json:"timeEntryID"`
	Description     string `json:"description"`
	DurationMinutes int64  `json:"durationMinutes"`
	RateCents       int64  `json:"rateCents"`
	AmountCents     int64  `json:"amountCents"` // rate prorated over duration
}
