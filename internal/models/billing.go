package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingGuideline is the persistence representation of a per-client policy.
// RestrictedCodes maps to a text[] column.
type BillingGuideline struct {
	GuidelineID            string           `db:"guideline_id"`
	FirmID                 string           `db:"firm_id"`
	ClientID               string           `db:"client_id"`
	Name                   string           `db:"name"`
	RateCapCents           *int64           `db:"rate_cap_cents"`
	DailyHourCap           *decimal.Decimal `db:"daily_hour_cap"`
	BlockBillingProhibited bool             `db:"block_billing_prohibited"`
	TaskCodeRequired       bool             `db:"task_code_required"`
	ActivityCodeRequired   bool             `db:"activity_code_required"`
	RestrictedCodes        []string         `db:"restricted_codes"`
	IsActive               bool             `db:"is_active"`
	AuditFields
}

// TimeEntry is the persistence representation of a time entry.
type TimeEntry struct {
	TimeEntryID     string    `db:"time_entry_id"`
	FirmID          string    `db:"firm_id"`
	MatterID        string    `db:"matter_id"`
	ClientID        string    `db:"client_id"`
	UserID          string    `db:"user_id"`
	EntryDate       time.Time `db:"entry_date"`
	DurationMinutes int64     `db:"duration_minutes"`
	Description     string    `db:"description"`
	Billable        bool      `db:"billable"`
	RateCents       int64     `db:"rate_cents"`
	InvoiceID       *string   `db:"invoice_id"`
	OverriddenBy    *string   `db:"overridden_by"`
	OverrideNote    *string   `db:"override_note"`
	AuditFields
}

// TimeEntryCode is one UTBMS code attached to a time entry.
type TimeEntryCode struct {
	TimeEntryID string `db:"time_entry_id"`
	Code        string `db:"code"`
	CodeType    string `db:"code_type"`
}

// Invoice is the persistence representation of an invoice header.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	FirmID        string          `db:"firm_id"`
	ClientID      string          `db:"client_id"`
	MatterID      string          `db:"matter_id"`
	InvoiceNumber int64           `db:"invoice_number"`
	SubtotalCents int64           `db:"subtotal_cents"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	TaxCents      int64           `db:"tax_cents"`
	TotalCents    int64           `db:"total_cents"`
	Status        string          `db:"status"`
	IssueDate     time.Time       `db:"issue_date"`
	AuditFields
}

// InvoiceLineItem is the persistence representation of one invoice line.
type InvoiceLineItem struct {
	LineItemID      string `db:"line_item_id"`
	InvoiceID       string `db:"invoice_id"`
	TimeEntryID     string `db:"time_entry_id"`
	Description     string `db:"description"`
	DurationMinutes int64  `db:"duration_minutes"`
	RateCents       int64  `db:"rate_cents"`
	AmountCents     int64  `db:"amount_cents"`
}
