package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is a unit of billable (or non-billable) work recorded by one
// user against one matter on one date. Entries may only be attached to a
// single invoice; InvoiceID is set when consumed by invoice assembly.
type TimeEntry struct {
	TimeEntryID     string      `json:"timeEntryID"` // Primary key (UUID)
	FirmID          string      `json:"firmID"`
	MatterID        string      `json:"matterID"`
	ClientID        string      `json:"clientID"`
	UserID          string      `json:"userID"` // The timekeeper
	EntryDate       time.Time   `json:"entryDate"`
	DurationMinutes int64       `json:"durationMinutes"`
	Description     string      `json:"description"`
	Billable        bool        `json:"billable"`
	RateCents       int64       `json:"rateCents"` // Hourly rate
	Codes           []UTBMSCode `json:"codes"`
	InvoiceID       *string     `json:"invoiceID"` // Set once invoiced; never reused
	OverriddenBy    *string     `json:"overriddenBy"` // Admin who overrode guideline violations, if any
	OverrideNote    *string     `json:"overrideNote"`
	AuditFields
}

// Hours returns the entry duration as fractional hours.
func (e TimeEntry) Hours() decimal.Decimal {
	return decimal.NewFromInt(e.DurationMinutes).Div(decimal.NewFromInt(60))
}

// CodesOfType returns the attached UTBMS codes of the given type.
func (e TimeEntry) CodesOfType(t CodeType) []UTBMSCode {
	var out []UTBMSCode
	for _, c := range e.Codes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
