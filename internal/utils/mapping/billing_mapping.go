package mapping

import (
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/models"
)

// ToModelGuideline converts a domain BillingGuideline to its model form.
func ToModelGuideline(d domain.BillingGuideline) models.BillingGuideline {
	return models.BillingGuideline{
		GuidelineID:            d.GuidelineID,
		FirmID:                 d.FirmID,
		ClientID:               d.ClientID,
		Name:                   d.Name,
		RateCapCents:           d.RateCapCents,
		DailyHourCap:           d.DailyHourCap,
		BlockBillingProhibited: d.BlockBillingProhibited,
		TaskCodeRequired:       d.TaskCodeRequired,
		ActivityCodeRequired:   d.ActivityCodeRequired,
		RestrictedCodes:        d.RestrictedCodes,
		IsActive:               d.IsActive,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGuideline converts a model BillingGuideline to its domain form.
func ToDomainGuideline(m models.BillingGuideline) domain.BillingGuideline {
	return domain.BillingGuideline{
		GuidelineID:            m.GuidelineID,
		FirmID:                 m.FirmID,
		ClientID:               m.ClientID,
		Name:                   m.Name,
		RateCapCents:           m.RateCapCents,
		DailyHourCap:           m.DailyHourCap,
		BlockBillingProhibited: m.BlockBillingProhibited,
		TaskCodeRequired:       m.TaskCodeRequired,
		ActivityCodeRequired:   m.ActivityCodeRequired,
		RestrictedCodes:        m.RestrictedCodes,
		IsActive:               m.IsActive,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTimeEntry converts a domain TimeEntry to its model form.
// Attached codes are persisted separately (time_entry_codes).
func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	return models.TimeEntry{
		TimeEntryID:     d.TimeEntryID,
		FirmID:          d.FirmID,
		MatterID:        d.MatterID,
		ClientID:        d.ClientID,
		UserID:          d.UserID,
		EntryDate:       d.EntryDate,
		DurationMinutes: d.DurationMinutes,
		Description:     d.Description,
		Billable:        d.Billable,
		RateCents:       d.RateCents,
		InvoiceID:       d.InvoiceID,
		OverriddenBy:    d.OverriddenBy,
		OverrideNote:    d.OverrideNote,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimeEntry converts a model TimeEntry plus its codes to domain form.
func ToDomainTimeEntry(m models.TimeEntry, codes []models.TimeEntryCode) domain.TimeEntry {
	d := domain.TimeEntry{
		TimeEntryID:     m.TimeEntryID,
		FirmID:          m.FirmID,
		MatterID:        m.MatterID,
		ClientID:        m.ClientID,
		UserID:          m.UserID,
		EntryDate:       m.EntryDate,
		DurationMinutes: m.DurationMinutes,
		Description:     m.Description,
		Billable:        m.Billable,
		RateCents:       m.RateCents,
		InvoiceID:       m.InvoiceID,
		OverriddenBy:    m.OverriddenBy,
		OverrideNote:    m.OverrideNote,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	for _, c := range codes {
		d.Codes = append(d.Codes, domain.UTBMSCode{Code: c.Code, Type: domain.CodeType(c.CodeType)})
	}
	return d
}

// ToModelInvoice converts a domain Invoice header to its model form.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		FirmID:        d.FirmID,
		ClientID:      d.ClientID,
		MatterID:      d.MatterID,
		InvoiceNumber: d.InvoiceNumber,
		SubtotalCents: d.SubtotalCents,
		TaxRate:       d.TaxRate,
		TaxCents:      d.TaxCents,
		TotalCents:    d.TotalCents,
		Status:        string(d.Status),
		IssueDate:     d.IssueDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice header to its domain form.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		FirmID:        m.FirmID,
		ClientID:      m.ClientID,
		MatterID:      m.MatterID,
		InvoiceNumber: m.InvoiceNumber,
		SubtotalCents: m.SubtotalCents,
		TaxRate:       m.TaxRate,
		TaxCents:      m.TaxCents,
		TotalCents:    m.TotalCents,
		Status:        domain.InvoiceStatus(m.Status),
		IssueDate:     m.IssueDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItem converts a model InvoiceLineItem to its domain form.
func ToDomainLineItem(m models.InvoiceLineItem) domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		LineItemID:      m.LineItemID,
		InvoiceID:       m.InvoiceID,
		TimeEntryID:     m.TimeEntryID,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		RateCents:       m.RateCents,
		AmountCents:     m.AmountCents,
	}
}
