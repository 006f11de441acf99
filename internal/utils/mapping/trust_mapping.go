package mapping

import (
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/models"
)

// ToModelTrustAccount converts a domain TrustAccount to its model form.
func ToModelTrustAccount(d domain.TrustAccount) models.TrustAccount {
	return models.TrustAccount{
		AccountID:        d.AccountID,
		FirmID:           d.FirmID,
		Name:             d.Name,
		BankName:         d.BankName,
		AccountNumberEnc: d.AccountNumberEnc,
		RoutingNumberEnc: d.RoutingNumberEnc,
		BalanceCents:     d.BalanceCents,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrustAccount converts a model TrustAccount to its domain form.
func ToDomainTrustAccount(m models.TrustAccount) domain.TrustAccount {
	return domain.TrustAccount{
		AccountID:        m.AccountID,
		FirmID:           m.FirmID,
		Name:             m.Name,
		BankName:         m.BankName,
		AccountNumberEnc: m.AccountNumberEnc,
		RoutingNumberEnc: m.RoutingNumberEnc,
		BalanceCents:     m.BalanceCents,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to its model form.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:             d.EntryID,
		AccountID:           d.AccountID,
		ClientID:            d.ClientID,
		MatterID:            d.MatterID,
		EntryType:           models.EntryType(d.EntryType),
		AmountCents:         d.AmountCents,
		RunningBalanceCents: d.RunningBalanceCents,
		Description:         d.Description,
		ReferenceNumber:     d.ReferenceNumber,
		EntryDate:           d.EntryDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to its domain form.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:             m.EntryID,
		AccountID:           m.AccountID,
		ClientID:            m.ClientID,
		MatterID:            m.MatterID,
		EntryType:           domain.EntryType(m.EntryType),
		AmountCents:         m.AmountCents,
		RunningBalanceCents: m.RunningBalanceCents,
		Description:         m.Description,
		ReferenceNumber:     m.ReferenceNumber,
		EntryDate:           m.EntryDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainReconciliation converts a model Reconciliation to its domain form.
func ToDomainReconciliation(m models.Reconciliation) domain.Reconciliation {
	return domain.Reconciliation{
		ReconciliationID:      m.ReconciliationID,
		AccountID:             m.AccountID,
		ReconciliationDate:    m.ReconciliationDate,
		StatementBalanceCents: m.StatementBalanceCents,
		LedgerBalanceCents:    m.LedgerBalanceCents,
		IsBalanced:            m.IsBalanced,
		Notes:                 m.Notes,
		PerformedBy:           m.PerformedBy,
		CreatedAt:             m.CreatedAt,
	}
}

// ToModelReconciliation converts a domain Reconciliation to its model form.
func ToModelReconciliation(d domain.Reconciliation) models.Reconciliation {
	return models.Reconciliation{
		ReconciliationID:      d.ReconciliationID,
		AccountID:             d.AccountID,
		ReconciliationDate:    d.ReconciliationDate,
		StatementBalanceCents: d.StatementBalanceCents,
		LedgerBalanceCents:    d.LedgerBalanceCents,
		IsBalanced:            d.IsBalanced,
		Notes:                 d.Notes,
		PerformedBy:           d.PerformedBy,
		CreatedAt:             d.CreatedAt,
	}
}
