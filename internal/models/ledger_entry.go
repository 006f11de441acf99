package models

import "time"

// EntryType mirrors domain.EntryType at the persistence boundary.
type EntryType string

const (
	Deposit      EntryType = "DEPOSIT"
	Disbursement EntryType = "DISBURSEMENT"
	TransferIn   EntryType = "TRANSFER_IN"
	TransferOut  EntryType = "TRANSFER_OUT"
)

// LedgerEntry is the persistence representation of a trust ledger entry.
// Rows are append-only: there are no UPDATE or DELETE statements against
// this table anywhere in the codebase.
type LedgerEntry struct {
	EntryID             string    `db:"entry_id"`
	AccountID           string    `db:"account_id"`
	ClientID            string    `db:"client_id"`
	MatterID            *string   `db:"matter_id"`
	EntryType           EntryType `db:"entry_type"`
	AmountCents         int64     `db:"amount_cents"`
	RunningBalanceCents int64     `db:"running_balance_cents"`
	Description         string    `db:"description"`
	ReferenceNumber     *string   `db:"reference_number"`
	EntryDate           time.Time `db:"entry_date"`
	AuditFields
}

// Reconciliation is the persistence representation of a reconciliation snapshot.
type Reconciliation struct {
	ReconciliationID      string    `db:"reconciliation_id"`
	AccountID             string    `db:"account_id"`
	ReconciliationDate    time.Time `db:"reconciliation_date"`
	StatementBalanceCents int64     `db:"statement_balance_cents"`
	LedgerBalanceCents    int64     `db:"ledger_balance_cents"`
	IsBalanced            bool      `db:"is_balanced"`
	Notes                 string    `db:"notes"`
	PerformedBy           string    `db:"performed_by"`
	CreatedAt             time.Time `db:"created_at"`
}
