package domain

import "time"

// Reconciliation is a point-in-time comparison of a trust account's
// ledger-derived balance against an externally reported bank statement
// balance. Snapshots are immutable once created; mismatches are reported,
// never auto-corrected.
type Reconciliation struct {
	ReconciliationID      string    `json:"reconciliationID"` // Primary key (UUID)
	AccountID             string    `json:"accountID"`        // FK -> trust_accounts.account_id
	ReconciliationDate    time.Time `json:"reconciliationDate"`
	StatementBalanceCents int64     `json:"statementBalanceCents"` // Reported by the bank
	LedgerBalanceCents    int64     `json:"ledgerBalanceCents"`    // Derived as of ReconciliationDate
	IsBalanced            bool      `json:"isBalanced"`
	Notes                 string    `json:"notes"`
	PerformedBy           string    `json:"performedBy"` // UserID reference
	CreatedAt             time.Time `json:"createdAt"`
}
