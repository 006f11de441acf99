package domain

import "time"

// EntryType classifies a trust ledger entry. The direction of the balance
// change is implied by the type; amounts are always submitted as positive
// magnitudes.
type EntryType string

const (
	Deposit      EntryType = "DEPOSIT"
	Disbursement EntryType = "DISBURSEMENT"
	TransferIn   EntryType = "TRANSFER_IN"
	TransferOut  EntryType = "TRANSFER_OUT"
)

// Credits reports whether the entry type increases the account balance.
func (t EntryType) Credits() bool {
	return t == Deposit || t == TransferIn
}

// Valid reports whether t is one of the closed set of entry types.
func (t EntryType) Valid() bool {
	switch t {
	case Deposit, Disbursement, TransferIn, TransferOut:
		return true
	}
	return false
}

// LedgerEntry is an immutable, append-only transaction record against one
// trust account, attributed to one client and optionally one matter.
// Entries for a given account form a strictly monotonic derivation:
// running_balance[n] = running_balance[n-1] + signed_amount[n], and every
// running balance is non-negative.
type LedgerEntry struct {
	EntryID             string    `json:"entryID"`   // Primary key (UUID)
	AccountID           string    `json:"accountID"` // FK -> trust_accounts.account_id
	ClientID            string    `json:"clientID"`  // FK -> clients.client_id
	MatterID            *string   `json:"matterID"`  // Optional FK -> matters.matter_id
	EntryType           EntryType `json:"entryType"`
	AmountCents         int64     `json:"amountCents"` // Positive magnitude
	RunningBalanceCents int64     `json:"runningBalanceCents"`
	Description         string    `json:"description"`
	ReferenceNumber     *string   `json:"referenceNumber"` // Optional external reference (check no., wire ID)
	EntryDate           time.Time `json:"entryDate"`
	AuditFields
}

// SignedAmountCents returns the balance delta this entry applies.
func (e LedgerEntry) SignedAmountCents() int64 {
	if e.EntryType.Credits() {
		return e.AmountCents
	}
	return -e.AmountCents
}
