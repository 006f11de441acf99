package domain

// TrustAccount is a segregated escrow bank account holding client funds.
// Its balance is mutated only through ledger entries, never directly:
// BalanceCents always equals the running balance of the most recent ledger
// entry for the account (zero when no entries exist).
type TrustAccount struct {
	AccountID          string `json:"accountID"`   // Primary key (UUID)
	FirmID             string `json:"firmID"`      // FK -> firms.firm_id (NON-NULL)
	Name               string `json:"name"`        // Display name
	BankName           string `json:"bankName"`    // Holding institution
	AccountNumberEnc   string `json:"-"`           // Encrypted account number, never serialized
	RoutingNumberEnc   string `json:"-"`           // Encrypted routing number, never serialized
	BalanceCents       int64  `json:"balanceCents"`
	IsActive           bool   `json:"isActive"`
	AuditFields
}
