package models

// TrustAccount is the persistence representation of a trust account row.
type TrustAccount struct {
	AccountID        string `db:"account_id"`
	FirmID           string `db:"firm_id"`
	Name             string `db:"name"`
	BankName         string `db:"bank_name"`
	AccountNumberEnc string `db:"account_number_enc"`
	RoutingNumberEnc string `db:"routing_number_enc"`
	BalanceCents     int64  `db:"balance_cents"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}
