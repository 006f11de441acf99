package accounting

import (
	"fmt"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmountCents applies the correct sign to a positive entry magnitude
// based on the entry type. Deposits and incoming transfers increase the
// account balance; disbursements and outgoing transfers decrease it.
// This is used in both services and repositories so the ledger math is
// computed identically everywhere.
func SignedAmountCents(entryType domain.EntryType, amountCents int64) (int64, error) {
	if !entryType.Valid() {
		return 0, fmt.Errorf("unknown entry type '%s'", entryType)
	}
	if entryType.Credits() {
		return amountCents, nil
	}
	return -amountCents, nil
}

// LineItemAmountCents prorates an hourly rate over a duration in minutes,
// rounding half-up to whole cents.
func LineItemAmountCents(rateCents int64, durationMinutes int64) int64 {
	amount := decimal.NewFromInt(rateCents).
		Mul(decimal.NewFromInt(durationMinutes)).
		Div(decimal.NewFromInt(60))
	return amount.Round(0).IntPart()
}

// TaxCents applies a fractional tax rate (e.g. 0.0825) to a subtotal,
// rounding half-up to whole cents.
func TaxCents(subtotalCents int64, taxRate decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotalCents).Mul(taxRate).Round(0).IntPart()
}

// MinutesToHours converts a duration in minutes to fractional hours.
func MinutesToHours(minutes int64) decimal.Decimal {
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))
}
