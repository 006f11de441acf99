package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryTypeValid(t *testing.T) {
	assert.True(t, Deposit.Valid())
	assert.True(t, Disbursement.Valid())
	assert.True(t, TransferIn.Valid())
	assert.True(t, TransferOut.Valid())
	assert.False(t, EntryType("WITHDRAWAL").Valid())
	assert.False(t, EntryType("").Valid())
	assert.False(t, EntryType("deposit").Valid(), "entry types are case sensitive")
}

func TestEntryTypeCredits(t *testing.T) {
	assert.True(t, Deposit.Credits())
	assert.True(t, TransferIn.Credits())
	assert.False(t, Disbursement.Credits())
	assert.False(t, TransferOut.Credits())
}

func TestSignedAmountCents(t *testing.T) {
	deposit := LedgerEntry{EntryType: Deposit, AmountCents: 10_000}
	assert.Equal(t, int64(10_000), deposit.SignedAmountCents())

	disbursement := LedgerEntry{EntryType: Disbursement, AmountCents: 10_000}
	assert.Equal(t, int64(-10_000), disbursement.SignedAmountCents())
}
