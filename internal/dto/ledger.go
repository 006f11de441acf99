package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// CreateLedgerEntryRequest defines the data needed to append a ledger entry.
// Amounts are always submitted as positive magnitudes; the entry type
// determines the balance direction.
type CreateLedgerEntryRequest struct {
	ClientID        string    `json:"clientID" binding:"required"`
	MatterID        *string   `json:"matterID"` // Optional
	EntryType       string    `json:"entryType" binding:"required,oneof=DEPOSIT DISBURSEMENT TRANSFER_IN TRANSFER_OUT"`
	AmountCents     int64     `json:"amountCents" binding:"required,gt=0"`
	Description     string    `json:"description" binding:"required"`
	ReferenceNumber *string   `json:"referenceNumber"` // Optional check no. or wire ID
	EntryDate       time.Time `json:"entryDate" binding:"required"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID             string    `json:"entryID"`
	AccountID           string    `json:"accountID"`
	ClientID            string    `json:"clientID"`
	MatterID            *string   `json:"matterID,omitempty"`
	EntryType           string    `json:"entryType"`
	AmountCents         int64     `json:"amountCents"`
	RunningBalanceCents int64     `json:"runningBalanceCents"`
	Description         string    `json:"description"`
	ReferenceNumber     *string   `json:"referenceNumber,omitempty"`
	EntryDate           time.Time `json:"entryDate"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:             e.EntryID,
		AccountID:           e.AccountID,
		ClientID:            e.ClientID,
		MatterID:            e.MatterID,
		EntryType:           string(e.EntryType),
		AmountCents:         e.AmountCents,
		RunningBalanceCents: e.RunningBalanceCents,
		Description:         e.Description,
		ReferenceNumber:     e.ReferenceNumber,
		EntryDate:           e.EntryDate,
		CreatedAt:           e.CreatedAt,
		CreatedBy:           e.CreatedBy,
	}
}

// ListLedgerEntriesParams defines query parameters for listing ledger entries.
// Pagination is token based: pass the nextToken from the previous page.
type ListLedgerEntriesParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListLedgerEntriesResponse wraps a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken string                `json:"nextToken,omitempty"`
}

// ToListLedgerEntriesResponse converts a page of domain entries plus its
// continuation token to DTO.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry, nextToken string) ListLedgerEntriesResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(&e)
	}
	return ListLedgerEntriesResponse{Entries: res, NextToken: nextToken}
}

// LedgerBalanceResponse defines the data returned for an as-of-date balance query.
type LedgerBalanceResponse struct {
	AccountID    string    `json:"accountID"`
	AsOf         time.Time `json:"asOf"`
	BalanceCents int64     `json:"balanceCents"`
}
