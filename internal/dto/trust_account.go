package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// CreateTrustAccountRequest defines the data needed to open a new trust account.
type CreateTrustAccountRequest struct {
	Name          string `json:"name" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	RoutingNumber string `json:"routingNumber" binding:"required"`
}

// UpdateTrustAccountRequest defines the data allowed for updating a trust account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTrustAccountRequest struct {
	Name     *string `json:"name"`     // Optional: New display name
	BankName *string `json:"bankName"` // Optional: New holding institution
}

// TrustAccountResponse defines the data returned for a trust account.
// Encrypted bank details are never exposed.
type TrustAccountResponse struct {
	AccountID     string    `json:"accountID"`
	FirmID        string    `json:"firmID"`
	Name          string    `json:"name"`
	BankName      string    `json:"bankName"`
	BalanceCents  int64     `json:"balanceCents"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToTrustAccountResponse converts a domain.TrustAccount to TrustAccountResponse DTO.
func ToTrustAccountResponse(acc *domain.TrustAccount) TrustAccountResponse {
	return TrustAccountResponse{
		AccountID:     acc.AccountID,
		FirmID:        acc.FirmID,
		Name:          acc.Name,
		BankName:      acc.BankName,
		BalanceCents:  acc.BalanceCents,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ListTrustAccountsParams defines query parameters for listing trust accounts.
type ListTrustAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListTrustAccountsResponse wraps the list of trust accounts.
type ListTrustAccountsResponse struct {
	Accounts []TrustAccountResponse `json:"accounts"`
}

// ToListTrustAccountsResponse converts a slice of domain.TrustAccount to DTO.
func ToListTrustAccountsResponse(accounts []domain.TrustAccount) ListTrustAccountsResponse {
	res := make([]TrustAccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToTrustAccountResponse(&acc)
	}
	return ListTrustAccountsResponse{Accounts: res}
}
