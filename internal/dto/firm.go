package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// --- Firm DTOs ---

// CreateFirmRequest defines data for creating a new firm.
type CreateFirmRequest struct {
	Name string `json:"name" binding:"required"`
}

// FirmResponse defines data returned for a firm.
type FirmResponse struct {
	FirmID        string    `json:"firmID"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ToFirmResponse converts domain.Firm to DTO.
func ToFirmResponse(f *domain.Firm) FirmResponse {
	return FirmResponse{
		FirmID:        f.FirmID,
		Name:          f.Name,
		IsActive:      f.IsActive,
		CreatedAt:     f.CreatedAt,
		CreatedBy:     f.CreatedBy,
		LastUpdatedAt: f.LastUpdatedAt,
		LastUpdatedBy: f.LastUpdatedBy,
	}
}

// --- Firm Membership DTOs ---

// AddUserToFirmRequest defines data for adding a user to a firm.
type AddUserToFirmRequest struct {
	UserID string              `json:"userID" binding:"required"`
	Role   domain.UserFirmRole `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

// UserFirmResponse defines data returned about a user's firm membership.
type UserFirmResponse struct {
	UserID   string              `json:"userID"`
	FirmID   string              `json:"firmID"`
	Role     domain.UserFirmRole `json:"role"`
	JoinedAt time.Time           `json:"joinedAt"`
}

// ToUserFirmResponse converts domain.UserFirm to DTO.
func ToUserFirmResponse(uf *domain.UserFirm) UserFirmResponse {
	return UserFirmResponse{
		UserID:   uf.UserID,
		FirmID:   uf.FirmID,
		Role:     uf.Role,
		JoinedAt: uf.CreatedAt,
	}
}

// ListFirmUsersResponse wraps the memberships of a firm.
type ListFirmUsersResponse struct {
	Users []UserFirmResponse `json:"users"`
}

// ToListFirmUsersResponse converts a slice of domain.UserFirm to DTO.
func ToListFirmUsersResponse(ufs []domain.UserFirm) ListFirmUsersResponse {
	list := make([]UserFirmResponse, len(ufs))
	for i, uf := range ufs {
		list[i] = ToUserFirmResponse(&uf)
	}
	return ListFirmUsersResponse{Users: list}
}
