package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// --- Client DTOs ---

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	FirmID        string    `json:"firmID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		FirmID:        c.FirmID,
		Name:          c.Name,
		Email:         c.Email,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToListClientsResponse converts a slice of domain.Client to DTO.
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return ListClientsResponse{Clients: res}
}

// --- Matter DTOs ---

// CreateMatterRequest defines the data needed to open a matter for a client.
type CreateMatterRequest struct {
	ClientID string `json:"clientID" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// MatterResponse defines the data returned for a matter.
type MatterResponse struct {
	MatterID      string    `json:"matterID"`
	FirmID        string    `json:"firmID"`
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToMatterResponse converts a domain.Matter to MatterResponse DTO.
func ToMatterResponse(m *domain.Matter) MatterResponse {
	return MatterResponse{
		MatterID:      m.MatterID,
		FirmID:        m.FirmID,
		ClientID:      m.ClientID,
		Name:          m.Name,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ListMattersResponse wraps the list of matters for a client.
type ListMattersResponse struct {
	Matters []MatterResponse `json:"matters"`
}

// ToListMattersResponse converts a slice of domain.Matter to DTO.
func ToListMattersResponse(matters []domain.Matter) ListMattersResponse {
	res := make([]MatterResponse, len(matters))
	for i, m := range matters {
		res[i] = ToMatterResponse(&m)
	}
	return ListMattersResponse{Matters: res}
}
