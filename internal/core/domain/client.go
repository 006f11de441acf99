package domain

// Client is a party the firm represents. The core validates that
// referenced clients exist but their broader lifecycle (intake, contacts)
// lives outside this service.
type Client struct {
	ClientID string `json:"clientID"` // Primary key (UUID)
	FirmID   string `json:"firmID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Matter is a distinct engagement for one client.
type Matter struct {
	MatterID string `json:"matterID"` // Primary key (UUID)
	FirmID   string `json:"firmID"`
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
