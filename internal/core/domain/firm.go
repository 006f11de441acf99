package domain

// UserFirmRole defines the role a user holds within a firm.
type UserFirmRole string

const (
	RoleAdmin    UserFirmRole = "ADMIN"
	RoleMember   UserFirmRole = "MEMBER"
	RoleReadOnly UserFirmRole = "READ_ONLY"
)

// CanActAs reports whether the role satisfies the required role.
// Admin > Member > ReadOnly.
func (r UserFirmRole) CanActAs(required UserFirmRole) bool {
	rank := map[UserFirmRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[r] >= rank[required]
}

// Firm is the tenant boundary: a law practice owning trust accounts,
// clients, matters, guidelines and invoices.
type Firm struct {
	FirmID   string `json:"firmID"` // Primary key (UUID)
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// UserFirm links a user to a firm with a role.
type UserFirm struct {
	UserID string       `json:"userID"`
	FirmID string       `json:"firmID"`
	Role   UserFirmRole `json:"role"`
	AuditFields
}
