package models

// User is the persistence representation of a user row.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// Firm is the persistence representation of a firm row.
type Firm struct {
	FirmID   string `db:"firm_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// UserFirm links users to firms with a role.
type UserFirm struct {
	UserID string `db:"user_id"`
	FirmID string `db:"firm_id"`
	Role   string `db:"role"`
	AuditFields
}

// Client is the persistence representation of a client row.
type Client struct {
	ClientID string `db:"client_id"`
	FirmID   string `db:"firm_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// Matter is the persistence representation of a matter row.
type Matter struct {
	MatterID string `db:"matter_id"`
	FirmID   string `db:"firm_id"`
	ClientID string `db:"client_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
