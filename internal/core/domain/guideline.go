package domain

import "github.com/shopspring/decimal"

// CodeType classifies a UTBMS billing code.
type CodeType string

const (
	TaskCode     CodeType = "TASK"
	ActivityCode CodeType = "ACTIVITY"
	ExpenseCode  CodeType = "EXPENSE"
)

// UTBMSCode is a standardized legal e-billing classification code
// attached to a time entry (e.g. L110, A104).
type UTBMSCode struct {
	Code string   `json:"code"`
	Type CodeType `json:"type"`
}

// BillingGuideline is a per-client billing policy. Guidelines are
// referenced read-only at time-entry validation and invoicing time.
type BillingGuideline struct {
	GuidelineID            string           `json:"guidelineID"` // Primary key (UUID)
	FirmID                 string           `json:"firmID"`      // FK -> firms.firm_id
	ClientID               string           `json:"clientID"`    // FK -> clients.client_id
	Name                   string           `json:"name"`
	RateCapCents           *int64           `json:"rateCapCents"` // Max hourly rate, inclusive; nil = uncapped
	DailyHourCap           *decimal.Decimal `json:"dailyHourCap"` // Max billable hours per user per day, inclusive; nil = uncapped
	BlockBillingProhibited bool             `json:"blockBillingProhibited"`
	TaskCodeRequired       bool             `json:"taskCodeRequired"`
	ActivityCodeRequired   bool             `json:"activityCodeRequired"`
	RestrictedCodes        []string         `json:"restrictedCodes"` // UTBMS codes this client refuses to pay
	IsActive               bool             `json:"isActive"`
	AuditFields
}
