package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ViolationKind identifies which guideline rule a time entry broke.
type ViolationKind string

const (
	RateCapExceeded      ViolationKind = "RATE_CAP_EXCEEDED"
	DailyHourCapExceeded ViolationKind = "DAILY_HOUR_CAP_EXCEEDED"
	BlockBillingDetected ViolationKind = "BLOCK_BILLING"
	MissingRequiredCode  ViolationKind = "MISSING_REQUIRED_CODE"
	RestrictedCodeUsed   ViolationKind = "RESTRICTED_CODE"
)

// Violation describes one specific guideline rule a time entry violated,
// with enough detail for the user to correct the entry.
type Violation struct {
	Kind        ViolationKind `json:"kind"`
	GuidelineID string        `json:"guidelineID"`
	Detail      string        `json:"detail"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

// Violations aggregates every guideline violation found for one time
// entry. Checks never short-circuit; the caller gets the complete
// correction list in a single error.
type Violations []Violation

func (vs Violations) Error() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Error()
	}
	return "billing guideline violations: " + strings.Join(msgs, "; ")
}

// NewRateCapViolation builds the violation for a rate above the cap.
func NewRateCapViolation(guidelineID string, rateCents, capCents int64) Violation {
	return Violation{
		Kind:        RateCapExceeded,
		GuidelineID: guidelineID,
		Detail:      fmt.Sprintf("rate %d cents/hour exceeds cap of %d cents/hour", rateCents, capCents),
	}
}

// NewDailyHourCapViolation builds the violation for a day total above the cap.
func NewDailyHourCapViolation(guidelineID string, totalHours, capHours decimal.Decimal) Violation {
	return Violation{
		Kind:        DailyHourCapExceeded,
		GuidelineID: guidelineID,
		Detail:      fmt.Sprintf("daily billable total %s hours exceeds cap of %s hours", totalHours.String(), capHours.String()),
	}
}
