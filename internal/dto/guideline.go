package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGuidelineRequest defines the data needed to create a billing guideline.
type CreateGuidelineRequest struct {
	ClientID               string           `json:"clientID" binding:"required"`
	Name                   string           `json:"name" binding:"required"`
	RateCapCents           *int64           `json:"rateCapCents" binding:"omitempty,gt=0"`
	DailyHourCap           *decimal.Decimal `json:"dailyHourCap"`
	BlockBillingProhibited bool             `json:"blockBillingProhibited"`
	TaskCodeRequired       bool             `json:"taskCodeRequired"`
	ActivityCodeRequired   bool             `json:"activityCodeRequired"`
	RestrictedCodes        []string         `json:"restrictedCodes"`
}

// UpdateGuidelineRequest defines the data allowed for updating a guideline.
type UpdateGuidelineRequest struct {
	Name                   *string          `json:"name"`
	RateCapCents           *int64           `json:"rateCapCents"`
	DailyHourCap           *decimal.Decimal `json:"dailyHourCap"`
	BlockBillingProhibited *bool            `json:"blockBillingProhibited"`
	TaskCodeRequired       *bool            `json:"taskCodeRequired"`
	ActivityCodeRequired   *bool            `json:"activityCodeRequired"`
	RestrictedCodes        []string         `json:"restrictedCodes"`
	IsActive               *bool            `json:"isActive"`
}

// GuidelineResponse defines the data returned for a billing guideline.
type GuidelineResponse struct {
	GuidelineID            string           `json:"guidelineID"`
	FirmID                 string           `json:"firmID"`
	ClientID               string           `json:"clientID"`
	Name                   string           `json:"name"`
	RateCapCents           *int64           `json:"rateCapCents,omitempty"`
	DailyHourCap           *decimal.Decimal `json:"dailyHourCap,omitempty"`
	BlockBillingProhibited bool             `json:"blockBillingProhibited"`
	TaskCodeRequired       bool             `json:"taskCodeRequired"`
	ActivityCodeRequired   bool             `json:"activityCodeRequired"`
	RestrictedCodes        []string         `json:"restrictedCodes"`
	IsActive               bool             `json:"isActive"`
	CreatedAt              time.Time        `json:"createdAt"`
	CreatedBy              string           `json:"createdBy"`
	LastUpdatedAt          time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy          string           `json:"lastUpdatedBy"`
}

// ToGuidelineResponse converts a domain.BillingGuideline to GuidelineResponse DTO.
func ToGuidelineResponse(g *domain.BillingGuideline) GuidelineResponse {
	return GuidelineResponse{
		GuidelineID:            g.GuidelineID,
		FirmID:                 g.FirmID,
		ClientID:               g.ClientID,
		Name:                   g.Name,
		RateCapCents:           g.RateCapCents,
		DailyHourCap:           g.DailyHourCap,
		BlockBillingProhibited: g.BlockBillingProhibited,
		TaskCodeRequired:       g.TaskCodeRequired,
		ActivityCodeRequired:   g.ActivityCodeRequired,
		RestrictedCodes:        g.RestrictedCodes,
		IsActive:               g.IsActive,
		CreatedAt:              g.CreatedAt,
		CreatedBy:              g.CreatedBy,
		LastUpdatedAt:          g.LastUpdatedAt,
		LastUpdatedBy:          g.LastUpdatedBy,
	}
}

// ListGuidelinesResponse wraps the list of billing guidelines.
type ListGuidelinesResponse struct {
	Guidelines []GuidelineResponse `json:"guidelines"`
}

// ToListGuidelinesResponse converts a slice of domain.BillingGuideline to DTO.
func ToListGuidelinesResponse(gs []domain.BillingGuideline) ListGuidelinesResponse {
	res := make([]GuidelineResponse, len(gs))
	for i, g := range gs {
		res[i] = ToGuidelineResponse(&g)
	}
	return ListGuidelinesResponse{Guidelines: res}
}

// ViolationResponse defines the data returned for a single guideline violation.
type ViolationResponse struct {
	Kind        string `json:"kind"`
	GuidelineID string `json:"guidelineID"`
	Detail      string `json:"detail"`
}

// ToViolationResponses converts domain.Violations to DTO.
func ToViolationResponses(vs domain.Violations) []ViolationResponse {
	res := make([]ViolationResponse, len(vs))
	for i, v := range vs {
		res[i] = ViolationResponse{
			Kind:        string(v.Kind),
			GuidelineID: v.GuidelineID,
			Detail:      v.Detail,
		}
	}
	return res
}
