package dto

import (
	"time"

	"github.com/praxisledger/trustd/internal/core/domain"
)

// UTBMSCodeDTO carries one billing code on a time entry.
type UTBMSCodeDTO struct {
	Code string `json:"code" binding:"required"`
	Type string `json:"type" binding:"required,oneof=TASK ACTIVITY EXPENSE"`
}

// CreateTimeEntryRequest defines the data needed to record a time entry.
type CreateTimeEntryRequest struct {
	MatterID        string         `json:"matterID" binding:"required"`
	EntryDate       time.Time      `json:"entryDate" binding:"required"`
	DurationMinutes int64          `json:"durationMinutes" binding:"required,gt=0"`
	Description     string         `json:"description" binding:"required"`
	Billable        bool           `json:"billable"`
	RateCents       int64          `json:"rateCents" binding:"omitempty,gte=0"`
	Codes           []UTBMSCodeDTO `json:"codes"`
	// Override force-saves the entry despite guideline violations.
	// Admin role only; OverrideNote is required when Override is set.
	Override     bool   `json:"override"`
	OverrideNote string `json:"overrideNote"`
}

// ToDomainCodes converts the request codes to domain.UTBMSCode values.
func (r CreateTimeEntryRequest) ToDomainCodes() []domain.UTBMSCode {
	if len(r.Codes) == 0 {
		return nil
	}
	codes := make([]domain.UTBMSCode, len(r.Codes))
	for i, c := range r.Codes {
		codes[i] = domain.UTBMSCode{Code: c.Code, Type: domain.CodeType(c.Type)}
	}
	return codes
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	TimeEntryID     string         `json:"timeEntryID"`
	FirmID          string         `json:"firmID"`
	MatterID        string         `json:"matterID"`
	ClientID        string         `json:"clientID"`
	UserID          string         `json:"userID"`
	EntryDate       time.Time      `json:"entryDate"`
	DurationMinutes int64          `json:"durationMinutes"`
	Description     string         `json:"description"`
	Billable        bool           `json:"billable"`
	RateCents       int64          `json:"rateCents"`
	Codes           []UTBMSCodeDTO `json:"codes"`
	InvoiceID       *string        `json:"invoiceID,omitempty"`
	OverriddenBy    *string        `json:"overriddenBy,omitempty"`
	OverrideNote    *string        `json:"overrideNote,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	CreatedBy       string         `json:"createdBy"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to TimeEntryResponse DTO.
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	codes := make([]UTBMSCodeDTO, len(e.Codes))
	for i, c := range e.Codes {
		codes[i] = UTBMSCodeDTO{Code: c.Code, Type: string(c.Type)}
	}
	return TimeEntryResponse{
		TimeEntryID:     e.TimeEntryID,
		FirmID:          e.FirmID,
		MatterID:        e.MatterID,
		ClientID:        e.ClientID,
		UserID:          e.UserID,
		EntryDate:       e.EntryDate,
		DurationMinutes: e.DurationMinutes,
		Description:     e.Description,
		Billable:        e.Billable,
		RateCents:       e.RateCents,
		Codes:           codes,
		InvoiceID:       e.InvoiceID,
		OverriddenBy:    e.OverriddenBy,
		OverrideNote:    e.OverrideNote,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ListTimeEntriesParams defines query parameters for listing time entries.
type ListTimeEntriesParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListTimeEntriesResponse wraps a page of time entries.
type ListTimeEntriesResponse struct {
	Entries   []TimeEntryResponse `json:"entries"`
	NextToken string              `json:"nextToken,omitempty"`
}

// ToListTimeEntriesResponse converts a page of domain entries plus its
// continuation token to DTO.
func ToListTimeEntriesResponse(entries []domain.TimeEntry, nextToken string) ListTimeEntriesResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToTimeEntryResponse(&e)
	}
	return ListTimeEntriesResponse{Entries: res, NextToken: nextToken}
}

// CheckTimeEntryResponse reports the outcome of a guideline compliance check
// without persisting anything.
type CheckTimeEntryResponse struct {
	Compliant  bool                `json:"compliant"`
	Violations []ViolationResponse `json:"violations"`
}
