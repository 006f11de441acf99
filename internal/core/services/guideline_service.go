package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// blockBillingSegmentThreshold is the number of distinct semicolon-separated
// description segments at which an entry is treated as block billed.
const blockBillingSegmentThreshold = 3

// guidelineService manages per-client billing guidelines and evaluates time
// entries against them. Evaluation never short-circuits: a non-compliant
// entry yields the full list of violations across every active guideline.
type guidelineService struct {
	guidelineRepo portsrepo.GuidelineRepositoryFacade
	timeEntryRepo portsrepo.TimeEntryReader
	clientSvc     portssvc.ClientSvcFacade
	firmSvc       portssvc.FirmAuthorizerSvc
}

// NewGuidelineService creates a new GuidelineService.
func NewGuidelineService(
	guidelineRepo portsrepo.GuidelineRepositoryFacade,
	timeEntryRepo portsrepo.TimeEntryReader,
	clientSvc portssvc.ClientSvcFacade,
	firmSvc portssvc.FirmAuthorizerSvc,
) portssvc.GuidelineSvcFacade {
	return &guidelineService{
		guidelineRepo: guidelineRepo,
		timeEntryRepo: timeEntryRepo,
		clientSvc:     clientSvc,
		firmSvc:       firmSvc,
	}
}

var _ portssvc.GuidelineSvcFacade = (*guidelineService)(nil)

// CreateGuideline persists a new per-client guideline.
func (s *guidelineService) CreateGuideline(ctx context.Context, firmID string, req dto.CreateGuidelineRequest, creatorUserID string) (*domain.BillingGuideline, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	// Client must exist and belong to this firm.
	if _, err := s.clientSvc.GetClientByID(ctx, firmID, req.ClientID, creatorUserID); err != nil {
		return nil, err
	}

	if req.RateCapCents != nil && *req.RateCapCents <= 0 {
		return nil, fmt.Errorf("%w: rate cap must be positive", apperrors.ErrValidation)
	}
	if req.DailyHourCap != nil && req.DailyHourCap.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: daily hour cap must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	guideline := domain.BillingGuideline{
		GuidelineID:            uuid.NewString(),
		FirmID:                 firmID,
		ClientID:               req.ClientID,
		Name:                   req.Name,
		RateCapCents:           req.RateCapCents,
		DailyHourCap:           req.DailyHourCap,
		BlockBillingProhibited: req.BlockBillingProhibited,
		TaskCodeRequired:       req.TaskCodeRequired,
		ActivityCodeRequired:   req.ActivityCodeRequired,
		RestrictedCodes:        req.RestrictedCodes,
		IsActive:               true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.guidelineRepo.SaveGuideline(ctx, guideline); err != nil {
		logger.Error("Failed to save guideline", slog.String("error", err.Error()), slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to save guideline: %w", err)
	}

	logger.Info("Billing guideline created", slog.String("guideline_id", guideline.GuidelineID), slog.String("client_id", req.ClientID))
	return &guideline, nil
}

// UpdateGuideline updates an existing guideline. The change applies only to
// time entries validated after the update; past evaluations stand.
func (s *guidelineService) UpdateGuideline(ctx context.Context, firmID string, guidelineID string, req dto.UpdateGuidelineRequest, userID string) (*domain.BillingGuideline, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	guideline, err := s.guidelineRepo.FindGuidelineByID(ctx, guidelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find guideline %s: %w", guidelineID, err)
	}
	if guideline.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		guideline.Name = *req.Name
	}
	if req.RateCapCents != nil {
		if *req.RateCapCents <= 0 {
			return nil, fmt.Errorf("%w: rate cap must be positive", apperrors.ErrValidation)
		}
		guideline.RateCapCents = req.RateCapCents
	}
	if req.DailyHourCap != nil {
		if req.DailyHourCap.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: daily hour cap must be positive", apperrors.ErrValidation)
		}
		guideline.DailyHourCap = req.DailyHourCap
	}
	if req.BlockBillingProhibited != nil {
		guideline.BlockBillingProhibited = *req.BlockBillingProhibited
	}
	if req.TaskCodeRequired != nil {
		guideline.TaskCodeRequired = *req.TaskCodeRequired
	}
	if req.ActivityCodeRequired != nil {
		guideline.ActivityCodeRequired = *req.ActivityCodeRequired
	}
	if req.RestrictedCodes != nil {
		guideline.RestrictedCodes = req.RestrictedCodes
	}
	if req.IsActive != nil {
		guideline.IsActive = *req.IsActive
	}
	guideline.LastUpdatedAt = time.Now().UTC()
	guideline.LastUpdatedBy = userID

	if err := s.guidelineRepo.UpdateGuideline(ctx, *guideline); err != nil {
		logger.Error("Failed to update guideline", slog.String("error", err.Error()), slog.String("guideline_id", guidelineID))
		return nil, fmt.Errorf("failed to update guideline: %w", err)
	}

	return guideline, nil
}

// GetGuidelineByID retrieves a guideline, scoped to the firm.
func (s *guidelineService) GetGuidelineByID(ctx context.Context, firmID string, guidelineID string, userID string) (*domain.BillingGuideline, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	guideline, err := s.guidelineRepo.FindGuidelineByID(ctx, guidelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find guideline %s: %w", guidelineID, err)
	}
	if guideline.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}
	return guideline, nil
}

// ListGuidelines retrieves all guidelines for a firm.
func (s *guidelineService) ListGuidelines(ctx context.Context, firmID string, userID string) ([]domain.BillingGuideline, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	guidelines, err := s.guidelineRepo.ListGuidelinesByFirm(ctx, firmID, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list guidelines: %w", err)
	}
	return guidelines, nil
}

// CheckTimeEntry evaluates a billable time entry against every active
// guideline of its client. All rules are evaluated against all guidelines
// before returning; the caller receives the complete correction list.
// A nil Violations result means the entry is compliant.
func (s *guidelineService) CheckTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.Violations, error) {
	if !entry.Billable {
		// Non-billable work is outside guideline scope.
		return nil, nil
	}

	guidelines, err := s.guidelineRepo.ListActiveGuidelinesByClient(ctx, entry.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guidelines for client %s: %w", entry.ClientID, err)
	}
	if len(guidelines) == 0 {
		return nil, nil
	}

	// The day total is needed only when some guideline caps daily hours.
	var priorMinutes int64 = -1
	needDayTotal := false
	for _, g := range guidelines {
		if g.DailyHourCap != nil {
			needDayTotal = true
			break
		}
	}
	if needDayTotal {
		priorMinutes, err = s.timeEntryRepo.SumBillableMinutesForUserDate(ctx, entry.FirmID, entry.UserID, entry.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("failed to sum billable minutes for daily cap check: %w", err)
		}
	}

	var violations domain.Violations
	for _, g := range guidelines {
		violations = append(violations, s.checkAgainstGuideline(entry, g, priorMinutes)...)
	}
	return violations, nil
}

// checkAgainstGuideline evaluates every rule of one guideline. Caps are
// inclusive: a value exactly at the cap is compliant.
func (s *guidelineService) checkAgainstGuideline(entry domain.TimeEntry, g domain.BillingGuideline, priorMinutes int64) domain.Violations {
	var violations domain.Violations

	if g.RateCapCents != nil && entry.RateCents > *g.RateCapCents {
		violations = append(violations, domain.NewRateCapViolation(g.GuidelineID, entry.RateCents, *g.RateCapCents))
	}

	if g.DailyHourCap != nil {
		totalMinutes := priorMinutes + entry.DurationMinutes
		totalHours := decimal.NewFromInt(totalMinutes).Div(decimal.NewFromInt(60))
		if totalHours.GreaterThan(*g.DailyHourCap) {
			violations = append(violations, domain.NewDailyHourCapViolation(g.GuidelineID, totalHours, *g.DailyHourCap))
		}
	}

	if g.BlockBillingProhibited && isBlockBilled(entry) {
		violations = append(violations, domain.Violation{
			Kind:        domain.BlockBillingDetected,
			GuidelineID: g.GuidelineID,
			Detail:      "entry combines multiple discrete activities; bill each activity separately",
		})
	}

	if g.TaskCodeRequired && len(entry.CodesOfType(domain.TaskCode)) == 0 {
		violations = append(violations, domain.Violation{
			Kind:        domain.MissingRequiredCode,
			GuidelineID: g.GuidelineID,
			Detail:      "a UTBMS task code is required",
		})
	}
	if g.ActivityCodeRequired && len(entry.CodesOfType(domain.ActivityCode)) == 0 {
		violations = append(violations, domain.Violation{
			Kind:        domain.MissingRequiredCode,
			GuidelineID: g.GuidelineID,
			Detail:      "a UTBMS activity code is required",
		})
	}

	if len(g.RestrictedCodes) > 0 {
		restricted := make(map[string]bool, len(g.RestrictedCodes))
		for _, code := range g.RestrictedCodes {
			restricted[strings.ToUpper(code)] = true
		}
		for _, c := range entry.Codes {
			if restricted[strings.ToUpper(c.Code)] {
				violations = append(violations, domain.Violation{
					Kind:        domain.RestrictedCodeUsed,
					GuidelineID: g.GuidelineID,
					Detail:      fmt.Sprintf("code %s is not payable under this client's guidelines", c.Code),
				})
			}
		}
	}

	return violations
}

// isBlockBilled reports whether an entry lumps multiple discrete activities
// into one line. Two signals are used: more than one distinct task code on
// the entry, or a description listing blockBillingSegmentThreshold or more
// semicolon-separated segments.
func isBlockBilled(entry domain.TimeEntry) bool {
	taskCodes := make(map[string]bool)
	for _, c := range entry.CodesOfType(domain.TaskCode) {
		taskCodes[strings.ToUpper(c.Code)] = true
	}
	if len(taskCodes) > 1 {
		return true
	}

	segments := 0
	for _, part := range strings.Split(entry.Description, ";") {
		if strings.TrimSpace(part) != "" {
			segments++
		}
	}
	return segments >= blockBillingSegmentThreshold
}
