package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/core/ports/events"
	portsrepo "github.com/praxisledger/trustd/internal/core/ports/repositories"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// timeEntryService records billable work and gates it through the client's
// billing guidelines before persistence.
type timeEntryService struct {
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	guidelineSvc  portssvc.GuidelineEnforcerSvc
	clientSvc     portssvc.ClientSvcFacade
	firmSvc       portssvc.FirmAuthorizerSvc
	publisher     events.Publisher
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	guidelineSvc portssvc.GuidelineEnforcerSvc,
	clientSvc portssvc.ClientSvcFacade,
	firmSvc portssvc.FirmAuthorizerSvc,
	publisher events.Publisher,
) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{
		timeEntryRepo: timeEntryRepo,
		guidelineSvc:  guidelineSvc,
		clientSvc:     clientSvc,
		firmSvc:       firmSvc,
		publisher:     publisher,
	}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// CreateTimeEntry validates the entry against the client's guidelines and
// persists it. Violations reject the entry unless the request carries an
// admin override, which is recorded on the entry and published as an audit
// event.
func (s *timeEntryService) CreateTimeEntry(ctx context.Context, firmID string, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", apperrors.ErrValidation)
	}
	if req.Billable && req.RateCents <= 0 {
		return nil, fmt.Errorf("%w: billable entries require a positive hourly rate", apperrors.ErrValidation)
	}

	matter, err := s.clientSvc.GetMatterByID(ctx, firmID, req.MatterID, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !matter.IsActive {
		return nil, fmt.Errorf("%w: matter %s is inactive", apperrors.ErrValidation, req.MatterID)
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		TimeEntryID:     uuid.NewString(),
		FirmID:          firmID,
		MatterID:        matter.MatterID,
		ClientID:        matter.ClientID,
		UserID:          creatorUserID,
		EntryDate:       req.EntryDate,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Billable:        req.Billable,
		RateCents:       req.RateCents,
		Codes:           req.ToDomainCodes(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	violations, err := s.guidelineSvc.CheckTimeEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	if len(violations) > 0 {
		if !req.Override {
			logger.Info("Time entry rejected by billing guidelines",
				slog.String("matter_id", matter.MatterID),
				slog.Int("violation_count", len(violations)),
			)
			return nil, violations
		}

		// Overrides are an admin-only escape hatch and must be explained.
		if err := s.firmSvc.AuthorizeUserAction(ctx, creatorUserID, firmID, domain.RoleAdmin); err != nil {
			return nil, fmt.Errorf("%w: guideline override requires admin role", apperrors.ErrForbidden)
		}
		if req.OverrideNote == "" {
			return nil, fmt.Errorf("%w: an override note is required", apperrors.ErrValidation)
		}
		entry.OverriddenBy = &creatorUserID
		note := req.OverrideNote
		entry.OverrideNote = &note
	}

	if err := s.timeEntryRepo.SaveTimeEntry(ctx, entry); err != nil {
		logger.Error("Failed to save time entry", slog.String("error", err.Error()), slog.String("matter_id", matter.MatterID))
		return nil, fmt.Errorf("failed to save time entry: %w", err)
	}

	logger.Info("Time entry recorded",
		slog.String("time_entry_id", entry.TimeEntryID),
		slog.String("matter_id", matter.MatterID),
		slog.Bool("overridden", entry.OverriddenBy != nil),
	)

	if entry.OverriddenBy != nil && s.publisher != nil {
		event := events.AuditEvent{
			EventID:    uuid.NewString(),
			EventType:  events.EventGuidelineOverridden,
			FirmID:     firmID,
			EntityID:   entry.TimeEntryID,
			ActorID:    creatorUserID,
			OccurredAt: now,
			Detail:     fmt.Sprintf("%d guideline violation(s) overridden: %s", len(violations), req.OverrideNote),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Error("Failed to publish override audit event", slog.String("error", err.Error()), slog.String("time_entry_id", entry.TimeEntryID))
		}
	}

	return &entry, nil
}

// GetTimeEntryByID retrieves a time entry, scoped to the firm.
func (s *timeEntryService) GetTimeEntryByID(ctx context.Context, firmID string, timeEntryID string, userID string) (*domain.TimeEntry, error) {
	if err := s.firmSvc.AuthorizeUserAction(ctx, userID, firmID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find time entry %s: %w", timeEntryID, err)
	}
	if entry.FirmID != firmID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListTimeEntriesByMatter retrieves a paginated list of entries for a matter.
func (s *timeEntryService) ListTimeEntriesByMatter(ctx context.Context, firmID string, matterID string, userID string, params dto.ListTimeEntriesParams) (*dto.ListTimeEntriesResponse, error) {
	// Matter lookup also authorizes the user and confirms firm scope.
	if _, err := s.clientSvc.GetMatterByID(ctx, firmID, matterID, userID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, nextToken, err := s.timeEntryRepo.ListTimeEntriesByMatter(ctx, matterID, limit, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	next := ""
	if nextToken != nil {
		next = *nextToken
	}
	resp := dto.ToListTimeEntriesResponse(entries, next)
	return &resp, nil
}
