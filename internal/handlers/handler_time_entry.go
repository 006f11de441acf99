package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisledger/trustd/internal/core/domain"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// timeEntryHandler handles HTTP requests related to time entries.
type timeEntryHandler struct {
	timeEntryService portssvc.TimeEntrySvcFacade
	guidelineService portssvc.GuidelineSvcFacade
	clientService    portssvc.ClientSvcFacade
}

func newTimeEntryHandler(
	timeEntryService portssvc.TimeEntrySvcFacade,
	guidelineService portssvc.GuidelineSvcFacade,
	clientService portssvc.ClientSvcFacade,
) *timeEntryHandler {
	return &timeEntryHandler{
		timeEntryService: timeEntryService,
		guidelineService: guidelineService,
		clientService:    clientService,
	}
}

// registerTimeEntryRoutes registers time entry routes under a firm.
func registerTimeEntryRoutes(
	firmGroup *gin.RouterGroup,
	timeEntryService portssvc.TimeEntrySvcFacade,
	guidelineService portssvc.GuidelineSvcFacade,
	clientService portssvc.ClientSvcFacade,
) {
	h := newTimeEntryHandler(timeEntryService, guidelineService, clientService)

	entries := firmGroup.Group("/time-entries")
	{
		entries.POST("", h.createTimeEntry)
		entries.POST("/check", h.checkTimeEntry)
		entries.GET("/:time_entry_id", h.getTimeEntry)
	}

	firmGroup.GET("/matters/:matter_id/time-entries", h.listTimeEntriesByMatter)
}

// createTimeEntry godoc
// @Summary Record a time entry
// @Description Validates the entry against the client's billing guidelines before saving. Violations reject the entry unless an admin override is supplied.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param entry body dto.CreateTimeEntryRequest true "Time Entry"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} ViolationErrorResponse "Guideline violations"
// @Failure 403 {object} ErrorResponse "Override without admin role"
// @Router /firms/{firm_id}/time-entries [post]
func (h *timeEntryHandler) createTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.timeEntryService.CreateTimeEntry(c.Request.Context(), firmID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Time entry created", slog.String("time_entry_id", entry.TimeEntryID))
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// checkTimeEntry godoc
// @Summary Check a time entry against billing guidelines without saving it
// @Description Dry-run compliance check. Returns every violation the entry would trigger.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param entry body dto.CreateTimeEntryRequest true "Time Entry"
// @Success 200 {object} dto.CheckTimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms/{firm_id}/time-entries/check [post]
func (h *timeEntryHandler) checkTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for checkTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// Resolving the matter also enforces firm scoping.
	matter, err := h.clientService.GetMatterByID(c.Request.Context(), firmID, req.MatterID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	candidate := domain.TimeEntry{
		FirmID:          firmID,
		MatterID:        matter.MatterID,
		ClientID:        matter.ClientID,
		UserID:          userID,
		EntryDate:       req.EntryDate,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Billable:        req.Billable,
		RateCents:       req.RateCents,
		Codes:           req.ToDomainCodes(),
	}

	violations, err := h.guidelineService.CheckTimeEntry(c.Request.Context(), candidate)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckTimeEntryResponse{
		Compliant:  len(violations) == 0,
		Violations: dto.ToViolationResponses(violations),
	})
}

// getTimeEntry godoc
// @Summary Get a time entry by ID
// @Tags time-entries
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param time_entry_id path string true "Time Entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/time-entries/{time_entry_id} [get]
func (h *timeEntryHandler) getTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	timeEntryID := c.Param("time_entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.timeEntryService.GetTimeEntryByID(c.Request.Context(), firmID, timeEntryID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// listTimeEntriesByMatter godoc
// @Summary List a matter's time entries
// @Description Returns entries newest first with token-based pagination.
// @Tags time-entries
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param matter_id path string true "Matter ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Router /firms/{firm_id}/matters/{matter_id}/time-entries [get]
func (h *timeEntryHandler) listTimeEntriesByMatter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	matterID := c.Param("matter_id")

	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, err := h.timeEntryService.ListTimeEntriesByMatter(c.Request.Context(), firmID, matterID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
