package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// guidelineHandler handles HTTP requests related to billing guidelines.
type guidelineHandler struct {
	guidelineService portssvc.GuidelineSvcFacade
}

func newGuidelineHandler(guidelineService portssvc.GuidelineSvcFacade) *guidelineHandler {
	return &guidelineHandler{guidelineService: guidelineService}
}

// registerGuidelineRoutes registers billing guideline routes under a firm.
func registerGuidelineRoutes(firmGroup *gin.RouterGroup, guidelineService portssvc.GuidelineSvcFacade) {
	h := newGuidelineHandler(guidelineService)

	guidelines := firmGroup.Group("/guidelines")
	{
		guidelines.POST("", h.createGuideline)
		guidelines.GET("", h.listGuidelines)
		guidelines.GET("/:guideline_id", h.getGuideline)
		guidelines.PUT("/:guideline_id", h.updateGuideline)
	}
}

// createGuideline godoc
// @Summary Create a billing guideline
// @Description Creates a per-client guideline enforced on new time entries.
// @Tags guidelines
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param guideline body dto.CreateGuidelineRequest true "Guideline"
// @Success 201 {object} dto.GuidelineResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms/{firm_id}/guidelines [post]
func (h *guidelineHandler) createGuideline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.CreateGuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createGuideline", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	guideline, err := h.guidelineService.CreateGuideline(c.Request.Context(), firmID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Guideline created", slog.String("guideline_id", guideline.GuidelineID))
	c.JSON(http.StatusCreated, dto.ToGuidelineResponse(guideline))
}

// listGuidelines godoc
// @Summary List a firm's billing guidelines
// @Tags guidelines
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Success 200 {object} dto.ListGuidelinesResponse
// @Router /firms/{firm_id}/guidelines [get]
func (h *guidelineHandler) listGuidelines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	guidelines, err := h.guidelineService.ListGuidelines(c.Request.Context(), firmID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListGuidelinesResponse(guidelines))
}

// getGuideline godoc
// @Summary Get a billing guideline by ID
// @Tags guidelines
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param guideline_id path string true "Guideline ID"
// @Success 200 {object} dto.GuidelineResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/guidelines/{guideline_id} [get]
func (h *guidelineHandler) getGuideline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	guidelineID := c.Param("guideline_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	guideline, err := h.guidelineService.GetGuidelineByID(c.Request.Context(), firmID, guidelineID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGuidelineResponse(guideline))
}

// updateGuideline godoc
// @Summary Update a billing guideline
// @Description Changes apply only to time entries validated after the update.
// @Tags guidelines
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param guideline_id path string true "Guideline ID"
// @Param guideline body dto.UpdateGuidelineRequest true "Fields to update"
// @Success 200 {object} dto.GuidelineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/guidelines/{guideline_id} [put]
func (h *guidelineHandler) updateGuideline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	guidelineID := c.Param("guideline_id")

	var req dto.UpdateGuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateGuideline", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	guideline, err := h.guidelineService.UpdateGuideline(c.Request.Context(), firmID, guidelineID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Guideline updated", slog.String("guideline_id", guidelineID))
	c.JSON(http.StatusOK, dto.ToGuidelineResponse(guideline))
}
