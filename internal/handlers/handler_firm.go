package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// firmHandler handles HTTP requests related to firms and their memberships.
type firmHandler struct {
	firmService portssvc.FirmSvcFacade
}

func newFirmHandler(firmService portssvc.FirmSvcFacade) *firmHandler {
	return &firmHandler{firmService: firmService}
}

// registerFirmRoutes registers firm and membership routes.
func registerFirmRoutes(group *gin.RouterGroup, firmService portssvc.FirmSvcFacade) {
	h := newFirmHandler(firmService)

	firms := group.Group("/firms")
	{
		firms.POST("", h.createFirm)
		firms.GET("/:firm_id", h.getFirm)
		firms.GET("/:firm_id/users", h.listFirmUsers)
		firms.POST("/:firm_id/users", h.addUserToFirm)
	}
}

// createFirm godoc
// @Summary Create a firm
// @Description Creates a firm with the caller as its first admin.
// @Tags firms
// @Accept json
// @Produce json
// @Param firm body dto.CreateFirmRequest true "Firm"
// @Success 201 {object} dto.FirmResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms [post]
func (h *firmHandler) createFirm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFirm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	firm, err := h.firmService.CreateFirm(c.Request.Context(), req.Name, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Firm created", slog.String("firm_id", firm.FirmID))
	c.JSON(http.StatusCreated, dto.ToFirmResponse(firm))
}

// getFirm godoc
// @Summary Get a firm by ID
// @Tags firms
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Success 200 {object} dto.FirmResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id} [get]
func (h *firmHandler) getFirm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	firm, err := h.firmService.FindFirmByID(c.Request.Context(), firmID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFirmResponse(firm))
}

// listFirmUsers godoc
// @Summary List a firm's members and roles
// @Tags firms
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Success 200 {object} dto.ListFirmUsersResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/users [get]
func (h *firmHandler) listFirmUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	memberships, err := h.firmService.ListFirmUsers(c.Request.Context(), firmID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListFirmUsersResponse(memberships))
}

// addUserToFirm godoc
// @Summary Add a user to a firm
// @Description Adds a user with a role. Admin only.
// @Tags firms
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param membership body dto.AddUserToFirmRequest true "Membership"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /firms/{firm_id}/users [post]
func (h *firmHandler) addUserToFirm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.AddUserToFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addUserToFirm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.firmService.AddUserToFirm(c.Request.Context(), userID, req.UserID, firmID, req.Role); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("User added to firm", slog.String("firm_id", firmID), slog.String("target_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}
