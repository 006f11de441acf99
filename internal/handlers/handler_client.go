package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// clientHandler handles HTTP requests for the client and matter registry.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(clientService portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: clientService}
}

// registerClientRoutes registers client and matter routes under a firm.
func registerClientRoutes(firmGroup *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := firmGroup.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:client_id", h.getClient)
		clients.DELETE("/:client_id", h.deactivateClient)
		clients.GET("/:client_id/matters", h.listMatters)
	}

	matters := firmGroup.Group("/matters")
	{
		matters.POST("", h.createMatter)
		matters.GET("/:matter_id", h.getMatter)
	}
}

// createClient godoc
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param client body dto.CreateClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms/{firm_id}/clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), firmID, req.Name, req.Email, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List active clients of a firm
// @Tags clients
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListClientsResponse
// @Router /firms/{firm_id}/clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), firmID, userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// getClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param client_id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/clients/{client_id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	clientID := c.Param("client_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), firmID, clientID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deactivateClient godoc
// @Summary Deactivate a client
// @Description Inactive clients reject new ledger entries, time entries and invoices.
// @Tags clients
// @Param firm_id path string true "Firm ID"
// @Param client_id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/clients/{client_id} [delete]
func (h *clientHandler) deactivateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	clientID := c.Param("client_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.clientService.DeactivateClient(c.Request.Context(), firmID, clientID, userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Client deactivated", slog.String("client_id", clientID))
	c.Status(http.StatusNoContent)
}

// listMatters godoc
// @Summary List a client's matters
// @Tags matters
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param client_id path string true "Client ID"
// @Success 200 {object} dto.ListMattersResponse
// @Router /firms/{firm_id}/clients/{client_id}/matters [get]
func (h *clientHandler) listMatters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	clientID := c.Param("client_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	matters, err := h.clientService.ListMattersByClient(c.Request.Context(), firmID, clientID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListMattersResponse(matters))
}

// createMatter godoc
// @Summary Open a matter for a client
// @Tags matters
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param matter body dto.CreateMatterRequest true "Matter"
// @Success 201 {object} dto.MatterResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms/{firm_id}/matters [post]
func (h *clientHandler) createMatter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.CreateMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createMatter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	matter, err := h.clientService.CreateMatter(c.Request.Context(), firmID, req.ClientID, req.Name, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Matter created", slog.String("matter_id", matter.MatterID))
	c.JSON(http.StatusCreated, dto.ToMatterResponse(matter))
}

// getMatter godoc
// @Summary Get a matter by ID
// @Tags matters
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param matter_id path string true "Matter ID"
// @Success 200 {object} dto.MatterResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/matters/{matter_id} [get]
func (h *clientHandler) getMatter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	matterID := c.Param("matter_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	matter, err := h.clientService.GetMatterByID(c.Request.Context(), firmID, matterID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMatterResponse(matter))
}
