package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// trustAccountHandler handles HTTP requests related to trust accounts.
type trustAccountHandler struct {
	accountService portssvc.TrustAccountSvcFacade
}

func newTrustAccountHandler(accountService portssvc.TrustAccountSvcFacade) *trustAccountHandler {
	return &trustAccountHandler{accountService: accountService}
}

// registerTrustAccountRoutes registers trust account routes under a firm.
func registerTrustAccountRoutes(firmGroup *gin.RouterGroup, accountService portssvc.TrustAccountSvcFacade) {
	h := newTrustAccountHandler(accountService)

	accounts := firmGroup.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Open a trust account
// @Description Opens a new trust account with a zero balance. Admin only.
// @Tags trust-accounts
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account body dto.CreateTrustAccountRequest true "Trust Account"
// @Success 201 {object} dto.TrustAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts [post]
func (h *trustAccountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var req dto.CreateTrustAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), firmID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Trust account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToTrustAccountResponse(account))
}

// listAccounts godoc
// @Summary List a firm's trust accounts
// @Tags trust-accounts
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListTrustAccountsResponse
// @Router /firms/{firm_id}/accounts [get]
func (h *trustAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")

	var params dto.ListTrustAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), firmID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTrustAccountsResponse(accounts))
}

// getAccount godoc
// @Summary Get a trust account by ID
// @Tags trust-accounts
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.TrustAccountResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts/{account_id} [get]
func (h *trustAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), firmID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrustAccountResponse(account))
}

// updateAccount godoc
// @Summary Update a trust account's display details
// @Description Balance is never updated here; it only moves through ledger appends.
// @Tags trust-accounts
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateTrustAccountRequest true "Fields to update"
// @Success 200 {object} dto.TrustAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts/{account_id} [put]
func (h *trustAccountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	var req dto.UpdateTrustAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), firmID, accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Trust account updated", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToTrustAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate a trust account
// @Description Inactive accounts reject new ledger entries but remain readable.
// @Tags trust-accounts
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts/{account_id} [delete]
func (h *trustAccountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), firmID, accountID, userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Trust account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
