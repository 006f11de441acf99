package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/dto"
	"github.com/praxisledger/trustd/internal/middleware"
)

// ledgerHandler handles HTTP requests for the trust ledger and reconciliations.
type ledgerHandler struct {
	ledgerService         portssvc.LedgerSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:         ledgerService,
		reconciliationService: reconciliationService,
	}
}

// RegisterLedgerRoutes registers ledger and reconciliation routes under a firm.
func RegisterLedgerRoutes(firmGroup *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newLedgerHandler(ledgerService, reconciliationService)

	account := firmGroup.Group("/accounts/:account_id")
	{
		account.POST("/entries", h.appendEntry)
		account.GET("/entries", h.listEntries)
		account.GET("/entries/:entry_id", h.getEntry)
		account.GET("/balance", h.getBalanceAsOf)
		account.POST("/reconciliations", h.reconcile)
		account.GET("/reconciliations", h.listReconciliations)
	}
}

// appendEntry godoc
// @Summary Append a trust ledger entry
// @Description Validates and appends one entry, deriving its running balance under a per-account lock.
// @Tags ledger
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Param entry body dto.CreateLedgerEntryRequest true "Ledger Entry"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent modification after retries"
// @Failure 422 {object} ErrorResponse "Insufficient funds or inactive account"
// @Router /firms/{firm_id}/accounts/{account_id}/entries [post]
func (h *ledgerHandler) appendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for appendEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.AppendEntry(c.Request.Context(), firmID, accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("running_balance_cents", entry.RunningBalanceCents),
	)
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries for an account
// @Description Returns entries newest first with token-based pagination.
// @Tags ledger
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Router /firms/{firm_id}/accounts/{account_id}/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), firmID, accountID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a ledger entry by ID
// @Tags ledger
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts/{account_id}/entries/{entry_id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), firmID, accountID, entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// getBalanceAsOf godoc
// @Summary Get the ledger-derived balance as of a date
// @Tags ledger
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Param asOf query string true "Date (RFC 3339); defaults to now when omitted"
// @Success 200 {object} dto.LedgerBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts/{account_id}/balance [get]
func (h *ledgerHandler) getBalanceAsOf(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "asOf must be RFC 3339"})
			return
		}
		asOf = parsed
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.ledgerService.GetBalanceAsOf(c.Request.Context(), firmID, accountID, userID, asOf)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.LedgerBalanceResponse{
		AccountID:    accountID,
		AsOf:         asOf,
		BalanceCents: balance,
	})
}

// reconcile godoc
// @Summary Reconcile an account against a bank statement
// @Description Compares the ledger-derived balance to the statement balance and records an immutable snapshot.
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Param reconciliation body dto.CreateReconciliationRequest true "Reconciliation"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} ErrorResponse
// @Router /firms/{firm_id}/accounts/{account_id}/reconciliations [post]
func (h *ledgerHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.reconciliationService.ReconcileAccount(c.Request.Context(), firmID, accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Reconciliation recorded",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.Bool("is_balanced", rec.IsBalanced),
	)
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

// listReconciliations godoc
// @Summary List an account's reconciliation history
// @Tags reconciliations
// @Produce json
// @Param firm_id path string true "Firm ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.ListReconciliationsResponse
// @Router /firms/{firm_id}/accounts/{account_id}/reconciliations [get]
func (h *ledgerHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	firmID := c.Param("firm_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	recs, err := h.reconciliationService.ListReconciliations(c.Request.Context(), firmID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListReconciliationsResponse(recs))
}
