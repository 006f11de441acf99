package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisledger/trustd/internal/apperrors"
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/dto"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ViolationErrorResponse is returned when a time entry is rejected for
// guideline violations. Violations carries the full correction list.
type ViolationErrorResponse struct {
	Error      string                  `json:"error"`
	Violations []dto.ViolationResponse `json:"violations"`
}

// respondServiceError translates service errors to HTTP responses. Handlers
// with no special-case statuses delegate here after logging context.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var violations domain.Violations
	switch {
	case errors.As(err, &violations):
		logger.Warn("Request rejected for guideline violations", slog.Int("violation_count", len(violations)))
		c.JSON(http.StatusBadRequest, ViolationErrorResponse{
			Error:      "time entry violates billing guidelines",
			Violations: dto.ToViolationResponses(violations),
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrTimeEntryAlreadyInvoiced),
		errors.Is(err, apperrors.ErrConcurrentModification):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientTrustFunds),
		errors.Is(err, apperrors.ErrAccountInactive):
		logger.Warn("Trust accounting rule rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
