package http

import (
	"errors"
	"net/http"
	"strings"

	"assetfin-backend/internal/domain/approval"
	"assetfin-backend/internal/domain/catalog"
	"assetfin-backend/internal/domain/financing"
	"assetfin-backend/internal/domain/pricing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeDomainError maps engine errors onto HTTP codes. The engine never
// retries internally; conflicts and validation failures are surfaced so the
// caller can refresh or correct input.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, pricing.ErrDivisionByZero):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Hint:  "adjust profit margin below 100%",
		})
	case errors.Is(err, approval.ErrValidation),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, financing.ErrInvalidInput),
		errors.Is(err, catalog.ErrUnknownLoanType):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, approval.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, approval.ErrInvalidState),
		errors.Is(err, financing.ErrAlreadySubmitted),
		errors.Is(err, financing.ErrDuplicateProposed),
		errors.Is(err, financing.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, approval.ErrNotFound),
		errors.Is(err, financing.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// staffID resolves the acting staff member: body value first, Ax-Staff-Id
// header as fallback.
func staffID(c echo.Context, body string) string {
	if s := strings.TrimSpace(body); s != "" {
		return s
	}
	return strings.TrimSpace(c.Request().Header.Get("Ax-Staff-Id"))
}
