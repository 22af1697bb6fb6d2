package http

import (
	"net/http"

	uc "assetfin-backend/internal/usecase/financing"

	"github.com/labstack/echo/v4"
)

type FinancingHandler struct{ uc *uc.Usecase }

func NewFinancingHandler(u *uc.Usecase) *FinancingHandler { return &FinancingHandler{uc: u} }

type quoteReq struct {
	LoanTypeCode           string  `json:"loan_type_code"          validate:"required"`
	Amount                 float64 `json:"amount"                  validate:"gte=0,dec2"`
	UnitPrice              float64 `json:"unit_price"              validate:"gte=0,dec2"`
	Quantity               int     `json:"quantity"                validate:"gte=0"`
	AdditionalContribution float64 `json:"additional_contribution" validate:"gte=0,dec2"`
	TenorMonths            int     `json:"tenor_months"            validate:"required,gt=0"`
}

// Quote reprices without persisting. Called on every form edit, so it stays
// read-only and cheap.
func (h *FinancingHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Quote(c.Request().Context(), uc.QuoteInput{
		LoanTypeCode:           req.LoanTypeCode,
		Amount:                 req.Amount,
		UnitPrice:              req.UnitPrice,
		Quantity:               req.Quantity,
		AdditionalContribution: req.AdditionalContribution,
		TenorMonths:            req.TenorMonths,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type createFinancingReq struct {
	ClientID               string  `json:"client_id"               validate:"required,hex32"`
	LoanTypeCode           string  `json:"loan_type_code"          validate:"required"`
	Amount                 float64 `json:"amount"                  validate:"gte=0,dec2"`
	UnitPrice              float64 `json:"unit_price"              validate:"gte=0,dec2"`
	Quantity               int     `json:"quantity"                validate:"gte=0"`
	AdditionalContribution float64 `json:"additional_contribution" validate:"gte=0,dec2"`
	TenorMonths            int     `json:"tenor_months"            validate:"required,gt=0"`
}

func (h *FinancingHandler) CreateFinancing(c echo.Context) error {
	var req createFinancingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), uc.CreateInput{
		ClientID:               req.ClientID,
		LoanTypeCode:           req.LoanTypeCode,
		Amount:                 req.Amount,
		UnitPrice:              req.UnitPrice,
		Quantity:               req.Quantity,
		AdditionalContribution: req.AdditionalContribution,
		TenorMonths:            req.TenorMonths,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *FinancingHandler) GetFinancing(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("financing_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type submitFinancingReq struct {
	StaffID string `json:"staff_id"`
}

func (h *FinancingHandler) SubmitFinancing(c echo.Context) error {
	financingID := c.Param("financing_id")
	if financingID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing financing_id path param"})
	}
	var req submitFinancingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	dto, err := h.uc.Submit(c.Request().Context(), financingID, staffID(c, req.StaffID))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
