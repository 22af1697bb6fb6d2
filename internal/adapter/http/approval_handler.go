package http

import (
	"net/http"
	"strconv"
	"time"

	"assetfin-backend/internal/domain/approval"
	uc "assetfin-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *uc.Usecase }

func NewApprovalHandler(u *uc.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: u} }

type metadataEntryReq struct {
	Key   string `json:"key"   validate:"required"`
	Value string `json:"value" validate:"required"`
}

type createApprovalReq struct {
	EntityType  int                `json:"entity_type"`
	EntityID    string             `json:"entity_id"    validate:"required"`
	RequestedBy string             `json:"requested_by" validate:"required,hex32"`
	Notes       string             `json:"notes"`
	Metadata    []metadataEntryReq `json:"metadata"     validate:"dive"`
}

func (h *ApprovalHandler) CreateApproval(c echo.Context) error {
	var req createApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	meta := make(approval.Metadata, 0, len(req.Metadata))
	for _, m := range req.Metadata {
		meta = append(meta, approval.MetadataEntry{Key: m.Key, Value: m.Value})
	}

	dto, err := h.uc.Create(c.Request().Context(), uc.CreateInput{
		EntityTypeCode: req.EntityType,
		EntityID:       req.EntityID,
		RequestedBy:    req.RequestedBy,
		Notes:          req.Notes,
		Metadata:       meta,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type processApprovalReq struct {
	StaffID string `json:"staff_id"`
	// 1 = approve, 2 = reject
	Decision int    `json:"decision"`
	Comments string `json:"comments"`
}

func (h *ApprovalHandler) ProcessApproval(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req processApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// Precondition order (staff id, decision, comments, state+authz) lives in
	// the usecase; the handler only binds and maps.
	dto, err := h.uc.Process(c.Request().Context(), uc.ProcessInput{
		RequestID: requestID,
		StaffID:   staffID(c, req.StaffID),
		Decision:  req.Decision,
		Comments:  req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type reopenApprovalReq struct {
	StaffID string `json:"staff_id"`
}

func (h *ApprovalHandler) ReopenApproval(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req reopenApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	dto, err := h.uc.Reopen(c.Request().Context(), uc.ReopenInput{
		RequestID: requestID,
		StaffID:   staffID(c, req.StaffID),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) GetApproval(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) ListApprovals(c echo.Context) error {
	f := uc.ListFilter{
		Status:      c.QueryParam("status"),
		RequestedBy: c.QueryParam("requested_by"),
	}
	if v := c.QueryParam("entity_type"); v != "" {
		code, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "entity_type must be an integer code"})
		}
		f.EntityTypeCode = &code
	}
	for param, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		if v := c.QueryParam(param); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: param + " must be RFC3339"})
			}
			*dst = &t
		}
	}

	dtos, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApprovalHandler) GetApprovalHistory(c echo.Context) error {
	dtos, err := h.uc.History(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApprovalHandler) GetStaffHistory(c echo.Context) error {
	dtos, err := h.uc.HistoryByStaff(c.Request().Context(), c.Param("staff_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApprovalHandler) CheckCompletion(c echo.Context) error {
	dto, err := h.uc.CheckCompletion(c.Request().Context(), c.Param("entity_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
