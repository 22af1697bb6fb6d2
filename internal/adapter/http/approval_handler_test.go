package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"assetfin-backend/internal/domain/approval"
	"assetfin-backend/internal/domain/uow"
	"assetfin-backend/internal/testutil/approvalmock"
	"assetfin-backend/internal/testutil/staffmock"
	"assetfin-backend/internal/testutil/uowmock"
	ucapproval "assetfin-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

const (
	testRequestID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testStaffID   = "dddddddddddddddddddddddddddddddd"
	testEntityID  = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func pendingLoanRequest() *approval.Request {
	return &approval.Request{
		ID:          7,
		RequestID:   testRequestID,
		EntityType:  approval.EntityLoan,
		EntityID:    testEntityID,
		RequestedBy: testStaffID,
		RequestDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:      approval.StatusPending,
	}
}

func newApprovalHandler(repo *approvalmock.Repo, privs *staffmock.Reader) *ApprovalHandler {
	tx := &uowmock.UoW{Repos: uow.Repos{Approvals: repo}}
	return NewApprovalHandler(ucapproval.NewUsecase(repo, privs, tx))
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	if body == "" {
		body = "{}"
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func withRequestID(id string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("request_id")
		c.SetParamValues(id)
	}
}

func TestCreateApproval(t *testing.T) {
	h := newApprovalHandler(&approvalmock.Repo{}, &staffmock.Reader{})

	body := `{"entity_type":0,"entity_id":"` + testEntityID + `","requested_by":"` + testStaffID + `",` +
		`"metadata":[{"key":"total_cost","value":"1000000.00"}]}`
	rec := doJSON(t, h.CreateApproval, http.MethodPost, "/approvals", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var dto ucapproval.RequestDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Status != "pending" || dto.EntityType != "loan" {
		t.Fatalf("dto = %+v", dto)
	}
	if len(dto.RequestID) != 32 {
		t.Fatalf("request id = %q", dto.RequestID)
	}
}

func TestCreateApproval_ValidationFailure(t *testing.T) {
	h := newApprovalHandler(&approvalmock.Repo{}, &staffmock.Reader{})

	// requested_by is not 32-char hex
	body := `{"entity_type":0,"entity_id":"` + testEntityID + `","requested_by":"bob"}`
	rec := doJSON(t, h.CreateApproval, http.MethodPost, "/approvals", body, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if !containsFieldMsg(resp.Details, "RequestedBy", "32-char lowercase hex") {
		t.Fatalf("details = %+v", resp.Details)
	}
}

func TestCreateApproval_UnknownEntityType(t *testing.T) {
	h := newApprovalHandler(&approvalmock.Repo{}, &staffmock.Reader{})

	body := `{"entity_type":9,"entity_id":"` + testEntityID + `","requested_by":"` + testStaffID + `"}`
	rec := doJSON(t, h.CreateApproval, http.MethodPost, "/approvals", body, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProcessApproval_StatusMapping(t *testing.T) {
	pendingRepo := func() *approvalmock.Repo {
		return &approvalmock.Repo{
			GetByRequestIDFn: func(ctx context.Context, requestID string) (*approval.Request, error) {
				r := pendingLoanRequest()
				return r, nil
			},
		}
	}

	tests := []struct {
		name       string
		repo       *approvalmock.Repo
		privs      *staffmock.Reader
		body       string
		wantStatus int
	}{
		{
			name:       "approve ok",
			repo:       pendingRepo(),
			privs:      staffmock.Granting("approval:process:loan"),
			body:       `{"staff_id":"` + testStaffID + `","decision":1}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing staff id",
			repo:       pendingRepo(),
			privs:      staffmock.Granting("approval:process:loan"),
			body:       `{"decision":1}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid decision code",
			repo:       pendingRepo(),
			privs:      staffmock.Granting("approval:process:loan"),
			body:       `{"staff_id":"` + testStaffID + `","decision":7}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "reject without comments",
			repo:       pendingRepo(),
			privs:      staffmock.Granting("approval:process:loan"),
			body:       `{"staff_id":"` + testStaffID + `","decision":2}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "no privilege",
			repo:       pendingRepo(),
			privs:      &staffmock.Reader{},
			body:       `{"staff_id":"` + testStaffID + `","decision":1}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name: "already decided",
			repo: &approvalmock.Repo{
				GetByRequestIDFn: func(ctx context.Context, requestID string) (*approval.Request, error) {
					r := pendingLoanRequest()
					r.Status = approval.StatusApproved
					return r, nil
				},
			},
			privs:      staffmock.Granting("approval:process:loan"),
			body:       `{"staff_id":"` + testStaffID + `","decision":1}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown request",
			repo:       &approvalmock.Repo{}, // default: ErrNotFound
			privs:      staffmock.Granting("approval:process:loan"),
			body:       `{"staff_id":"` + testStaffID + `","decision":1}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newApprovalHandler(tt.repo, tt.privs)
			rec := doJSON(t, h.ProcessApproval, http.MethodPost,
				"/approvals/"+testRequestID+"/process", tt.body, withRequestID(testRequestID))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestProcessApproval_StaffIDFromHeader(t *testing.T) {
	repo := &approvalmock.Repo{
		GetByRequestIDFn: func(ctx context.Context, requestID string) (*approval.Request, error) {
			return pendingLoanRequest(), nil
		},
	}
	h := newApprovalHandler(repo, staffmock.Granting("approval:process:loan"))

	rec := doJSON(t, h.ProcessApproval, http.MethodPost,
		"/approvals/"+testRequestID+"/process", `{"decision":1}`, func(c echo.Context) {
			withRequestID(testRequestID)(c)
			c.Request().Header.Set("Ax-Staff-Id", testStaffID)
		})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReopenApproval(t *testing.T) {
	repo := &approvalmock.Repo{
		GetByRequestIDFn: func(ctx context.Context, requestID string) (*approval.Request, error) {
			r := pendingLoanRequest()
			r.Status = approval.StatusRejected
			return r, nil
		},
	}

	h := newApprovalHandler(repo, staffmock.Granting("approval:reopen:loan"))
	rec := doJSON(t, h.ReopenApproval, http.MethodPost,
		"/approvals/"+testRequestID+"/reopen", `{"staff_id":"`+testStaffID+`"}`, withRequestID(testRequestID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	// process privilege alone does not allow reopening
	h = newApprovalHandler(repo, staffmock.Granting("approval:process:loan"))
	rec = doJSON(t, h.ReopenApproval, http.MethodPost,
		"/approvals/"+testRequestID+"/reopen", `{"staff_id":"`+testStaffID+`"}`, withRequestID(testRequestID))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestListApprovals_QueryValidation(t *testing.T) {
	h := newApprovalHandler(&approvalmock.Repo{}, &staffmock.Reader{})

	rec := doJSON(t, h.ListApprovals, http.MethodGet, "/approvals?entity_type=loan", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-integer entity_type: status = %d", rec.Code)
	}

	rec = doJSON(t, h.ListApprovals, http.MethodGet, "/approvals?from=yesterday", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad from: status = %d", rec.Code)
	}

	rec = doJSON(t, h.ListApprovals, http.MethodGet, "/approvals?status=bogus", "", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown status: status = %d", rec.Code)
	}

	rec = doJSON(t, h.ListApprovals, http.MethodGet,
		"/approvals?status=pending&entity_type=0&from=2026-08-01T00:00:00Z", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid query: status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckCompletion(t *testing.T) {
	repo := &approvalmock.Repo{
		ListByEntityIDFn: func(ctx context.Context, entityID string) ([]approval.Request, error) {
			return []approval.Request{
				{RequestID: testRequestID, Status: approval.StatusApproved},
				{RequestID: strings.Repeat("c", 32), Status: approval.StatusPending},
			}, nil
		},
	}
	h := newApprovalHandler(repo, &staffmock.Reader{})

	rec := doJSON(t, h.CheckCompletion, http.MethodGet,
		"/entities/"+testEntityID+"/approval-completion", "", func(c echo.Context) {
			c.SetParamNames("entity_id")
			c.SetParamValues(testEntityID)
		})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var dto ucapproval.CompletionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Complete {
		t.Fatal("pending request must block completion")
	}
	if len(dto.Outstanding) != 1 || dto.Outstanding[0] != strings.Repeat("c", 32) {
		t.Fatalf("outstanding = %v", dto.Outstanding)
	}
}
