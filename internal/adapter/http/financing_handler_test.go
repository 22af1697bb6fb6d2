package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"assetfin-backend/internal/domain/catalog"
	"assetfin-backend/internal/domain/financing"
	"assetfin-backend/internal/domain/uow"
	"assetfin-backend/internal/testutil/approvalmock"
	"assetfin-backend/internal/testutil/catalogmock"
	"assetfin-backend/internal/testutil/financingmock"
	"assetfin-backend/internal/testutil/uowmock"
	ucfinancing "assetfin-backend/internal/usecase/financing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	testClientID    = "cccccccccccccccccccccccccccccccc"
	testFinancingID = "ffffffffffffffffffffffffffffffff"
)

func testCatalog(marginPercent float64) *catalogmock.Reader {
	return &catalogmock.Reader{
		LoanTypeEquityPercentFn: func(ctx context.Context, code string) (float64, error) {
			if code != "ASSET-STD" {
				return 0, catalog.ErrUnknownLoanType
			}
			return 20, nil
		},
		CurrentRatesFn: func(context.Context) (catalog.Rates, error) {
			return catalog.Rates{
				AvgInflationRatePercent:  10,
				MarketRiskPremiumPercent: 5,
				OperatingExpensePercent:  5,
				ProfitMarginPercent:      marginPercent,
			}, nil
		},
	}
}

func newFinancingHandler(repo *financingmock.Repo, cat *catalogmock.Reader, tx *uowmock.UoW) *FinancingHandler {
	var u uow.UnitOfWork
	if tx != nil {
		u = tx
	}
	return NewFinancingHandler(ucfinancing.NewUsecase(repo, cat, u))
}

func TestQuote(t *testing.T) {
	h := newFinancingHandler(&financingmock.Repo{}, testCatalog(20), nil)

	body := `{"loan_type_code":"ASSET-STD","unit_price":250000,"quantity":4,"tenor_months":12}`
	rec := doJSON(t, h.Quote, http.MethodPost, "/financings/quote", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var dto ucfinancing.QuoteDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.TotalCost != 1_000_000 || dto.FinancedCost != 800_000 {
		t.Fatalf("quote = %+v", dto)
	}
}

func TestQuote_Validation(t *testing.T) {
	h := newFinancingHandler(&financingmock.Repo{}, testCatalog(20), nil)

	// amount with 3 decimal places, tenor missing
	body := `{"loan_type_code":"ASSET-STD","amount":100.555}`
	rec := doJSON(t, h.Quote, http.MethodPost, "/financings/quote", body, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeError(t, rec)
	if !containsFieldMsg(resp.Details, "Amount", "2 decimal places") {
		t.Fatalf("details = %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "TenorMonths", "is required") {
		t.Fatalf("details = %+v", resp.Details)
	}
}

func TestQuote_FullMarginHint(t *testing.T) {
	h := newFinancingHandler(&financingmock.Repo{}, testCatalog(100), nil)

	body := `{"loan_type_code":"ASSET-STD","amount":1000000,"tenor_months":12}`
	rec := doJSON(t, h.Quote, http.MethodPost, "/financings/quote", body, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeError(t, rec)
	if resp.Hint == "" {
		t.Fatalf("full margin response must carry a hint: %+v", resp)
	}
}

func TestCreateFinancing(t *testing.T) {
	repo := &financingmock.Repo{
		GetProposedByClientIDFn: func(context.Context, string) (*financing.FinancingRequest, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newFinancingHandler(repo, testCatalog(20), nil)

	body := `{"client_id":"` + testClientID + `","loan_type_code":"ASSET-STD","amount":1000000,"tenor_months":12}`
	rec := doJSON(t, h.CreateFinancing, http.MethodPost, "/financings", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var dto ucfinancing.FinancingDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.State != "proposed" {
		t.Fatalf("state = %s", dto.State)
	}
}

func TestCreateFinancing_DuplicateProposed(t *testing.T) {
	repo := &financingmock.Repo{
		GetProposedByClientIDFn: func(context.Context, string) (*financing.FinancingRequest, error) {
			return &financing.FinancingRequest{FinancingID: testFinancingID}, nil
		},
	}
	h := newFinancingHandler(repo, testCatalog(20), nil)

	body := `{"client_id":"` + testClientID + `","loan_type_code":"ASSET-STD","amount":1000000,"tenor_months":12}`
	rec := doJSON(t, h.CreateFinancing, http.MethodPost, "/financings", body, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateFinancing_BadClientID(t *testing.T) {
	h := newFinancingHandler(&financingmock.Repo{}, testCatalog(20), nil)

	body := `{"client_id":"not-hex","loan_type_code":"ASSET-STD","amount":1000000,"tenor_months":12}`
	rec := doJSON(t, h.CreateFinancing, http.MethodPost, "/financings", body, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetFinancing_NotFound(t *testing.T) {
	h := newFinancingHandler(&financingmock.Repo{}, testCatalog(20), nil)

	rec := doJSON(t, h.GetFinancing, http.MethodGet, "/financings/"+testFinancingID, "", func(c echo.Context) {
		c.SetParamNames("financing_id")
		c.SetParamValues(testFinancingID)
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitFinancing(t *testing.T) {
	finRepo := &financingmock.Repo{
		GetByFinancingIDForUpdateFn: func(ctx context.Context, id string) (*financing.FinancingRequest, error) {
			return &financing.FinancingRequest{
				FinancingID: id, ClientID: testClientID, State: financing.StateProposed,
			}, nil
		},
	}
	tx := &uowmock.UoW{Repos: uow.Repos{Financings: finRepo, Approvals: &approvalmock.Repo{}}}
	h := newFinancingHandler(finRepo, testCatalog(20), tx)

	submit := func(body string) int {
		rec := doJSON(t, h.SubmitFinancing, http.MethodPost,
			"/financings/"+testFinancingID+"/submit", body, func(c echo.Context) {
				c.SetParamNames("financing_id")
				c.SetParamValues(testFinancingID)
			})
		return rec.Code
	}

	if code := submit(`{"staff_id":"` + testStaffID + `"}`); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if code := submit(`{}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("missing staff id: status = %d", code)
	}

	finRepo.GetByFinancingIDForUpdateFn = func(ctx context.Context, id string) (*financing.FinancingRequest, error) {
		return &financing.FinancingRequest{FinancingID: id, State: financing.StateSubmitted}, nil
	}
	if code := submit(`{"staff_id":"` + testStaffID + `"}`); code != http.StatusConflict {
		t.Fatalf("already submitted: status = %d", code)
	}
}
