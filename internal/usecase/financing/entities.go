package financing

import "time"

type QuoteInput struct {
	LoanTypeCode           string  `json:"loan_type_code"`
	Amount                 float64 `json:"amount"`
	UnitPrice              float64 `json:"unit_price"`
	Quantity               int     `json:"quantity"`
	AdditionalContribution float64 `json:"additional_contribution"`
	TenorMonths            int     `json:"tenor_months"`
}

type CreateInput struct {
	ClientID               string  `json:"client_id"`
	LoanTypeCode           string  `json:"loan_type_code"`
	Amount                 float64 `json:"amount"`
	UnitPrice              float64 `json:"unit_price"`
	Quantity               int     `json:"quantity"`
	AdditionalContribution float64 `json:"additional_contribution"`
	TenorMonths            int     `json:"tenor_months"`
}

// QuoteDTO is the full derived breakdown, full precision. Presentation
// layers round to currency precision; this engine never does.
type QuoteDTO struct {
	TotalCost                float64 `json:"total_cost"`
	EquityPercent            float64 `json:"equity_percent"`
	EquityAmount             float64 `json:"equity_amount"`
	FinancedCost             float64 `json:"financed_cost"`
	InflationMultiplier      float64 `json:"inflation_multiplier"`
	PostInflationCost        float64 `json:"post_inflation_cost"`
	TotalRealOperationalCost float64 `json:"total_real_operational_cost"`
	MinimumFinancingPrice    float64 `json:"minimum_financing_price"`
	EstimatedProfit          float64 `json:"estimated_profit"`
	ProfitPercent            float64 `json:"profit_percent"`
}

type FinancingDTO struct {
	FinancingID            string    `json:"financing_id"`
	ClientID               string    `json:"client_id"`
	LoanTypeCode           string    `json:"loan_type_code"`
	TotalCost              float64   `json:"total_cost"`
	AdditionalContribution float64   `json:"additional_contribution"`
	TenorMonths            int       `json:"tenor_months"`
	EquityPercent          float64   `json:"equity_percent"`
	EquityAmount           float64   `json:"equity_amount"`
	FinancedCost           float64   `json:"financed_cost"`
	MinimumFinancingPrice  float64   `json:"minimum_financing_price"`
	EstimatedProfit        float64   `json:"estimated_profit"`
	ProfitPercent          float64   `json:"profit_percent"`
	State                  string    `json:"state"`
	CreatedAt              time.Time `json:"created_at"`
}

type SubmitResultDTO struct {
	FinancingID       string `json:"financing_id"`
	ApprovalRequestID string `json:"approval_request_id"`
	State             string `json:"state"`
}
