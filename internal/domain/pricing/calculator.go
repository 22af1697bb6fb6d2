package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDivisionByZero is returned when profit margin reaches 100%, which
	// would divide by zero in the minimum-price step. Surfaced to the user
	// as "adjust profit margin".
	ErrDivisionByZero = errors.New("profit margin of 100% is not computable")
	ErrInvalidInput   = errors.New("invalid pricing input")
)

// Input is an immutable snapshot of everything the formula chain needs.
// Percentages are whole numbers (20 = 20%).
type Input struct {
	TotalCost              float64
	EquityPercent          float64
	AdditionalContribution float64
	TenorMonths            int

	AvgInflationRatePercent  float64
	MarketRiskPremiumPercent float64
	OperatingExpensePercent  float64
	ProfitMarginPercent      float64
}

func (in Input) Validate() error {
	switch {
	case in.TotalCost < 0:
		return fmt.Errorf("%w: total cost must not be negative", ErrInvalidInput)
	case in.AdditionalContribution < 0:
		return fmt.Errorf("%w: additional contribution must not be negative", ErrInvalidInput)
	case in.TenorMonths <= 0:
		return fmt.Errorf("%w: tenor must be at least 1 month", ErrInvalidInput)
	case in.EquityPercent < 0 || in.EquityPercent > 100:
		return fmt.Errorf("%w: equity percent must be within [0,100]", ErrInvalidInput)
	case in.AvgInflationRatePercent < 0 || in.AvgInflationRatePercent > 100:
		return fmt.Errorf("%w: inflation rate percent must be within [0,100]", ErrInvalidInput)
	case in.MarketRiskPremiumPercent < 0 || in.MarketRiskPremiumPercent > 100:
		return fmt.Errorf("%w: market risk premium percent must be within [0,100]", ErrInvalidInput)
	case in.OperatingExpensePercent < 0 || in.OperatingExpensePercent > 100:
		return fmt.Errorf("%w: operating expense percent must be within [0,100]", ErrInvalidInput)
	case in.ProfitMarginPercent < 0 || in.ProfitMarginPercent > 100:
		return fmt.Errorf("%w: profit margin percent must be within [0,100]", ErrInvalidInput)
	}
	return nil
}

// Breakdown holds every derived value of the chain. Recomputed wholesale on
// any input change; never mutated field-by-field.
type Breakdown struct {
	EquityAmount             float64
	FinancedCost             float64
	InflationMultiplier      float64
	PostInflationCost        float64
	TotalRealOperationalCost float64
	MinimumFinancingPrice    float64
	EstimatedProfit          float64
	ProfitPercent            float64
}

// Compute runs the pricing formula chain. Pure: no state, no rounding
// between steps (rounding early compounds drift through the chain), safe to
// call on every field edit.
//
// The inflation multiplier compounds per tenor month, (1+rate)^months, not
// per year. Business rule; confirm with the product owner before changing
// the compounding period.
func Compute(in Input) (Breakdown, error) {
	if err := in.Validate(); err != nil {
		return Breakdown{}, err
	}

	equityAmount := in.EquityPercent / 100 * in.TotalCost
	financedCost := math.Max(0, in.TotalCost-equityAmount-in.AdditionalContribution)

	inflationMultiplier := math.Pow(1+in.AvgInflationRatePercent/100, float64(in.TenorMonths))
	postInflationCost := financedCost * inflationMultiplier

	totalRealOperationalCost := postInflationCost *
		(1 + in.MarketRiskPremiumPercent/100 + in.OperatingExpensePercent/100)

	if in.ProfitMarginPercent == 100 {
		return Breakdown{}, ErrDivisionByZero
	}
	minimumFinancingPrice := totalRealOperationalCost / (1 - in.ProfitMarginPercent/100)

	estimatedProfit := minimumFinancingPrice - financedCost

	// A fully equity/contribution-covered request is degenerate but valid:
	// report zero profit percent instead of dividing by zero.
	profitPercent := 0.0
	if financedCost > 0 {
		profitPercent = estimatedProfit / financedCost * 100
	}

	return Breakdown{
		EquityAmount:             equityAmount,
		FinancedCost:             financedCost,
		InflationMultiplier:      inflationMultiplier,
		PostInflationCost:        postInflationCost,
		TotalRealOperationalCost: totalRealOperationalCost,
		MinimumFinancingPrice:    minimumFinancingPrice,
		EstimatedProfit:          estimatedProfit,
		ProfitPercent:            profitPercent,
	}, nil
}

// TotalCost resolves the two request shapes: a direct amount, or an asset
// unit price times quantity. Direct amount wins when both are present.
func TotalCost(amount, unitPrice float64, quantity int) float64 {
	if amount > 0 {
		return amount
	}
	return unitPrice * float64(quantity)
}
