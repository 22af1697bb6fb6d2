package catalogmock

import (
	"context"

	domain "assetfin-backend/internal/domain/catalog"
)

// Reader is a function-backed mock of catalog.Reader.
type Reader struct {
	LoanTypeEquityPercentFn func(ctx context.Context, code string) (float64, error)
	CurrentRatesFn          func(ctx context.Context) (domain.Rates, error)
}

func (m *Reader) LoanTypeEquityPercent(ctx context.Context, code string) (float64, error) {
	if m.LoanTypeEquityPercentFn != nil {
		return m.LoanTypeEquityPercentFn(ctx, code)
	}
	return 0, domain.ErrUnknownLoanType
}

func (m *Reader) CurrentRates(ctx context.Context) (domain.Rates, error) {
	if m.CurrentRatesFn != nil {
		return m.CurrentRatesFn(ctx)
	}
	return domain.Rates{}, domain.ErrNoRates
}
