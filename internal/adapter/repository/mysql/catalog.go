package mysql

import (
	"context"
	"errors"
	"time"

	catalogDomain "assetfin-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

type CatalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) LoanTypeEquityPercent(ctx context.Context, code string) (float64, error) {
	var lt catalogDomain.LoanType
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&lt)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return 0, catalogDomain.ErrUnknownLoanType
		}
		return 0, res.Error
	}
	return lt.EquityPercent, nil
}

func (r *CatalogRepository) CurrentRates(ctx context.Context) (catalogDomain.Rates, error) {
	var rs catalogDomain.RateSet
	res := r.db.WithContext(ctx).
		Where("effective_from <= ?", time.Now().UTC()).
		Order("effective_from DESC, id DESC").
		First(&rs)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return catalogDomain.Rates{}, catalogDomain.ErrNoRates
		}
		return catalogDomain.Rates{}, res.Error
	}
	return catalogDomain.Rates{
		AvgInflationRatePercent:  rs.AvgInflationRatePercent,
		MarketRiskPremiumPercent: rs.MarketRiskPremiumPercent,
		OperatingExpensePercent:  rs.OperatingExpensePercent,
		ProfitMarginPercent:      rs.ProfitMarginPercent,
	}, nil
}
