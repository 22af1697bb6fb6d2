package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUnknownLoanType = errors.New("unknown loan type")
	ErrNoRates         = errors.New("no rate set configured")
)

// Rates are the market-wide pricing inputs, maintained by back office and
// shared by every quote. Percentages are whole numbers (20 = 20%).
type Rates struct {
	AvgInflationRatePercent  float64
	MarketRiskPremiumPercent float64
	OperatingExpensePercent  float64
	ProfitMarginPercent      float64
}

// Reader is the lookup contract the pricing flow consumes. The catalog is
// owned elsewhere; this engine only reads it.
type Reader interface {
	// Equity contribution percentage for a loan type code
	LoanTypeEquityPercent(ctx context.Context, code string) (float64, error)
	// Rate set currently in effect
	CurrentRates(ctx context.Context) (Rates, error)
}

// Table: loan_types
type LoanType struct {
	ID            uint64  `gorm:"column:id;primaryKey;autoIncrement"`
	Code          string  `gorm:"column:code;type:varchar(32);not null;uniqueIndex:ux_loan_types_code"`
	Name          string  `gorm:"column:name;type:varchar(128);not null"`
	EquityPercent float64 `gorm:"column:equity_percent;type:decimal(6,3);not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (LoanType) TableName() string { return "loan_types" }

// Table: rate_sets — append-only; the row with the latest effective_from
// not in the future is current.
type RateSet struct {
	ID                       uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	AvgInflationRatePercent  float64   `gorm:"column:avg_inflation_rate_percent;type:decimal(6,3);not null"`
	MarketRiskPremiumPercent float64   `gorm:"column:market_risk_premium_percent;type:decimal(6,3);not null"`
	OperatingExpensePercent  float64   `gorm:"column:operating_expense_percent;type:decimal(6,3);not null"`
	ProfitMarginPercent      float64   `gorm:"column:profit_margin_percent;type:decimal(6,3);not null"`
	EffectiveFrom            time.Time `gorm:"column:effective_from;not null;index"`
	CreatedAt                time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RateSet) TableName() string { return "rate_sets" }
