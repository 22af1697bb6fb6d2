package financing

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("financing request not found")
	ErrAlreadySubmitted  = errors.New("financing request already submitted")
	ErrInvalidTransition = errors.New("invalid financing state transition")
	ErrInvalidInput      = errors.New("invalid financing input")
	ErrDuplicateProposed = errors.New("client already has a proposed financing request")
)

type State string

const (
	StateProposed  State = "proposed"
	StateSubmitted State = "submitted"
)

// FinancingRequest is the business record that gets priced and then sent
// through the approval workflow. The pricing columns are a snapshot of the
// breakdown at creation time; the live quote endpoint recomputes instead.
type FinancingRequest struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	FinancingID string `gorm:"size:32;uniqueIndex:ux_financings_financing_id_active" json:"financing_id"`
	ClientID    string `gorm:"size:32;index:idx_financings_client_active" json:"client_id"`

	LoanTypeCode string `gorm:"size:32" json:"loan_type_code"`
	// Either a direct amount, or unit price × quantity for asset financing
	Amount                 float64 `gorm:"type:decimal(18,2)" json:"amount"`
	UnitPrice              float64 `gorm:"type:decimal(18,2)" json:"unit_price"`
	Quantity               int     `json:"quantity"`
	AdditionalContribution float64 `gorm:"type:decimal(18,2)" json:"additional_contribution"`
	TenorMonths            int     `json:"tenor_months"`

	// Pricing snapshot (full precision; presentation rounds)
	EquityPercent         float64 `gorm:"type:decimal(6,3)" json:"equity_percent"`
	TotalCost             float64 `gorm:"type:decimal(18,2)" json:"total_cost"`
	EquityAmount          float64 `gorm:"type:decimal(18,4)" json:"equity_amount"`
	FinancedCost          float64 `gorm:"type:decimal(18,4)" json:"financed_cost"`
	MinimumFinancingPrice float64 `gorm:"type:decimal(18,4)" json:"minimum_financing_price"`
	EstimatedProfit       float64 `gorm:"type:decimal(18,4)" json:"estimated_profit"`
	ProfitPercent         float64 `gorm:"type:decimal(10,4)" json:"profit_percent"`

	State          State          `gorm:"type:enum('proposed','submitted');default:'proposed'" json:"state"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FinancingRequest) TableName() string { return "financing_requests" }
