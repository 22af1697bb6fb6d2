package financing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	domainApproval "assetfin-backend/internal/domain/approval"
	"assetfin-backend/internal/domain/catalog"
	domainFinancing "assetfin-backend/internal/domain/financing"
	"assetfin-backend/internal/domain/pricing"
	"assetfin-backend/internal/domain/uow"
	"assetfin-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo    domainFinancing.Repository
	catalog catalog.Reader
	uow     uow.UnitOfWork
	now     func() time.Time
}

// NewUsecase: catalog resolves equity percent and rates, UoW covers the
// submit flow (financing state flip + approval request creation).
func NewUsecase(r domainFinancing.Repository, cat catalog.Reader, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, catalog: cat, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// price resolves catalog inputs and runs the formula chain. Recomputed on
// every quote; never read back from a stored snapshot.
func (u *Usecase) price(ctx context.Context, loanTypeCode string, totalCost, contribution float64, tenorMonths int) (float64, pricing.Breakdown, error) {
	equityPercent, err := u.catalog.LoanTypeEquityPercent(ctx, loanTypeCode)
	if err != nil {
		return 0, pricing.Breakdown{}, err
	}
	rates, err := u.catalog.CurrentRates(ctx)
	if err != nil {
		return 0, pricing.Breakdown{}, err
	}

	b, err := pricing.Compute(pricing.Input{
		TotalCost:                totalCost,
		EquityPercent:            equityPercent,
		AdditionalContribution:   contribution,
		TenorMonths:              tenorMonths,
		AvgInflationRatePercent:  rates.AvgInflationRatePercent,
		MarketRiskPremiumPercent: rates.MarketRiskPremiumPercent,
		OperatingExpensePercent:  rates.OperatingExpensePercent,
		ProfitMarginPercent:      rates.ProfitMarginPercent,
	})
	if err != nil {
		return 0, pricing.Breakdown{}, err
	}
	return equityPercent, b, nil
}

func (u *Usecase) Quote(ctx context.Context, in QuoteInput) (*QuoteDTO, error) {
	totalCost := pricing.TotalCost(in.Amount, in.UnitPrice, in.Quantity)
	equityPercent, b, err := u.price(ctx, in.LoanTypeCode, totalCost, in.AdditionalContribution, in.TenorMonths)
	if err != nil {
		return nil, err
	}
	return &QuoteDTO{
		TotalCost:                totalCost,
		EquityPercent:            equityPercent,
		EquityAmount:             b.EquityAmount,
		FinancedCost:             b.FinancedCost,
		InflationMultiplier:      b.InflationMultiplier,
		PostInflationCost:        b.PostInflationCost,
		TotalRealOperationalCost: b.TotalRealOperationalCost,
		MinimumFinancingPrice:    b.MinimumFinancingPrice,
		EstimatedProfit:          b.EstimatedProfit,
		ProfitPercent:            b.ProfitPercent,
	}, nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*FinancingDTO, error) {
	if !id.IsID32(in.ClientID) {
		return nil, fmt.Errorf("%w: client id must be 32-char hex", domainFinancing.ErrInvalidInput)
	}
	totalCost := pricing.TotalCost(in.Amount, in.UnitPrice, in.Quantity)
	if totalCost <= 0 {
		return nil, fmt.Errorf("%w: amount or unit price and quantity required", domainFinancing.ErrInvalidInput)
	}

	// Block if the client already has a proposed financing request.
	pending, err := u.repo.GetProposedByClientID(ctx, in.ClientID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domainFinancing.ErrDuplicateProposed, pending.FinancingID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	equityPercent, b, err := u.price(ctx, in.LoanTypeCode, totalCost, in.AdditionalContribution, in.TenorMonths)
	if err != nil {
		return nil, err
	}

	f := &domainFinancing.FinancingRequest{
		FinancingID:            id.NewID32(),
		ClientID:               in.ClientID,
		LoanTypeCode:           in.LoanTypeCode,
		Amount:                 in.Amount,
		UnitPrice:              in.UnitPrice,
		Quantity:               in.Quantity,
		AdditionalContribution: in.AdditionalContribution,
		TenorMonths:            in.TenorMonths,
		EquityPercent:          equityPercent,
		TotalCost:              totalCost,
		EquityAmount:           b.EquityAmount,
		FinancedCost:           b.FinancedCost,
		MinimumFinancingPrice:  b.MinimumFinancingPrice,
		EstimatedProfit:        b.EstimatedProfit,
		ProfitPercent:          b.ProfitPercent,
		State:                  domainFinancing.StateProposed,
		StateUpdatedAt:         u.now(),
	}
	if err := u.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return toDTO(f), nil
}

func (u *Usecase) Get(ctx context.Context, financingID string) (*FinancingDTO, error) {
	f, err := u.repo.GetByFinancingID(ctx, financingID)
	if err != nil {
		return nil, err
	}
	return toDTO(f), nil
}

// Submit moves a proposed financing request into the approval workflow:
// flips its state and creates the linked approval request carrying the
// pricing snapshot as ordered metadata, both in one transaction.
func (u *Usecase) Submit(ctx context.Context, financingID, staffID string) (*SubmitResultDTO, error) {
	if u.uow == nil {
		return nil, domainFinancing.ErrInvalidTransition
	}
	if staffID == "" {
		return nil, fmt.Errorf("%w: staff id required", domainApproval.ErrValidation)
	}

	var dto *SubmitResultDTO
	err := u.uow.WithinFinancingTx(ctx, financingID, func(r uow.Repos, f *domainFinancing.FinancingRequest) error {
		if f.State != domainFinancing.StateProposed {
			if f.State == domainFinancing.StateSubmitted {
				return domainFinancing.ErrAlreadySubmitted
			}
			return domainFinancing.ErrInvalidTransition
		}

		req := &domainApproval.Request{
			RequestID:   id.NewID32(),
			EntityType:  domainApproval.EntityLoan,
			EntityID:    f.FinancingID,
			RequestedBy: staffID,
			RequestDate: u.now(),
			Status:      domainApproval.StatusPending,
			Metadata:    pricingMetadata(f),
		}
		if err := r.Approvals.Create(ctx, req); err != nil {
			return err
		}

		f.State = domainFinancing.StateSubmitted
		f.StateUpdatedAt = u.now()
		if err := r.Financings.Save(ctx, f); err != nil {
			return err
		}

		dto = &SubmitResultDTO{
			FinancingID:       f.FinancingID,
			ApprovalRequestID: req.RequestID,
			State:             string(f.State),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainFinancing.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// pricingMetadata renders the snapshot figures the approval screens show,
// in display order.
func pricingMetadata(f *domainFinancing.FinancingRequest) domainApproval.Metadata {
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return domainApproval.Metadata{
		{Key: domainApproval.MetaTotalCost, Value: money(f.TotalCost)},
		{Key: domainApproval.MetaEquityAmount, Value: money(f.EquityAmount)},
		{Key: domainApproval.MetaFinancedCost, Value: money(f.FinancedCost)},
		{Key: domainApproval.MetaMinimumPrice, Value: money(f.MinimumFinancingPrice)},
		{Key: domainApproval.MetaEstimatedProfit, Value: money(f.EstimatedProfit)},
		{Key: domainApproval.MetaTenorMonths, Value: strconv.Itoa(f.TenorMonths)},
	}
}

func toDTO(f *domainFinancing.FinancingRequest) *FinancingDTO {
	return &FinancingDTO{
		FinancingID:            f.FinancingID,
		ClientID:               f.ClientID,
		LoanTypeCode:           f.LoanTypeCode,
		TotalCost:              f.TotalCost,
		AdditionalContribution: f.AdditionalContribution,
		TenorMonths:            f.TenorMonths,
		EquityPercent:          f.EquityPercent,
		EquityAmount:           f.EquityAmount,
		FinancedCost:           f.FinancedCost,
		MinimumFinancingPrice:  f.MinimumFinancingPrice,
		EstimatedProfit:        f.EstimatedProfit,
		ProfitPercent:          f.ProfitPercent,
		State:                  string(f.State),
		CreatedAt:              f.CreatedAt,
	}
}
