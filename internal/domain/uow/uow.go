package uow

import (
	"context"

	"assetfin-backend/internal/domain/approval"
	"assetfin-backend/internal/domain/financing"
)

type Repos struct {
	Financings financing.Repository
	Approvals  approval.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the financing row first, then pass it in
	WithinFinancingTx(ctx context.Context, financingID string, fn func(r Repos, f *financing.FinancingRequest) error) error
}
