package uowmock

import (
	"context"

	"assetfin-backend/internal/domain/financing"
	"assetfin-backend/internal/domain/uow"
)

// UoW is a function-backed mock of uow.UnitOfWork. By default WithinTx just
// runs the callback against the provided Repos (no transaction semantics).
type UoW struct {
	Repos uow.Repos

	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinFinancingTxFn func(ctx context.Context, financingID string, fn func(r uow.Repos, f *financing.FinancingRequest) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinFinancingTx(ctx context.Context, financingID string, fn func(r uow.Repos, f *financing.FinancingRequest) error) error {
	if m.WithinFinancingTxFn != nil {
		return m.WithinFinancingTxFn(ctx, financingID, fn)
	}
	f, err := m.Repos.Financings.GetByFinancingIDForUpdate(ctx, financingID)
	if err != nil {
		return err
	}
	return fn(m.Repos, f)
}
