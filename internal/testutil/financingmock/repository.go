package financingmock

import (
	"context"

	domain "assetfin-backend/internal/domain/financing"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, f *domain.FinancingRequest) error
	GetByFinancingIDFn          func(ctx context.Context, financingID string) (*domain.FinancingRequest, error)
	GetByFinancingIDForUpdateFn func(ctx context.Context, financingID string) (*domain.FinancingRequest, error)
	GetProposedByClientIDFn     func(ctx context.Context, clientID string) (*domain.FinancingRequest, error)
	SaveFn                      func(ctx context.Context, f *domain.FinancingRequest) error
}

func (m *Repo) Create(ctx context.Context, f *domain.FinancingRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) GetByFinancingID(ctx context.Context, financingID string) (*domain.FinancingRequest, error) {
	if m.GetByFinancingIDFn != nil {
		return m.GetByFinancingIDFn(ctx, financingID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByFinancingIDForUpdate(ctx context.Context, financingID string) (*domain.FinancingRequest, error) {
	if m.GetByFinancingIDForUpdateFn != nil {
		return m.GetByFinancingIDForUpdateFn(ctx, financingID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetProposedByClientID(ctx context.Context, clientID string) (*domain.FinancingRequest, error) {
	if m.GetProposedByClientIDFn != nil {
		return m.GetProposedByClientIDFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, f *domain.FinancingRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, f)
	}
	return nil
}
