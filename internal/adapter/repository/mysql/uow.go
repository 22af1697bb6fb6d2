package mysql

import (
	"context"

	"assetfin-backend/internal/domain/financing"
	"assetfin-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Financings: &FinancingRepository{db: tx},
			Approvals:  &ApprovalRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinFinancingTx(ctx context.Context, financingID string, fn func(r uow.Repos, f *financing.FinancingRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Financings: &FinancingRepository{db: tx},
			Approvals:  &ApprovalRepository{db: tx},
		}
		// lock the financing row up-front to prevent races
		f, err := r.Financings.GetByFinancingIDForUpdate(ctx, financingID)
		if err != nil {
			return err
		}
		return fn(r, f)
	})
}
