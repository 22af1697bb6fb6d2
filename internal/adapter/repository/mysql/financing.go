package mysql

import (
	"context"

	financingDomain "assetfin-backend/internal/domain/financing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinancingRepository struct{ db *gorm.DB }

func NewFinancingRepository(db *gorm.DB) *FinancingRepository { return &FinancingRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *FinancingRepository) Tx(ctx context.Context, fn func(repo financingDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FinancingRepository{db: tx})
	})
}

func (r *FinancingRepository) Create(ctx context.Context, f *financingDomain.FinancingRequest) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FinancingRepository) Save(ctx context.Context, f *financingDomain.FinancingRequest) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FinancingRepository) GetByFinancingID(ctx context.Context, financingID string) (*financingDomain.FinancingRequest, error) {
	var out financingDomain.FinancingRequest
	res := r.db.WithContext(ctx).Where("financing_id = ?", financingID).First(&out)
	return &out, res.Error
}

func (r *FinancingRepository) GetByFinancingIDForUpdate(ctx context.Context, financingID string) (*financingDomain.FinancingRequest, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no row locks
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out financingDomain.FinancingRequest
	res := q.Where("financing_id = ?", financingID).First(&out)
	return &out, res.Error
}

func (r *FinancingRepository) GetProposedByClientID(ctx context.Context, clientID string) (*financingDomain.FinancingRequest, error) {
	var out financingDomain.FinancingRequest
	res := r.db.WithContext(ctx).
		Where("client_id = ? AND state = ?", clientID, financingDomain.StateProposed).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}
