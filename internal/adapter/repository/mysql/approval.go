package mysql

import (
	"context"
	"errors"

	approvalDomain "assetfin-backend/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

// Tx helper — bind this repo to a transaction when needed.
func (r *ApprovalRepository) Tx(ctx context.Context, fn func(repo *ApprovalRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ApprovalRepository{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvalDomain.ErrNotFound
	}
	return err
}

func (r *ApprovalRepository) Create(ctx context.Context, req *approvalDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ApprovalRepository) GetByRequestID(ctx context.Context, requestID string) (*approvalDomain.Request, error) {
	var out approvalDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error)
	}
	return &out, nil
}

func (r *ApprovalRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*approvalDomain.Request, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no row locks
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out approvalDomain.Request
	res := q.Where("request_id = ?", requestID).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error)
	}
	return &out, nil
}

func (r *ApprovalRepository) List(ctx context.Context, f approvalDomain.Filter) ([]approvalDomain.Request, error) {
	q := r.db.WithContext(ctx).Model(&approvalDomain.Request{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.EntityType != nil {
		q = q.Where("entity_type = ?", *f.EntityType)
	}
	if f.RequestedBy != "" {
		q = q.Where("requested_by = ?", f.RequestedBy)
	}
	if f.From != nil {
		q = q.Where("request_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("request_date <= ?", *f.To)
	}

	var out []approvalDomain.Request
	// id tiebreak keeps the ordering stable for equal request dates
	res := q.Order("request_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *ApprovalRepository) ListByEntityID(ctx context.Context, entityID string) ([]approvalDomain.Request, error) {
	var out []approvalDomain.Request
	res := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("request_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// MarkDecided is the compare-and-set that enforces at-most-one committed
// transition: the WHERE clause only matches while the row is still pending.
func (r *ApprovalRepository) MarkDecided(ctx context.Context, id uint64, to approvalDomain.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.Request{}).
		Where("id = ? AND status = ?", id, approvalDomain.StatusPending).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ApprovalRepository) MarkReopened(ctx context.Context, id uint64, from approvalDomain.Status) (bool, error) {
	if !from.Terminal() {
		return false, approvalDomain.ErrInvalidState
	}
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.Request{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", approvalDomain.StatusPending)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ApprovalRepository) AppendAction(ctx context.Context, a *approvalDomain.Action) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) CountActions(ctx context.Context, approvalRequestID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.Action{}).
		Where("approval_request_id = ?", approvalRequestID).
		Count(&n)
	return n, res.Error
}

func (r *ApprovalRepository) ListActions(ctx context.Context, approvalRequestID uint64) ([]approvalDomain.Action, error) {
	var out []approvalDomain.Action
	res := r.db.WithContext(ctx).
		Where("approval_request_id = ?", approvalRequestID).
		Order("level ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApprovalRepository) ListActionsByStaff(ctx context.Context, staffID string) ([]approvalDomain.StaffAction, error) {
	var out []approvalDomain.StaffAction
	res := r.db.WithContext(ctx).
		Table("approval_actions").
		Select("approval_requests.request_id, approval_actions.level, approval_actions.actioned_by, approval_actions.action_date, approval_actions.status, approval_actions.comments").
		Joins("JOIN approval_requests ON approval_requests.id = approval_actions.approval_request_id").
		Where("approval_actions.actioned_by = ?", staffID).
		Order("approval_actions.action_date ASC, approval_actions.id ASC").
		Scan(&out)
	return out, res.Error
}
