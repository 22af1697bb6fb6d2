package approvalmock

import (
	"context"

	domain "assetfin-backend/internal/domain/approval"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.Request, error)
	ListFn                    func(ctx context.Context, f domain.Filter) ([]domain.Request, error)
	ListByEntityIDFn          func(ctx context.Context, entityID string) ([]domain.Request, error)
	MarkDecidedFn             func(ctx context.Context, id uint64, to domain.Status) (bool, error)
	MarkReopenedFn            func(ctx context.Context, id uint64, from domain.Status) (bool, error)
	AppendActionFn            func(ctx context.Context, a *domain.Action) error
	CountActionsFn            func(ctx context.Context, approvalRequestID uint64) (int64, error)
	ListActionsFn             func(ctx context.Context, approvalRequestID uint64) ([]domain.Action, error)
	ListActionsByStaffFn      func(ctx context.Context, staffID string) ([]domain.StaffAction, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Request, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) ListByEntityID(ctx context.Context, entityID string) ([]domain.Request, error) {
	if m.ListByEntityIDFn != nil {
		return m.ListByEntityIDFn(ctx, entityID)
	}
	return nil, nil
}

func (m *Repo) MarkDecided(ctx context.Context, id uint64, to domain.Status) (bool, error) {
	if m.MarkDecidedFn != nil {
		return m.MarkDecidedFn(ctx, id, to)
	}
	return true, nil
}

func (m *Repo) MarkReopened(ctx context.Context, id uint64, from domain.Status) (bool, error) {
	if m.MarkReopenedFn != nil {
		return m.MarkReopenedFn(ctx, id, from)
	}
	return true, nil
}

func (m *Repo) AppendAction(ctx context.Context, a *domain.Action) error {
	if m.AppendActionFn != nil {
		return m.AppendActionFn(ctx, a)
	}
	return nil
}

func (m *Repo) CountActions(ctx context.Context, approvalRequestID uint64) (int64, error) {
	if m.CountActionsFn != nil {
		return m.CountActionsFn(ctx, approvalRequestID)
	}
	return 0, nil
}

func (m *Repo) ListActions(ctx context.Context, approvalRequestID uint64) ([]domain.Action, error) {
	if m.ListActionsFn != nil {
		return m.ListActionsFn(ctx, approvalRequestID)
	}
	return nil, nil
}

func (m *Repo) ListActionsByStaff(ctx context.Context, staffID string) ([]domain.StaffAction, error) {
	if m.ListActionsByStaffFn != nil {
		return m.ListActionsByStaffFn(ctx, staffID)
	}
	return nil, nil
}
