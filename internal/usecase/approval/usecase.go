package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainApproval "assetfin-backend/internal/domain/approval"
	"assetfin-backend/internal/domain/staff"
	"assetfin-backend/internal/domain/uow"
	"assetfin-backend/pkg/id"
)

// Minimum comment length when rejecting; approvals may omit comments.
const minRejectionCommentLen = 10

type Usecase struct {
	repo  domainApproval.Repository
	privs staff.PrivilegeReader
	uow   uow.UnitOfWork
	now   func() time.Time
}

// NewUsecase: repo for reads, privilege reader for server-side authorization,
// UoW for the decide-and-append transaction.
func NewUsecase(repo domainApproval.Repository, privs staff.PrivilegeReader, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, privs: privs, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*RequestDTO, error) {
	entityType, err := domainApproval.ParseEntityType(in.EntityTypeCode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.EntityID) == "" {
		return nil, fmt.Errorf("%w: entity id required", domainApproval.ErrValidation)
	}
	if strings.TrimSpace(in.RequestedBy) == "" {
		return nil, fmt.Errorf("%w: requester required", domainApproval.ErrValidation)
	}

	r := &domainApproval.Request{
		RequestID:   id.NewID32(),
		EntityType:  entityType,
		EntityID:    in.EntityID,
		RequestedBy: in.RequestedBy,
		RequestDate: u.now(),
		Status:      domainApproval.StatusPending,
		Notes:       in.Notes,
		Metadata:    in.Metadata,
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRequestDTO(r, nil), nil
}

// Process commits a decision on a pending request. Preconditions are checked
// in a fixed order, first failure wins; on success the status flip and the
// history append land in one transaction. The guarded status update makes the
// transition at-most-once: a concurrent second caller sees ErrInvalidState.
func (u *Usecase) Process(ctx context.Context, in ProcessInput) (*RequestDTO, error) {
	staffID := strings.TrimSpace(in.StaffID)
	if staffID == "" {
		return nil, fmt.Errorf("%w: staff id required", domainApproval.ErrValidation)
	}
	decision := domainApproval.Decision(in.Decision)
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: invalid decision", domainApproval.ErrValidation)
	}
	comments := strings.TrimSpace(in.Comments)
	if decision == domainApproval.DecisionReject && len(comments) < minRejectionCommentLen {
		return nil, fmt.Errorf("%w: rejection requires comments with at least %d characters",
			domainApproval.ErrValidation, minRejectionCommentLen)
	}

	req, err := u.repo.GetByRequestID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domainApproval.StatusPending {
		return nil, domainApproval.ErrInvalidState
	}
	if err := u.authorize(ctx, staffID, domainApproval.ProcessPrivilege(req.EntityType)); err != nil {
		return nil, err
	}

	var dto *RequestDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ok, err := r.Approvals.MarkDecided(ctx, req.ID, decision.Outcome())
		if err != nil {
			return err
		}
		if !ok {
			// another actor decided it between our read and this update
			return domainApproval.ErrInvalidState
		}

		count, err := r.Approvals.CountActions(ctx, req.ID)
		if err != nil {
			return err
		}
		action := &domainApproval.Action{
			ApprovalRequestID: req.ID,
			Level:             int(count) + 1,
			ActionedBy:        staffID,
			ActionDate:        u.now(),
			Status:            decision.Outcome(),
			Comments:          comments,
		}
		if err := r.Approvals.AppendAction(ctx, action); err != nil {
			return err
		}

		// read back inside the tx so the caller sees its own write
		updated, err := r.Approvals.GetByRequestID(ctx, in.RequestID)
		if err != nil {
			return err
		}
		actions, err := r.Approvals.ListActions(ctx, req.ID)
		if err != nil {
			return err
		}
		dto = toRequestDTO(updated, actions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reopen resets a decided request to pending so it can go through another
// decision round. A separate privilege gates it; history stays untouched, so
// the next decision's level continues the sequence.
func (u *Usecase) Reopen(ctx context.Context, in ReopenInput) (*RequestDTO, error) {
	staffID := strings.TrimSpace(in.StaffID)
	if staffID == "" {
		return nil, fmt.Errorf("%w: staff id required", domainApproval.ErrValidation)
	}

	req, err := u.repo.GetByRequestID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.Terminal() {
		return nil, domainApproval.ErrInvalidState
	}
	if err := u.authorize(ctx, staffID, domainApproval.ReopenPrivilege(req.EntityType)); err != nil {
		return nil, err
	}

	var dto *RequestDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ok, err := r.Approvals.MarkReopened(ctx, req.ID, req.Status)
		if err != nil {
			return err
		}
		if !ok {
			return domainApproval.ErrInvalidState
		}
		updated, err := r.Approvals.GetByRequestID(ctx, in.RequestID)
		if err != nil {
			return err
		}
		actions, err := r.Approvals.ListActions(ctx, req.ID)
		if err != nil {
			return err
		}
		dto = toRequestDTO(updated, actions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	req, err := u.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actions, err := u.repo.ListActions(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return toRequestDTO(req, actions), nil
}

func (u *Usecase) List(ctx context.Context, f ListFilter) ([]RequestDTO, error) {
	df := domainApproval.Filter{RequestedBy: f.RequestedBy, From: f.From, To: f.To}
	if f.Status != "" {
		s := domainApproval.Status(f.Status)
		if s != domainApproval.StatusPending && !s.Terminal() {
			return nil, fmt.Errorf("%w: unknown status %q", domainApproval.ErrValidation, f.Status)
		}
		df.Status = &s
	}
	if f.EntityTypeCode != nil {
		et, err := domainApproval.ParseEntityType(*f.EntityTypeCode)
		if err != nil {
			return nil, err
		}
		df.EntityType = &et
	}

	rows, err := u.repo.List(ctx, df)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toRequestDTO(&rows[i], nil))
	}
	return out, nil
}

func (u *Usecase) History(ctx context.Context, requestID string) ([]ActionDTO, error) {
	req, err := u.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actions, err := u.repo.ListActions(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return toActionDTOs(actions), nil
}

func (u *Usecase) HistoryByStaff(ctx context.Context, staffID string) ([]StaffActionDTO, error) {
	if strings.TrimSpace(staffID) == "" {
		return nil, fmt.Errorf("%w: staff id required", domainApproval.ErrValidation)
	}
	actions, err := u.repo.ListActionsByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	out := make([]StaffActionDTO, 0, len(actions))
	for _, a := range actions {
		out = append(out, StaffActionDTO{
			RequestID: a.RequestID,
			ActionDTO: ActionDTO{
				Level:      a.Level,
				ActionedBy: a.ActionedBy,
				ActionDate: a.ActionDate,
				Status:     string(a.Status),
				Comments:   a.Comments,
			},
		})
	}
	return out, nil
}

// CheckCompletion reports whether every approval request gating the entity
// has been decided. An entity with no requests at all reports incomplete:
// downstream processing (e.g. disbursement) must not unlock on a vacuous
// "all of zero".
func (u *Usecase) CheckCompletion(ctx context.Context, entityID string) (*CompletionDTO, error) {
	if strings.TrimSpace(entityID) == "" {
		return nil, fmt.Errorf("%w: entity id required", domainApproval.ErrValidation)
	}
	rows, err := u.repo.ListByEntityID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	outstanding := make([]string, 0)
	for i := range rows {
		if rows[i].Status == domainApproval.StatusPending {
			outstanding = append(outstanding, rows[i].RequestID)
		}
	}
	return &CompletionDTO{
		Complete:    len(rows) > 0 && len(outstanding) == 0,
		Outstanding: outstanding,
	}, nil
}

func (u *Usecase) authorize(ctx context.Context, staffID, privilege string) error {
	set, err := u.privs.Privileges(ctx, staffID)
	if err != nil {
		return err
	}
	if !set.Has(privilege) {
		return domainApproval.ErrUnauthorized
	}
	return nil
}
