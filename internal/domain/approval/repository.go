package approval

import (
	"context"
	"time"
)

// Filter narrows List results. Nil/zero fields are ignored.
type Filter struct {
	Status      *Status
	EntityType  *EntityType
	RequestedBy string
	From        *time.Time
	To          *time.Time
}

type Repository interface {
	// Create a new request (status pending, empty history)
	Create(ctx context.Context, r *Request) error

	// Get by public request_id
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)

	// Same, but with the row locked for update inside a transaction
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)

	// List requests matching the filter, request_date descending (stable)
	List(ctx context.Context, f Filter) ([]Request, error)

	// All requests gating one business entity, any status
	ListByEntityID(ctx context.Context, entityID string) ([]Request, error)

	// MarkDecided commits pending → to. Guarded: the UPDATE only applies
	// while status is still pending; returns false when another actor won.
	MarkDecided(ctx context.Context, id uint64, to Status) (bool, error)

	// MarkReopened resets from (a terminal status) → pending, same guard.
	MarkReopened(ctx context.Context, id uint64, from Status) (bool, error)

	// AppendAction inserts one history entry; entries are never updated.
	AppendAction(ctx context.Context, a *Action) error

	CountActions(ctx context.Context, approvalRequestID uint64) (int64, error)

	// Ordered by level ascending
	ListActions(ctx context.Context, approvalRequestID uint64) ([]Action, error)

	// Cross-request audit view, action_date ascending
	ListActionsByStaff(ctx context.Context, staffID string) ([]StaffAction, error)
}
