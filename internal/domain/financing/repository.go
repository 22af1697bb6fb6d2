package financing

import "context"

type Repository interface {
	Create(ctx context.Context, f *FinancingRequest) error
	GetByFinancingID(ctx context.Context, financingID string) (*FinancingRequest, error)
	// Row-locked variant for use inside a transaction
	GetByFinancingIDForUpdate(ctx context.Context, financingID string) (*FinancingRequest, error)
	GetProposedByClientID(ctx context.Context, clientID string) (*FinancingRequest, error)
	Save(ctx context.Context, f *FinancingRequest) error
}
