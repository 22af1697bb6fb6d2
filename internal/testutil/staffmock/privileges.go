package staffmock

import (
	"context"

	domain "assetfin-backend/internal/domain/staff"
)

// Reader is a function-backed mock of staff.PrivilegeReader. The zero value
// grants nothing.
type Reader struct {
	PrivilegesFn func(ctx context.Context, staffID string) (domain.PrivilegeSet, error)
}

func (m *Reader) Privileges(ctx context.Context, staffID string) (domain.PrivilegeSet, error) {
	if m.PrivilegesFn != nil {
		return m.PrivilegesFn(ctx, staffID)
	}
	return domain.PrivilegeSet{}, nil
}

// Granting returns a reader that grants exactly the given privileges to any
// staff id.
func Granting(privileges ...string) *Reader {
	set := domain.NewPrivilegeSet(privileges...)
	return &Reader{
		PrivilegesFn: func(context.Context, string) (domain.PrivilegeSet, error) {
			return set, nil
		},
	}
}
