package staff

import "context"

// PrivilegeSet is the flattened set of capability names a staff member's
// roles grant.
type PrivilegeSet map[string]struct{}

func (s PrivilegeSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func NewPrivilegeSet(names ...string) PrivilegeSet {
	s := make(PrivilegeSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// PrivilegeReader resolves privileges for a staff member. Staff and role
// data live in the surrounding back-office system; this engine only reads
// the resolved set and never caches it across requests.
type PrivilegeReader interface {
	Privileges(ctx context.Context, staffID string) (PrivilegeSet, error)
}

// Table: staff_members — minimal projection of the back-office staff record.
type Member struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	StaffID string `gorm:"column:staff_id;type:char(32);not null;uniqueIndex:ux_staff_members_staff_id"`
	RoleID  uint64 `gorm:"column:role_id;not null;index"`
}

func (Member) TableName() string { return "staff_members" }

// Table: role_privileges — one row per capability a role grants.
type RolePrivilege struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	RoleID    uint64 `gorm:"column:role_id;not null;index"`
	Privilege string `gorm:"column:privilege;type:varchar(64);not null"`
}

func (RolePrivilege) TableName() string { return "role_privileges" }
