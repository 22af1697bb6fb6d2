package mysql

import (
	"context"
	"errors"

	staffDomain "assetfin-backend/internal/domain/staff"

	"gorm.io/gorm"
)

type StaffRepository struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) *StaffRepository { return &StaffRepository{db: db} }

// Privileges resolves staff → role → capability set. An unknown staff id
// yields an empty set, not an error: authorization decides, not lookup.
func (r *StaffRepository) Privileges(ctx context.Context, staffID string) (staffDomain.PrivilegeSet, error) {
	var m staffDomain.Member
	res := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return staffDomain.PrivilegeSet{}, nil
		}
		return nil, res.Error
	}

	var rows []staffDomain.RolePrivilege
	if err := r.db.WithContext(ctx).Where("role_id = ?", m.RoleID).Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(staffDomain.PrivilegeSet, len(rows))
	for _, p := range rows {
		set[p.Privilege] = struct{}{}
	}
	return set, nil
}
