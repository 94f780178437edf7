package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-records/internal/model"
)

// StaffRepository 职员档案数据访问接口（只读目录）
type StaffRepository interface {
	List(ctx context.Context, keyword string, offset, limit int) ([]model.Staff, int64, error)
	GetByID(ctx context.Context, id string) (*model.Staff, error)
}

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实例
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) List(ctx context.Context, keyword string, offset, limit int) ([]model.Staff, int64, error) {
	var list []model.Staff
	var total int64

	scope := KeywordFilter{Keyword: keyword, Table: "staff", DirectColumns: []string{"employee_no"}}.Scope()

	if err := r.db.WithContext(ctx).Model(&model.Staff{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("User.Profile").
		Order("staff.created_at DESC").
		Order("staff.id").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var s model.Staff
	if err := r.db.WithContext(ctx).Preload("User.Profile").Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
