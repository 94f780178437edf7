package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-records/internal/model"
)

// FacultyRepository 教师档案数据访问接口（只读目录）
type FacultyRepository interface {
	List(ctx context.Context, keyword string, offset, limit int) ([]model.Faculty, int64, error)
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
}

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo 创建 FacultyRepository 实例
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) List(ctx context.Context, keyword string, offset, limit int) ([]model.Faculty, int64, error) {
	var list []model.Faculty
	var total int64

	scope := KeywordFilter{Keyword: keyword, Table: "faculty", DirectColumns: []string{"employee_no"}}.Scope()

	if err := r.db.WithContext(ctx).Model(&model.Faculty{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("User.Profile").
		Order("faculty.created_at DESC").
		Order("faculty.id").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *facultyRepo) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	var f model.Faculty
	if err := r.db.WithContext(ctx).Preload("User.Profile").Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}
