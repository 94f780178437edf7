package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-records/internal/dto"
	"campus-records/internal/model"
	"campus-records/internal/repository"
	"campus-records/pkg/response"
)

var (
	ErrFacultyNotFound = errors.New("教师不存在")
)

// FacultyService 教师目录业务接口（只读）
type FacultyService interface {
	List(ctx context.Context, req *dto.DirectoryListRequest) ([]model.Faculty, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
}

type facultyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFacultyService 创建 FacultyService 实例
func NewFacultyService(repo *repository.Repository, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, logger: logger}
}

func (s *facultyService) List(ctx context.Context, req *dto.DirectoryListRequest) ([]model.Faculty, response.Pagination, error) {
	page, limit := req.GetPage(), req.GetLimit()

	list, total, err := s.repo.Faculty.List(ctx, req.Search, req.GetOffset(), limit)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, response.Pagination{}, err
	}
	if list == nil {
		list = []model.Faculty{}
	}
	return list, response.NewPagination(page, limit, total), nil
}

func (s *facultyService) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	f, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return f, nil
}
