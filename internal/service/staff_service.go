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
	ErrStaffNotFound = errors.New("职员不存在")
)

// StaffService 职员目录业务接口（只读）
type StaffService interface {
	List(ctx context.Context, req *dto.DirectoryListRequest) ([]model.Staff, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*model.Staff, error)
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

func (s *staffService) List(ctx context.Context, req *dto.DirectoryListRequest) ([]model.Staff, response.Pagination, error) {
	page, limit := req.GetPage(), req.GetLimit()

	list, total, err := s.repo.Staff.List(ctx, req.Search, req.GetOffset(), limit)
	if err != nil {
		s.logger.Error("查询职员列表失败", zap.Error(err))
		return nil, response.Pagination{}, err
	}
	if list == nil {
		list = []model.Staff{}
	}
	return list, response.NewPagination(page, limit, total), nil
}

func (s *staffService) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	st, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("查询职员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return st, nil
}
