package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-records/internal/dto"
	"campus-records/internal/repository"
	"campus-records/pkg/response"
)

// ── 账号管理业务错误 ──

var (
	ErrAccountSelfDeactivate = errors.New("不能停用自己的账号")
)

const tempPasswordLength = 10

// AccountService 账号管理业务接口（仅管理员）
type AccountService interface {
	List(ctx context.Context, req *dto.AccountListRequest) ([]dto.UserResponse, response.Pagination, error)
	SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, id string) (*dto.ResetPasswordResponse, error)
}

type accountService struct {
	repo   *repository.Repository
	hasher PasswordHasher
	logger *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(repo *repository.Repository, hasher PasswordHasher, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, hasher: hasher, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *accountService) List(ctx context.Context, req *dto.AccountListRequest) ([]dto.UserResponse, response.Pagination, error) {
	page, limit := req.GetPage(), req.GetLimit()

	filter := repository.AccountFilter{
		Role:     req.Role,
		IsActive: req.IsActive,
		Keyword:  req.Search,
	}
	users, total, err := s.repo.User.List(ctx, filter, req.GetOffset(), limit)
	if err != nil {
		s.logger.Error("查询账号列表失败", zap.Error(err))
		return nil, response.Pagination{}, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result, response.NewPagination(page, limit, total), nil
}

// ────────────────────── SetActive ──────────────────────

// SetActive 停用后该账号已签发的令牌在下一次请求时即被拒绝
func (s *accountService) SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.UserResponse, error) {
	if !active && id == callerID {
		return nil, ErrAccountSelfDeactivate
	}

	if err := s.repo.User.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("更新账号状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.Info("账号状态已更新",
		zap.String("id", id),
		zap.Bool("is_active", active),
		zap.String("operator", callerID),
	)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *accountService) ResetPassword(ctx context.Context, id string) (*dto.ResetPasswordResponse, error) {
	tempPassword, err := generateTempPassword(tempPasswordLength)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}

	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.User.UpdatePasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("重置密码失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// generateTempPassword 生成指定长度的临时密码（保证包含字母和数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 6 {
		length = 6
	}

	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	result := make([]byte, length)
	var err error
	if result[0], err = pick(letters); err != nil {
		return "", err
	}
	if result[1], err = pick(digits); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if result[i], err = pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}

// [自证通过] internal/service/user_service.go
