package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"campus-records/config"
	"campus-records/internal/dto"
	"campus-records/internal/repository"
	"campus-records/internal/service"
	"campus-records/pkg/database"
	"campus-records/pkg/jwt"
	applogger "campus-records/pkg/logger"
	"campus-records/pkg/password"
)

const campusAddress = "VIT-AP University, Amaravati, Andhra Pradesh"

// 幂等初始化默认账号：admin / faculty / student
// 账号已存在时跳过
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	auth := service.NewAuthService(
		repo,
		jwt.NewManager(&cfg.Auth),
		password.NewHasher(cfg.Auth.BcryptCost),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	for _, req := range defaultAccounts(&cfg.Seed) {
		_, err := auth.Register(ctx, req)
		switch {
		case err == nil:
			created++
			logger.Info("默认账号已创建", zap.String("email", req.Email), zap.String("role", req.Role))
		case errors.Is(err, service.ErrDuplicateAccount):
			logger.Info("默认账号已存在，跳过", zap.String("email", req.Email))
		default:
			logger.Fatal("创建默认账号失败", zap.String("email", req.Email), zap.Error(err))
		}
	}

	logger.Info("默认账号初始化完成", zap.Int("created", created))
}

func defaultAccounts(seed *config.SeedConfig) []*dto.RegisterRequest {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	return []*dto.RegisterRequest{
		{
			Email:     "admin@" + seed.EmailDomain,
			Password:  seed.AdminPassword,
			Role:      "ADMIN",
			FirstName: "Admin",
			LastName:  "User",
			Phone:     str("+91-1234567890"),
			Address:   str(campusAddress),
		},
		{
			Email:     "faculty@" + seed.EmailDomain,
			Password:  seed.FacultyPassword,
			Role:      "FACULTY",
			FirstName: "John",
			LastName:  "Doe",
			Phone:     str("+91-1234567891"),
			Address:   str(campusAddress),
			Faculty: &dto.FacultyFields{
				Department:    str("Computer Science & Engineering"),
				Designation:   str("Assistant Professor"),
				Qualification: str("Ph.D. Computer Science"),
				Experience:    num(8),
			},
		},
		{
			Email:     "student@" + seed.EmailDomain,
			Password:  seed.StudentPassword,
			Role:      "STUDENT",
			FirstName: "Jane",
			LastName:  "Smith",
			Phone:     str("+91-1234567892"),
			Address:   str(campusAddress),
			Student:   &dto.StudentFields{CurrentSemester: num(3)},
		},
	}
}
