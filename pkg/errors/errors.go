package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateEmail 违反邮箱唯一索引
	ErrDuplicateEmail = errors.New("邮箱已被注册")
	// ErrDuplicateIdentifier 违反学号/工号唯一索引
	ErrDuplicateIdentifier = errors.New("编号冲突")
)

// pgUniqueViolation PostgreSQL unique_violation 错误码
const pgUniqueViolation = "23505"

// TranslateUniqueViolation 将数据库唯一约束冲突转换为业务可识别的错误
// 非唯一约束错误原样返回
func TranslateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrDuplicateEmail
	case strings.HasSuffix(pgErr.ConstraintName, "_no"):
		return ErrDuplicateIdentifier
	default:
		return err
	}
}
