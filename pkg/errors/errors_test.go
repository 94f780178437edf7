package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateUniqueViolation(t *testing.T) {
	other := errors.New("connection reset")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}, ErrDuplicateEmail},
		{"student_no", &pgconn.PgError{Code: "23505", ConstraintName: "uq_students_student_no"}, ErrDuplicateIdentifier},
		{"employee_no wrapped", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_faculty_employee_no"}), ErrDuplicateIdentifier},
		{"other driver error", other, other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TranslateUniqueViolation(tc.in)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Errorf("期望 %v，实际 %v", tc.want, got)
			}
		})
	}

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "students_user_id_fkey"}
	if got := TranslateUniqueViolation(fk); got != error(fk) {
		t.Errorf("非唯一约束错误应原样返回，实际 %v", got)
	}
	userIDDup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_students_user_id"}
	if got := TranslateUniqueViolation(userIDDup); got != error(userIDDup) {
		t.Errorf("user_id 唯一冲突应原样返回，实际 %v", got)
	}
}
