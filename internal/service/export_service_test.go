package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestExportService_ExportStudents_NoStudents(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.repo, zap.NewNop())

	_, _, err := svc.ExportStudents(context.Background(), "")
	if !errors.Is(err, ErrExportNoStudents) {
		t.Errorf("期望 ErrExportNoStudents，实际: %v", err)
	}
}

func TestExportService_ExportStudents_Success(t *testing.T) {
	repos := newTestRepos()
	now := time.Now()
	gpa := 7.75
	st := repos.student.add("s1", "STU2026ABCD2345", "Asha", "Smith", now)
	st.GPA = &gpa
	repos.student.add("s2", "STU2026EFGH6789", "Ravi", "Kumar", now.Add(-time.Hour))

	svc := NewExportService(repos.repo, zap.NewNop())
	buf, filename, err := svc.ExportStudents(context.Background(), "smith")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename == "" {
		t.Error("文件名不应为空")
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出文件: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Students")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望 1 行表头 + 1 行数据，实际 %d 行", len(rows))
	}
	if rows[0][0] != "Student No" {
		t.Errorf("表头不符: %v", rows[0])
	}
	if rows[1][0] != "STU2026ABCD2345" || rows[1][1] != "Asha" || rows[1][5] != "7.75" {
		t.Errorf("数据行不符: %v", rows[1])
	}
}
