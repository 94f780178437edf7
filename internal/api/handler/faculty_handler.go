package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-records/internal/dto"
	"campus-records/internal/service"
	"campus-records/pkg/response"
)

const (
	codeFacultyNotFound = 13001
	msgFacultyNotFound  = "faculty not found"
)

// FacultyHandler 教师目录 HTTP 处理器
type FacultyHandler struct {
	facultySvc service.FacultyService
}

// NewFacultyHandler 创建 FacultyHandler
func NewFacultyHandler(facultySvc service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultySvc: facultySvc}
}

// ListFaculty GET /api/v1/faculty
func (h *FacultyHandler) ListFaculty(c *gin.Context) {
	var req dto.DirectoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, bindingErrors(err))
		return
	}

	list, p, err := h.facultySvc.List(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OKPage(c, "faculty", list, p)
}

// GetFaculty GET /api/v1/faculty/:id
func (h *FacultyHandler) GetFaculty(c *gin.Context) {
	id, ok := pathID(c, codeFacultyNotFound, msgFacultyNotFound)
	if !ok {
		return
	}

	f, err := h.facultySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			response.NotFound(c, codeFacultyNotFound, msgFacultyNotFound)
			return
		}
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OK(c, f)
}
