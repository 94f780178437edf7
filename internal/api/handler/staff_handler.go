package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-records/internal/dto"
	"campus-records/internal/service"
	"campus-records/pkg/response"
)

const (
	codeStaffNotFound = 14001
	msgStaffNotFound  = "staff not found"
)

// StaffHandler 职员目录 HTTP 处理器
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// ListStaff GET /api/v1/staff
func (h *StaffHandler) ListStaff(c *gin.Context) {
	var req dto.DirectoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, bindingErrors(err))
		return
	}

	list, p, err := h.staffSvc.List(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OKPage(c, "staff", list, p)
}

// GetStaff GET /api/v1/staff/:id
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := pathID(c, codeStaffNotFound, msgStaffNotFound)
	if !ok {
		return
	}

	st, err := h.staffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, codeStaffNotFound, msgStaffNotFound)
			return
		}
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OK(c, st)
}
