package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"campus-records/internal/service"
	"campus-records/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStudents 导出学生目录
// GET /api/v1/students/export?search=xxx
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	search := c.Query("search")
	if len(search) > 100 {
		response.ValidationError(c, []response.FieldError{{Field: "search", Message: "must be at most 100 characters"}})
		return
	}

	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context(), search)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoStudents):
		response.NotFound(c, 15001, "no students match the filter")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
