package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campus-records/pkg/response"
)

// MustGetAccountID 从 Gin 上下文中安全提取 account_id。
// 如果 JWT 中间件未正确注入 account_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetAccountID(c *gin.Context) (string, bool) {
	return mustGetString(c, "account_id")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "authentication required")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "authentication required")
		return "", false
	}
	return s, true
}

// pathID 读取路径参数 :id，非 UUID 视为资源不存在，直接写入 404 且不访问存储
func pathID(c *gin.Context, notFoundCode int, notFoundMsg string) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, notFoundCode, notFoundMsg)
		return "", false
	}
	return id.String(), true
}
