package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
// 角色扩展字段按角色拆分为显式结构体，与 role 不匹配时拒绝
type RegisterRequest struct {
	Email       string  `json:"email"         binding:"required,email,max=255"`
	Password    string  `json:"password"      binding:"required,min=6,max=72"`
	Role        string  `json:"role"          binding:"required,oneof=STUDENT FACULTY STAFF ADMIN"`
	FirstName   string  `json:"first_name"    binding:"required,notblank,max=100"`
	LastName    string  `json:"last_name"     binding:"required,notblank,max=100"`
	MiddleName  *string `json:"middle_name"   binding:"omitempty,max=100"`
	Phone       *string `json:"phone"         binding:"omitempty,max=30"`
	Address     *string `json:"address"       binding:"omitempty,max=500"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender"        binding:"omitempty,oneof=MALE FEMALE OTHER"`

	Student *StudentFields `json:"student"`
	Faculty *FacultyFields `json:"faculty"`
	Staff   *StaffFields   `json:"staff"`
}

// StudentFields 学生注册扩展字段
type StudentFields struct {
	CurrentSemester *int `json:"current_semester" binding:"omitempty,min=1,max=12"`
}

// FacultyFields 教师注册扩展字段
type FacultyFields struct {
	Department    *string `json:"department"    binding:"omitempty,max=150"`
	Designation   *string `json:"designation"   binding:"omitempty,max=100"`
	Qualification *string `json:"qualification" binding:"omitempty,max=200"`
	Experience    *int    `json:"experience"    binding:"omitempty,min=0,max=60"`
}

// StaffFields 职员注册扩展字段
type StaffFields struct {
	Department  *string `json:"department"  binding:"omitempty,max=150"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=6,max=72"`
}

// [自证通过] internal/dto/auth.go
