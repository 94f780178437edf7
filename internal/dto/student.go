package dto

// ── 学生目录 DTO ──

// DirectoryListRequest 目录列表查询参数（学生/教师/职员共用）
type DirectoryListRequest struct {
	PaginationRequest
	Search string `form:"search" binding:"omitempty,max=100"`
}

// UpdateStudentRequest 更新学生请求
// 学生档案字段与个人资料字段分别写入各自的表
type UpdateStudentRequest struct {
	CurrentSemester *int     `json:"current_semester" binding:"omitempty,min=1,max=12"`
	GPA             *float64 `json:"gpa"              binding:"omitempty,min=0,max=10"`
	IsGraduated     *bool    `json:"is_graduated"`
	GraduationDate  *string  `json:"graduation_date"`

	FirstName   *string `json:"first_name"    binding:"omitempty,notblank,max=100"`
	LastName    *string `json:"last_name"     binding:"omitempty,notblank,max=100"`
	MiddleName  *string `json:"middle_name"   binding:"omitempty,max=100"`
	Phone       *string `json:"phone"         binding:"omitempty,max=30"`
	Address     *string `json:"address"       binding:"omitempty,max=500"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender"        binding:"omitempty,oneof=MALE FEMALE OTHER"`
}

// StudentStatsResponse 学生统计
type StudentStatsResponse struct {
	TotalCourses         int      `json:"total_courses"`
	AttendancePercentage float64  `json:"attendance_percentage"`
	TotalFees            float64  `json:"total_fees"`
	PaidFees             float64  `json:"paid_fees"`
	PendingFees          float64  `json:"pending_fees"`
	GPA                  *float64 `json:"gpa"`
	CurrentSemester      int      `json:"current_semester"`
	IsGraduated          bool     `json:"is_graduated"`
}
