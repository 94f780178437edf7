package model

import "time"

// ── 考勤 / 缴费状态 ──

const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
	AttendanceExcused = "EXCUSED"

	FeePaid    = "PAID"
	FeePending = "PENDING"
	FeeOverdue = "OVERDUE"
	FeeWaived  = "WAIVED"
)

// Student 学生档案表 — 对应 students
// 选课、考勤、成绩、缴费记录随学生档案级联删除（由数据库外键保证）
type Student struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          string     `gorm:"type:uuid;not null"                             json:"user_id"`
	StudentNo       string     `gorm:"type:varchar(32);not null"                      json:"student_no"`
	CurrentSemester int        `gorm:"not null;default:1"                             json:"current_semester"`
	GPA             *float64   `gorm:"column:gpa;type:numeric(4,2)"                   json:"gpa"`
	IsGraduated     bool       `gorm:"not null;default:false"                         json:"is_graduated"`
	GraduationDate  *time.Time `gorm:"type:date"                                      json:"graduation_date"`
	Timestamps

	// 关联
	User        *User        `gorm:"foreignKey:UserID;references:ID"    json:"user,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:StudentID;references:ID" json:"enrollments,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:StudentID;references:ID" json:"attendances,omitempty"`
	Grades      []Grade      `gorm:"foreignKey:StudentID;references:ID" json:"grades,omitempty"`
	Fees        []Fee        `gorm:"foreignKey:StudentID;references:ID" json:"fees,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Course 课程表 — 对应 courses
type Course struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code       string    `gorm:"type:varchar(32);not null"                      json:"code"`
	Name       string    `gorm:"type:varchar(200);not null"                     json:"name"`
	Credits    int       `gorm:"not null;default:3"                             json:"credits"`
	Department *string   `gorm:"type:varchar(150)"                              json:"department,omitempty"`
	Semester   *int      `json:"semester,omitempty"`
	FacultyID  *string   `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Enrollment 选课记录 — 对应 enrollments
type Enrollment struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID  string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID   string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Status     string    `gorm:"type:varchar(20);not null;default:'ENROLLED'"   json:"status"`
	EnrolledAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"enrolled_at"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Course *Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// Attendance 考勤记录 — 对应 attendances
type Attendance struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID  *string   `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	FacultyID *string   `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	Date      time.Time `gorm:"type:date;not null"                             json:"date"`
	Status    string    `gorm:"type:varchar(20);not null"                      json:"status"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 记录考勤的教师
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:ID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }

// Grade 成绩记录 — 对应 grades
type Grade struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID  *string   `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	Semester  int       `gorm:"not null"                                       json:"semester"`
	ExamType  string    `gorm:"type:varchar(50);not null"                      json:"exam_type"`
	Marks     float64   `gorm:"type:numeric(6,2);not null"                     json:"marks"`
	MaxMarks  float64   `gorm:"type:numeric(6,2);not null"                     json:"max_marks"`
	Grade     *string   `gorm:"type:varchar(5)"                                json:"grade,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

// Fee 缴费记录 — 对应 fees
type Fee struct {
	ID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID string     `gorm:"type:uuid;not null"                             json:"student_id"`
	FeeType   string     `gorm:"type:varchar(50);not null"                      json:"fee_type"`
	Amount    float64    `gorm:"type:numeric(12,2);not null"                    json:"amount"`
	DueDate   *time.Time `gorm:"type:date"                                      json:"due_date,omitempty"`
	PaidDate  *time.Time `gorm:"type:date"                                      json:"paid_date,omitempty"`
	Status    string     `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Fee) TableName() string { return "fees" }
