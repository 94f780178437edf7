package model

// Faculty 教师档案表 — 对应 faculty
type Faculty struct {
	ID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        string  `gorm:"type:uuid;not null"                             json:"user_id"`
	EmployeeNo    string  `gorm:"type:varchar(32);not null"                      json:"employee_no"`
	Department    string  `gorm:"type:varchar(150);not null"                     json:"department"`
	Designation   string  `gorm:"type:varchar(100);not null"                     json:"designation"`
	Qualification *string `gorm:"type:varchar(200)"                              json:"qualification,omitempty"`
	Experience    *int    `json:"experience,omitempty"`
	Timestamps

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculty" }

// Staff 职员档案表 — 对应 staff
type Staff struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      string `gorm:"type:uuid;not null"                             json:"user_id"`
	EmployeeNo  string `gorm:"type:varchar(32);not null"                      json:"employee_no"`
	Department  string `gorm:"type:varchar(150);not null"                     json:"department"`
	Designation string `gorm:"type:varchar(100);not null"                     json:"designation"`
	Timestamps

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }
