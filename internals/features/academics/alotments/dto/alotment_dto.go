package dto

import helper "msns_backend/internals/helpers"

type AddStudentsInput struct {
	StudentIDs []string `json:"studentIds"           validate:"required,min=1,max=200,dive,uuid"`
	ClassID    string   `json:"classId"              validate:"required,uuid"`
	SessionID  string   `json:"sessionId"            validate:"required,uuid"`
	EmployeeID *string  `json:"employeeId,omitempty" validate:"omitempty,uuid"`
}

type RemoveStudentsInput struct {
	StudentIDs []string `json:"studentIds" validate:"required,min=1,max=200,dive,uuid"`
	ClassID    string   `json:"classId"    validate:"required,uuid"`
	SessionID  string   `json:"sessionId"  validate:"required,uuid"`
}

type ClassSessionPageInput struct {
	ClassID   string `json:"classId"   validate:"required,uuid"`
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Page      int    `json:"page"      validate:"min=1"`
	PageSize  int    `json:"pageSize"  validate:"min=1,max=200"`
}

func (in *ClassSessionPageInput) Defaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = 50
	}
}

func (in *ClassSessionPageInput) Paging() helper.Paging {
	return helper.ResolvePaging(in.Page, in.PageSize, 50, 200)
}

// =======================
// Response DTO
// =======================

type StudentRef struct {
	StudentID          string `json:"studentId"`
	RegistrationNumber string `json:"registrationNumber"`
	StudentName        string `json:"studentName"`
	FatherName         string `json:"fatherName"`
}

type ClassRef struct {
	ClassID string `json:"classId"`
	Grade   string `json:"grade"`
	Section string `json:"section"`
}

type EmployeeRef struct {
	EmployeeName *string `json:"employeeName"`
}

type SessionRef struct {
	SessionID   string `json:"sessionId"`
	SessionName string `json:"sessionName"`
}

type ClassStudent struct {
	Student  StudentRef  `json:"student"`
	Class    ClassRef    `json:"class"`
	Employee EmployeeRef `json:"employee"`
	Session  SessionRef  `json:"session"`
}
