package dto

import (
	"strings"

	"msns_backend/internals/features/academics/subjects/model"
)

type CreateSubjectInput struct {
	SubjectName string  `json:"subjectName"           validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (in *CreateSubjectInput) ToModel() model.SubjectModel {
	m := model.SubjectModel{SubjectName: in.SubjectName}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			m.Description = &d
		}
	}
	return m
}

type DeleteSubjectsInput struct {
	SubjectIDs []string `json:"subjectIds" validate:"max=200,dive,uuid"`
}

type AssignSubjectInput struct {
	ClassID    string `json:"classId"    validate:"required,uuid"`
	SubjectID  string `json:"subjectId"  validate:"required,uuid"`
	SessionID  string `json:"sessionId"  validate:"required,uuid"`
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
}

type ClassSessionInput struct {
	ClassID   string `json:"classId"   validate:"required,uuid"`
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type RemoveSubjectInput struct {
	ClassID   string `json:"classId"   validate:"required,uuid"`
	SubjectID string `json:"subjectId" validate:"required,uuid"`
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type EmployeeName struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
}

type ClassSubjectResponse struct {
	Subject  model.SubjectModel `json:"subject"`
	Employee EmployeeName       `json:"employee"`
}
