package dto

import (
	"strings"

	"msns_backend/internals/features/finance/salaries/model"
	helper "msns_backend/internals/helpers"
)

type AssignSalaryInput struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
	SessionID  string `json:"sessionId"  validate:"required,uuid"`
	BaseSalary int64  `json:"baseSalary" validate:"gt=0"`
	Increment  int64  `json:"increment"  validate:"min=0"`
	Month      int    `json:"month"      validate:"min=1,max=12"`
	Year       int    `json:"year"       validate:"min=2000,max=2100"`
}

type ListSalariesInput struct {
	SessionID  *string `json:"sessionId,omitempty"  validate:"omitempty,uuid"`
	EmployeeID *string `json:"employeeId,omitempty" validate:"omitempty,uuid"`
	Month      *int    `json:"month,omitempty"      validate:"omitempty,min=1,max=12"`
	Year       *int    `json:"year,omitempty"       validate:"omitempty,min=2000,max=2100"`
	Page       int     `json:"page"                 validate:"min=1"`
	PageSize   int     `json:"pageSize"             validate:"min=1,max=100"`
}

func (in *ListSalariesInput) Defaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = 20
	}
}

func (in *ListSalariesInput) Paging() helper.Paging {
	return helper.ResolvePaging(in.Page, in.PageSize, 20, 100)
}

type UpdateSalaryStatusInput struct {
	SalaryAssignmentID string `json:"salaryAssignmentId" validate:"required,uuid"`
	Status             string `json:"status"             validate:"required,oneof=PENDING PAID"`
}

func (in *UpdateSalaryStatusInput) Defaults() {
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
}

type DeleteSalariesInput struct {
	SalaryAssignmentIDs []string `json:"salaryAssignmentIds" validate:"max=200,dive,uuid"`
}

type SummaryInput struct {
	Year  int  `json:"year"            validate:"min=2000,max=2100"`
	Month *int `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
}

type SalaryRow struct {
	model.SalaryAssignmentModel
	EmployeeName       string `json:"employeeName"`
	RegistrationNumber string `json:"registrationNumber"`
}

type SalarySummary struct {
	TotalPaid    int64 `json:"totalPaid"`
	TotalPending int64 `json:"totalPending"`
	Count        int64 `json:"count"`
}
