// file: internals/features/finance/salaries/model/salary_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	feemodel "msns_backend/internals/features/finance/fees/model"
	helper "msns_backend/internals/helpers"
)

type SalaryAssignmentModel struct {
	SalaryAssignmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:salary_assignment_id" json:"salaryAssignmentId"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_assignments,priority:1;column:employee_id" json:"employeeId"`
	SessionID          uuid.UUID `gorm:"type:uuid;not null;index;column:session_id" json:"sessionId"`
	Month              int       `gorm:"not null;uniqueIndex:uq_salary_assignments,priority:2;column:month" json:"month"`
	Year               int       `gorm:"not null;uniqueIndex:uq_salary_assignments,priority:3;index;column:year" json:"year"`

	BaseSalary  int64 `gorm:"not null;column:base_salary" json:"baseSalary"`
	Increment   int64 `gorm:"not null;default:0;column:increment" json:"increment"`
	TotalSalary int64 `gorm:"not null;column:total_salary" json:"totalSalary"`

	Status feemodel.PaymentStatus `gorm:"type:varchar(10);not null;default:'PENDING';index;column:status" json:"status"`
	PaidAt *time.Time             `gorm:"column:paid_at" json:"paidAt,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (SalaryAssignmentModel) TableName() string { return "salary_assignments" }

func (m *SalaryAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.SalaryAssignmentID)
	if m.Status == "" {
		m.Status = feemodel.StatusPending
	}
	return nil
}

func (m *SalaryAssignmentModel) BeforeSave(tx *gorm.DB) error {
	m.TotalSalary = m.BaseSalary + m.Increment
	return nil
}
