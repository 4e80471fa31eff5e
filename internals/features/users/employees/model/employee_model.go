// file: internals/features/users/employees/model/employee_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	helper "msns_backend/internals/helpers"
)

type MaritalStatus string

const (
	MaritalMarried   MaritalStatus = "Married"
	MaritalUnmarried MaritalStatus = "Unmarried"
	MaritalWidow     MaritalStatus = "Widow"
	MaritalDivorced  MaritalStatus = "Divorced"
)

type EmployeeModel struct {
	EmployeeID         uuid.UUID `gorm:"type:uuid;primaryKey;column:employee_id" json:"employeeId"`
	RegistrationNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_registration_number;column:registration_number" json:"registrationNumber"`

	EmployeeName  string         `gorm:"type:varchar(100);not null;column:employee_name" json:"employeeName"`
	FatherName    string         `gorm:"type:varchar(100);not null;column:father_name" json:"fatherName"`
	Gender        string         `gorm:"type:varchar(10);not null;column:gender" json:"gender"`
	DOB           datatypes.Date `gorm:"type:date;not null;column:date_of_birth" json:"dob"`
	CNIC          string         `gorm:"type:varchar(15);not null;column:cnic" json:"cnic"`
	MaritalStatus MaritalStatus  `gorm:"type:varchar(12);not null;column:marital_status" json:"maritalStatus"`

	DOJ            datatypes.Date        `gorm:"type:date;not null;column:date_of_joining" json:"doj"`
	Designation    constants.Designation `gorm:"type:varchar(12);not null;index;column:designation" json:"designation"`
	Education      string                `gorm:"type:varchar(200);not null;default:'';column:education" json:"education"`
	Qualifications helper.StringArray    `gorm:"column:qualifications" json:"qualifications"`

	ResidentialAddress string  `gorm:"type:varchar(500);not null;column:residential_address" json:"residentialAddress"`
	MobileNo           string  `gorm:"type:varchar(15);not null;column:mobile_no" json:"mobileNo"`
	AdditionalContact  *string `gorm:"type:varchar(15);column:additional_contact" json:"additionalContact,omitempty"`

	ProfilePic *string `gorm:"type:text;column:profile_pic" json:"profilePic,omitempty"`
	CV         *string `gorm:"type:text;column:cv" json:"cv,omitempty"`

	IsAssign     bool    `gorm:"not null;default:false;column:is_assign" json:"isAssign"`
	PasswordHash *string `gorm:"type:varchar(100);column:password_hash" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.EmployeeID)
	return nil
}

func (m *EmployeeModel) BeforeSave(tx *gorm.DB) error {
	m.EmployeeName = strings.TrimSpace(m.EmployeeName)
	m.FatherName = strings.TrimSpace(m.FatherName)
	if m.Qualifications == nil {
		m.Qualifications = helper.StringArray{}
	}
	return nil
}
