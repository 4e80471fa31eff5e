// file: internals/features/users/students/model/student_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "msns_backend/internals/helpers"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderCustom Gender = "CUSTOM"
)

type StudentModel struct {
	StudentID          uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"studentId"`
	RegistrationNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_students_registration_number;column:registration_number" json:"registrationNumber"`
	AdmissionNumber    string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_students_admission_number;column:admission_number" json:"admissionNumber"`

	// ============ Student ============
	StudentName    string         `gorm:"type:varchar(100);not null;column:student_name" json:"studentName"`
	StudentMobile  string         `gorm:"type:varchar(15);not null;column:student_mobile" json:"studentMobile"`
	Gender         Gender         `gorm:"type:varchar(10);not null;column:gender" json:"gender"`
	DateOfBirth    datatypes.Date `gorm:"type:date;not null;column:date_of_birth" json:"dateOfBirth"`
	StudentCNIC    string         `gorm:"type:varchar(15);not null;column:student_cnic" json:"studentCNIC"`
	BloodGroup     *string        `gorm:"type:varchar(3);column:blood_group" json:"bloodGroup,omitempty"`
	Caste          string         `gorm:"type:varchar(50);not null;default:'';column:caste" json:"caste"`
	MedicalProblem *string        `gorm:"type:text;column:medical_problem" json:"medicalProblem,omitempty"`
	ProfilePic     *string        `gorm:"type:text;column:profile_pic" json:"profilePic,omitempty"`

	// ============ Guardian ============
	FatherName       string  `gorm:"type:varchar(100);not null;column:father_name" json:"fatherName"`
	FatherMobile     string  `gorm:"type:varchar(15);not null;column:father_mobile" json:"fatherMobile"`
	FatherCNIC       string  `gorm:"type:varchar(15);not null;column:father_cnic" json:"fatherCNIC"`
	FatherProfession *string `gorm:"type:varchar(100);column:father_profession" json:"fatherProfession,omitempty"`
	GuardianName     *string `gorm:"type:varchar(100);column:guardian_name" json:"guardianName,omitempty"`

	// ============ Address ============
	CurrentAddress   string `gorm:"type:varchar(200);not null;column:current_address" json:"currentAddress"`
	PermanentAddress string `gorm:"type:varchar(500);not null;column:permanent_address" json:"permanentAddress"`

	RegistrationDate datatypes.Date `gorm:"type:date;not null;column:registration_date" json:"registrationDate"`
	IsAssign         bool           `gorm:"not null;default:false;index;column:is_assign" json:"isAssign"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.StudentID)
	return nil
}

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentName = strings.TrimSpace(m.StudentName)
	m.FatherName = strings.TrimSpace(m.FatherName)
	m.CurrentAddress = strings.TrimSpace(m.CurrentAddress)
	m.PermanentAddress = strings.TrimSpace(m.PermanentAddress)
	return nil
}
