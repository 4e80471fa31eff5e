// file: internals/features/users/students/dto/student_dto.go
package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"msns_backend/internals/features/users/students/model"
	helper "msns_backend/internals/helpers"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// =======================
// Request DTO
// =======================

type CreateStudentInput struct {
	StudentName      string  `json:"studentName"                validate:"required,min=3,max=100"`
	StudentMobile    string  `json:"studentMobile"              validate:"required,mobile"`
	FatherMobile     string  `json:"fatherMobile"               validate:"required,mobile"`
	Gender           string  `json:"gender"                     validate:"required,oneof=MALE FEMALE CUSTOM"`
	DateOfBirth      string  `json:"dateOfBirth"                validate:"required,ymd"`
	StudentCNIC      string  `json:"studentCNIC"                validate:"required,cnic"`
	FatherCNIC       string  `json:"fatherCNIC"                 validate:"required,cnic"`
	FatherName       string  `json:"fatherName"                 validate:"required,min=3,max=100"`
	FatherProfession *string `json:"fatherProfession,omitempty" validate:"omitempty,max=100"`
	BloodGroup       *string `json:"bloodGroup,omitempty"       validate:"omitempty,max=3"`
	GuardianName     *string `json:"guardianName,omitempty"     validate:"omitempty,max=100"`
	Caste            string  `json:"caste"                      validate:"max=50"`
	RegistrationDate *string `json:"registrationDate,omitempty" validate:"omitempty,ymd"`
	CurrentAddress   string  `json:"currentAddress"             validate:"required,min=5,max=200"`
	PermanentAddress string  `json:"permanentAddress"           validate:"required,min=5,max=500"`
	MedicalProblem   *string `json:"medicalProblem,omitempty"   validate:"omitempty,max=500"`
	ProfilePic       *string `json:"profilePic,omitempty"       validate:"omitempty,url"`
}

func (in *CreateStudentInput) Defaults() {
	in.Gender = strings.ToUpper(strings.TrimSpace(in.Gender))
}

// ToModel fills everything except the two allocated numbers. A missing
// registration date falls back to today.
func (in *CreateStudentInput) ToModel(today time.Time) model.StudentModel {
	dob, _ := helper.ParseYMD(in.DateOfBirth)
	reg := today
	if in.RegistrationDate != nil {
		if t, ok := helper.ParseYMD(*in.RegistrationDate); ok {
			reg = t
		}
	}
	return model.StudentModel{
		StudentName:      in.StudentName,
		StudentMobile:    in.StudentMobile,
		FatherMobile:     in.FatherMobile,
		Gender:           model.Gender(in.Gender),
		DateOfBirth:      datatypes.Date(dob),
		StudentCNIC:      in.StudentCNIC,
		FatherCNIC:       in.FatherCNIC,
		FatherName:       in.FatherName,
		FatherProfession: trimPtr(in.FatherProfession),
		BloodGroup:       trimPtr(in.BloodGroup),
		GuardianName:     trimPtr(in.GuardianName),
		Caste:            strings.TrimSpace(in.Caste),
		RegistrationDate: datatypes.Date(reg),
		CurrentAddress:   in.CurrentAddress,
		PermanentAddress: in.PermanentAddress,
		MedicalProblem:   trimPtr(in.MedicalProblem),
		ProfilePic:       trimPtr(in.ProfilePic),
	}
}

type UpdateStudentInput struct {
	StudentID        string  `json:"studentId"                  validate:"required,uuid"`
	StudentName      *string `json:"studentName,omitempty"      validate:"omitempty,min=3,max=100"`
	StudentMobile    *string `json:"studentMobile,omitempty"    validate:"omitempty,mobile"`
	FatherMobile     *string `json:"fatherMobile,omitempty"     validate:"omitempty,mobile"`
	Gender           *string `json:"gender,omitempty"           validate:"omitempty,oneof=MALE FEMALE CUSTOM"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty"      validate:"omitempty,ymd"`
	StudentCNIC      *string `json:"studentCNIC,omitempty"      validate:"omitempty,cnic"`
	FatherCNIC       *string `json:"fatherCNIC,omitempty"       validate:"omitempty,cnic"`
	FatherName       *string `json:"fatherName,omitempty"       validate:"omitempty,min=3,max=100"`
	FatherProfession *string `json:"fatherProfession,omitempty" validate:"omitempty,max=100"`
	BloodGroup       *string `json:"bloodGroup,omitempty"       validate:"omitempty,max=3"`
	GuardianName     *string `json:"guardianName,omitempty"     validate:"omitempty,max=100"`
	Caste            *string `json:"caste,omitempty"            validate:"omitempty,max=50"`
	RegistrationDate *string `json:"registrationDate,omitempty" validate:"omitempty,ymd"`
	CurrentAddress   *string `json:"currentAddress,omitempty"   validate:"omitempty,min=5,max=200"`
	PermanentAddress *string `json:"permanentAddress,omitempty" validate:"omitempty,min=5,max=500"`
	MedicalProblem   *string `json:"medicalProblem,omitempty"   validate:"omitempty,max=500"`
	ProfilePic       *string `json:"profilePic,omitempty"       validate:"omitempty,url"`
}

func (u *UpdateStudentInput) Defaults() {
	if u.Gender != nil {
		g := strings.ToUpper(strings.TrimSpace(*u.Gender))
		u.Gender = &g
	}
}

// ApplyUpdates copies the present fields. Registration and admission
// numbers are not updatable.
func (u *UpdateStudentInput) ApplyUpdates(m *model.StudentModel) {
	setStr(&m.StudentName, u.StudentName)
	setStr(&m.StudentMobile, u.StudentMobile)
	setStr(&m.FatherMobile, u.FatherMobile)
	if u.Gender != nil {
		m.Gender = model.Gender(*u.Gender)
	}
	setDate(&m.DateOfBirth, u.DateOfBirth)
	setStr(&m.StudentCNIC, u.StudentCNIC)
	setStr(&m.FatherCNIC, u.FatherCNIC)
	setStr(&m.FatherName, u.FatherName)
	setPtr(&m.FatherProfession, u.FatherProfession)
	setPtr(&m.BloodGroup, u.BloodGroup)
	setPtr(&m.GuardianName, u.GuardianName)
	setStr(&m.Caste, u.Caste)
	setDate(&m.RegistrationDate, u.RegistrationDate)
	setStr(&m.CurrentAddress, u.CurrentAddress)
	setStr(&m.PermanentAddress, u.PermanentAddress)
	setPtr(&m.MedicalProblem, u.MedicalProblem)
	setPtr(&m.ProfilePic, u.ProfilePic)
}

type StudentIDInput struct {
	StudentID string `json:"studentId" validate:"required,uuid"`
}

type DeleteStudentsInput struct {
	StudentIDs []string `json:"studentIds" validate:"max=200,dive,uuid"`
}

type ListStudentsInput struct {
	SearchTerm *string `json:"searchTerm,omitempty" validate:"omitempty,max=100"`
	Page       int     `json:"page"                 validate:"min=1"`
	PageSize   int     `json:"pageSize"             validate:"min=1,max=100"`
}

func (in *ListStudentsInput) Defaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = DefaultPageSize
	}
}

func (in *ListStudentsInput) Paging() helper.Paging {
	return helper.ResolvePaging(in.Page, in.PageSize, DefaultPageSize, MaxPageSize)
}

type ImportStudentsInput struct {
	FileBase64 string `json:"fileBase64" validate:"required,base64"`
}

// =======================
// Response DTO
// =======================

type ImportFailure struct {
	Row    int                 `json:"row"`
	Errors map[string][]string `json:"errors"`
}

type ImportResult struct {
	Created int             `json:"created"`
	Failed  []ImportFailure `json:"failed"`
}

/* ===============================
   Helpers
=================================*/

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setPtr(dst **string, src *string) {
	if src != nil {
		*dst = trimPtr(src)
	}
}

func setDate(dst *datatypes.Date, src *string) {
	if src == nil {
		return
	}
	if t, ok := helper.ParseYMD(*src); ok {
		*dst = datatypes.Date(t)
	}
}
