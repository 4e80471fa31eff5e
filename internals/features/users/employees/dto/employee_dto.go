// file: internals/features/users/employees/dto/employee_dto.go
package dto

import (
	"strings"

	"gorm.io/datatypes"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/users/employees/model"
	helper "msns_backend/internals/helpers"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type CreateEmployeeInput struct {
	EmployeeName       string   `json:"employeeName"                validate:"required,min=3,max=100"`
	FatherName         string   `json:"fatherName"                  validate:"required,min=3,max=100"`
	Gender             string   `json:"gender"                      validate:"required,oneof=MALE FEMALE CUSTOM"`
	DOB                string   `json:"dob"                         validate:"required,ymd"`
	CNIC               string   `json:"cnic"                        validate:"required,cnic"`
	MaritalStatus      string   `json:"maritalStatus"               validate:"required,oneof=Married Unmarried Widow Divorced"`
	DOJ                string   `json:"doj"                         validate:"required,ymd"`
	Designation        string   `json:"designation"                 validate:"required,oneof=Principal Admin Head Clerk Teacher Worker"`
	ResidentialAddress string   `json:"residentialAddress"          validate:"required,min=5,max=500"`
	MobileNo           string   `json:"mobileNo"                    validate:"required,mobile"`
	AdditionalContact  *string  `json:"additionalContact,omitempty" validate:"omitempty,mobile"`
	Education          string   `json:"education"                   validate:"max=200"`
	Qualifications     []string `json:"qualifications"              validate:"max=10,dive,max=100"`
	ProfilePic         *string  `json:"profilePic,omitempty"        validate:"omitempty,url"`
	CV                 *string  `json:"cv,omitempty"                validate:"omitempty,url"`
	Password           *string  `json:"password,omitempty"          validate:"omitempty,min=8,max=72"`
}

func (in *CreateEmployeeInput) Defaults() {
	in.Gender = strings.ToUpper(strings.TrimSpace(in.Gender))
}

func (in *CreateEmployeeInput) ToModel() model.EmployeeModel {
	dob, _ := helper.ParseYMD(in.DOB)
	doj, _ := helper.ParseYMD(in.DOJ)
	return model.EmployeeModel{
		EmployeeName:       in.EmployeeName,
		FatherName:         in.FatherName,
		Gender:             in.Gender,
		DOB:                datatypes.Date(dob),
		CNIC:               in.CNIC,
		MaritalStatus:      model.MaritalStatus(in.MaritalStatus),
		DOJ:                datatypes.Date(doj),
		Designation:        constants.Designation(in.Designation),
		ResidentialAddress: strings.TrimSpace(in.ResidentialAddress),
		MobileNo:           in.MobileNo,
		AdditionalContact:  in.AdditionalContact,
		Education:          strings.TrimSpace(in.Education),
		Qualifications:     cleanList(in.Qualifications),
		ProfilePic:         in.ProfilePic,
		CV:                 in.CV,
	}
}

type UpdateEmployeeInput struct {
	EmployeeID         string    `json:"employeeId"                   validate:"required,uuid"`
	EmployeeName       *string   `json:"employeeName,omitempty"       validate:"omitempty,min=3,max=100"`
	FatherName         *string   `json:"fatherName,omitempty"         validate:"omitempty,min=3,max=100"`
	Gender             *string   `json:"gender,omitempty"             validate:"omitempty,oneof=MALE FEMALE CUSTOM"`
	DOB                *string   `json:"dob,omitempty"                validate:"omitempty,ymd"`
	CNIC               *string   `json:"cnic,omitempty"               validate:"omitempty,cnic"`
	MaritalStatus      *string   `json:"maritalStatus,omitempty"      validate:"omitempty,oneof=Married Unmarried Widow Divorced"`
	DOJ                *string   `json:"doj,omitempty"                validate:"omitempty,ymd"`
	Designation        *string   `json:"designation,omitempty"        validate:"omitempty,oneof=Principal Admin Head Clerk Teacher Worker"`
	ResidentialAddress *string   `json:"residentialAddress,omitempty" validate:"omitempty,min=5,max=500"`
	MobileNo           *string   `json:"mobileNo,omitempty"           validate:"omitempty,mobile"`
	AdditionalContact  *string   `json:"additionalContact,omitempty"  validate:"omitempty,mobile"`
	Education          *string   `json:"education,omitempty"          validate:"omitempty,max=200"`
	Qualifications     *[]string `json:"qualifications,omitempty"     validate:"omitempty,max=10,dive,max=100"`
	ProfilePic         *string   `json:"profilePic,omitempty"         validate:"omitempty,url"`
	CV                 *string   `json:"cv,omitempty"                 validate:"omitempty,url"`
	Password           *string   `json:"password,omitempty"           validate:"omitempty,min=8,max=72"`
}

func (u *UpdateEmployeeInput) Defaults() {
	if u.Gender != nil {
		g := strings.ToUpper(strings.TrimSpace(*u.Gender))
		u.Gender = &g
	}
}

// ApplyUpdates copies present fields; the password is handled by the
// service since it needs hashing.
func (u *UpdateEmployeeInput) ApplyUpdates(m *model.EmployeeModel) {
	if u.EmployeeName != nil {
		m.EmployeeName = *u.EmployeeName
	}
	if u.FatherName != nil {
		m.FatherName = *u.FatherName
	}
	if u.Gender != nil {
		m.Gender = *u.Gender
	}
	if u.DOB != nil {
		t, _ := helper.ParseYMD(*u.DOB)
		m.DOB = datatypes.Date(t)
	}
	if u.CNIC != nil {
		m.CNIC = *u.CNIC
	}
	if u.MaritalStatus != nil {
		m.MaritalStatus = model.MaritalStatus(*u.MaritalStatus)
	}
	if u.DOJ != nil {
		t, _ := helper.ParseYMD(*u.DOJ)
		m.DOJ = datatypes.Date(t)
	}
	if u.Designation != nil {
		m.Designation = constants.Designation(*u.Designation)
	}
	if u.ResidentialAddress != nil {
		m.ResidentialAddress = strings.TrimSpace(*u.ResidentialAddress)
	}
	if u.MobileNo != nil {
		m.MobileNo = *u.MobileNo
	}
	if u.AdditionalContact != nil {
		m.AdditionalContact = u.AdditionalContact
	}
	if u.Education != nil {
		m.Education = strings.TrimSpace(*u.Education)
	}
	if u.Qualifications != nil {
		m.Qualifications = cleanList(*u.Qualifications)
	}
	if u.ProfilePic != nil {
		m.ProfilePic = u.ProfilePic
	}
	if u.CV != nil {
		m.CV = u.CV
	}
}

type EmployeeIDInput struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
}

type DeleteEmployeesInput struct {
	EmployeeIDs []string `json:"employeeIds" validate:"max=200,dive,uuid"`
}

type ListEmployeesInput struct {
	SearchTerm  *string `json:"searchTerm,omitempty"  validate:"omitempty,max=100"`
	Designation *string `json:"designation,omitempty" validate:"omitempty,oneof=Principal Admin Head Clerk Teacher Worker"`
	Page        int     `json:"page"                  validate:"min=1"`
	PageSize    int     `json:"pageSize"              validate:"min=1,max=100"`
}

func (in *ListEmployeesInput) Defaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = DefaultPageSize
	}
}

func (in *ListEmployeesInput) Paging() helper.Paging {
	return helper.ResolvePaging(in.Page, in.PageSize, DefaultPageSize, MaxPageSize)
}

type CredentialsInput struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=20"`
	Password           string `json:"password"           validate:"required,max=72"`
}

type CredentialsResult struct {
	EmployeeID  string                `json:"employeeId"`
	Designation constants.Designation `json:"designation"`
}

func cleanList(in []string) helper.StringArray {
	out := make(helper.StringArray, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
