package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	alotmentmodel "msns_backend/internals/features/academics/alotments/model"
	classmodel "msns_backend/internals/features/academics/classes/model"
	sessionmodel "msns_backend/internals/features/academics/sessions/model"
	subjectmodel "msns_backend/internals/features/academics/subjects/model"
	accountmodel "msns_backend/internals/features/users/accounts/model"
	employeemodel "msns_backend/internals/features/users/employees/model"
	studentmodel "msns_backend/internals/features/users/students/model"
)

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Student inserts a student with a unique registration number derived from n.
func Student(t testing.TB, db *gorm.DB, n int, name string) studentmodel.StudentModel {
	t.Helper()
	m := studentmodel.StudentModel{
		RegistrationNumber: fmt.Sprintf("MSNS25%04d", n),
		AdmissionNumber:    fmt.Sprintf("S25%03d", n),
		StudentName:        name,
		StudentMobile:      "03001234567",
		Gender:             studentmodel.GenderMale,
		DateOfBirth:        date(2012, time.March, 1),
		StudentCNIC:        "12345-1234567-1",
		FatherName:         "Father " + name,
		FatherMobile:       "03007654321",
		FatherCNIC:         "12345-7654321-1",
		CurrentAddress:     "House 1, Street 2",
		PermanentAddress:   "House 1, Street 2",
		RegistrationDate:   date(2025, time.April, 1),
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func Employee(t testing.TB, db *gorm.DB, n int, name string, d constants.Designation) employeemodel.EmployeeModel {
	t.Helper()
	m := employeemodel.EmployeeModel{
		RegistrationNumber: fmt.Sprintf("MSNE25%04d", n),
		EmployeeName:       name,
		FatherName:         "Father " + name,
		Gender:             "FEMALE",
		DOB:                date(1990, time.January, 15),
		CNIC:               "12345-1111111-2",
		MaritalStatus:      employeemodel.MaritalUnmarried,
		DOJ:                date(2020, time.August, 1),
		Designation:        d,
		ResidentialAddress: "Block C, Town",
		MobileNo:           "03111234567",
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func Session(t testing.TB, db *gorm.DB, name string, active bool) sessionmodel.SessionModel {
	t.Helper()
	m := sessionmodel.SessionModel{
		SessionName: name,
		SessionFrom: date(2025, time.April, 1),
		SessionTo:   date(2026, time.March, 31),
		IsActive:    active,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func Class(t testing.TB, db *gorm.DB, grade, section string, category classmodel.Category, fee int) classmodel.ClassModel {
	t.Helper()
	m := classmodel.ClassModel{Grade: grade, Section: section, Category: category, Fee: fee}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func Subject(t testing.TB, db *gorm.DB, name string) subjectmodel.SubjectModel {
	t.Helper()
	m := subjectmodel.SubjectModel{SubjectName: name}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// Allot places a student into a class and flags it as assigned.
func Allot(t testing.TB, db *gorm.DB, st studentmodel.StudentModel, c classmodel.ClassModel, s sessionmodel.SessionModel) alotmentmodel.AlotmentModel {
	t.Helper()
	m := alotmentmodel.AlotmentModel{StudentID: st.StudentID, ClassID: c.ClassID, SessionID: s.SessionID}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Model(&studentmodel.StudentModel{}).
		Where("student_id = ?", st.StudentID).
		UpdateColumn("is_assign", true).Error)
	return m
}

func User(t testing.TB, db *gorm.DB, clerkID string, role constants.Role) accountmodel.UserModel {
	t.Helper()
	m := accountmodel.UserModel{
		ClerkID:     clerkID,
		Email:       clerkID + "@example.com",
		AccountType: constants.DesignationAdmin,
		Role:        role,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}
