package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"msns_backend/internals/databases/dbtest"
	alotmentmodel "msns_backend/internals/features/academics/alotments/model"
	"msns_backend/internals/features/users/students/dto"
	"msns_backend/internals/features/users/students/model"
	"msns_backend/internals/rpc"
)

var fixedNow = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return New(db, nil, WithClock(func() time.Time { return fixedNow })), db
}

func studentInput(name string) dto.CreateStudentInput {
	return dto.CreateStudentInput{
		StudentName:      name,
		StudentMobile:    "03001234567",
		FatherMobile:     "03007654321",
		Gender:           "male",
		DateOfBirth:      "2012-02-29",
		StudentCNIC:      "12345-1234567-1",
		FatherCNIC:       "12345-7654321-1",
		FatherName:       "Father " + name,
		CurrentAddress:   "House 1, Street 2",
		PermanentAddress: "House 1, Street 2",
	}
}

func mustCreate(t *testing.T, svc *Service, name string) *model.StudentModel {
	t.Helper()
	in := studentInput(name)
	in.Defaults()
	m, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return m
}

func TestCreateAllocatesNumbers(t *testing.T) {
	svc, _ := newService(t)

	a := mustCreate(t, svc, "Ali Khan")
	b := mustCreate(t, svc, "Sara Ahmed")

	assert.Equal(t, "MSNS250001", a.RegistrationNumber)
	assert.Equal(t, "S25001", a.AdmissionNumber)
	assert.Equal(t, "MSNS250002", b.RegistrationNumber)
	assert.Equal(t, "S25002", b.AdmissionNumber)
	assert.Equal(t, model.GenderMale, a.Gender)
	assert.Equal(t, "2025-05-10", time.Time(a.RegistrationDate).Format("2006-01-02"))
	assert.False(t, a.IsAssign)
}

func TestListSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	mustCreate(t, svc, "Ali Khan")
	mustCreate(t, svc, "Sara Ahmed")
	c := mustCreate(t, svc, "Bilal Khan")
	require.NoError(t, db.Model(&model.StudentModel{}).Where("student_id = ?", c.StudentID).Update("is_assign", true).Error)

	term := "KHAN"
	page, err := svc.List(ctx, dto.ListStudentsInput{SearchTerm: &term, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.Total)

	page, err = svc.List(ctx, dto.ListStudentsInput{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Meta.TotalPages)

	page, err = svc.ListUnallocated(ctx, dto.ListStudentsInput{SearchTerm: &term, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Ali Khan", page.Data[0].StudentName)

	reg := "MSNS25"
	page, err = svc.ListUnallocated(ctx, dto.ListStudentsInput{SearchTerm: &reg, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Data, "registration number is not searched for unallocated students")
}

func TestGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	m := mustCreate(t, svc, "Ali Khan")

	got, err := svc.GetByID(ctx, dto.StudentIDInput{StudentID: m.StudentID.String()})
	require.NoError(t, err)
	assert.Equal(t, m.RegistrationNumber, got.RegistrationNumber)

	name := "  Ali Raza  "
	updated, err := svc.Update(ctx, dto.UpdateStudentInput{StudentID: m.StudentID.String(), StudentName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ali Raza", updated.StudentName)
	assert.Equal(t, m.RegistrationNumber, updated.RegistrationNumber)

	require.NoError(t, db.Create(&alotmentmodel.AlotmentModel{
		StudentID: m.StudentID,
		ClassID:   uuid.New(),
		SessionID: uuid.New(),
	}).Error)

	n, err := svc.DeleteByIDs(ctx, dto.DeleteStudentsInput{StudentIDs: []string{m.StudentID.String()}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Count)

	var left int64
	require.NoError(t, db.Table("student_classes").Count(&left).Error)
	assert.Zero(t, left)

	_, err = svc.GetByID(ctx, dto.StudentIDInput{StudentID: m.StudentID.String()})
	assert.Equal(t, rpc.CodeNotFound, rpc.CodeOf(err))
}

func workbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImportCreatesValidRowsAndReportsBadOnes(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	header := []any{"studentName", "studentMobile", "fatherMobile", "gender", "dateOfBirth", "studentCNIC",
		"fatherCNIC", "fatherName", "currentAddress", "permanentAddress"}
	good := []any{"Ali Khan", "03001234567", "03007654321", "male", "2012-01-15", "12345-1234567-1",
		"12345-7654321-1", "Imran Khan", "House 1, Street 2", "House 1, Street 2"}
	bad := []any{"Al", "123", "03007654321", "other", "15/01/2012", "12345",
		"12345-7654321-1", "Imran Khan", "House 1, Street 2", "House 1, Street 2"}

	res, err := svc.Import(ctx, dto.ImportStudentsInput{FileBase64: workbook(t, [][]any{header, good, {}, bad})})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 4, res.Failed[0].Row)
	assert.Contains(t, res.Failed[0].Errors, "studentName")
	assert.Contains(t, res.Failed[0].Errors, "gender")
	assert.Contains(t, res.Failed[0].Errors, "dateOfBirth")

	var n int64
	require.NoError(t, db.Model(&model.StudentModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestImportRejectsNonWorkbook(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Import(context.Background(), dto.ImportStudentsInput{FileBase64: base64.StdEncoding.EncodeToString([]byte("hello"))})
	assert.Equal(t, rpc.CodeBadRequest, rpc.CodeOf(err))
}
