package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"msns_backend/internals/constants"
	"msns_backend/internals/databases/dbtest"
	classmodel "msns_backend/internals/features/academics/classes/model"
	sessionmodel "msns_backend/internals/features/academics/sessions/model"
	"msns_backend/internals/features/reports/dto"
	"msns_backend/internals/helpers/report"
	"msns_backend/internals/rpc"
)

var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func TestStudentTablePrefersActiveSession(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db, "").WithClock(func() time.Time { return fixedNow })

	current := dbtest.Session(t, db, "2025-2026", true)
	old := sessionmodel.SessionModel{
		SessionName: "2024-2025",
		SessionFrom: datatypes.Date(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		SessionTo:   datatypes.Date(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, db.Create(&old).Error)

	six := dbtest.Class(t, db, "6", "A", classmodel.CategoryMiddle, 2800)
	five := dbtest.Class(t, db, "5", "B", classmodel.CategoryPrimary, 2500)

	promoted := dbtest.Student(t, db, 1, "Ali Khan")
	leaver := dbtest.Student(t, db, 2, "Sara Ahmed")
	dbtest.Student(t, db, 3, "New Joiner")
	dbtest.Allot(t, db, promoted, five, old)
	dbtest.Allot(t, db, promoted, six, current)
	dbtest.Allot(t, db, leaver, five, old)

	tbl, err := svc.studentTable(context.Background())
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
	assert.Len(t, tbl.Columns, 12)

	first := tbl.Rows[0]
	assert.Equal(t, promoted.StudentID.String(), first[0])
	assert.Equal(t, "MSNS250001", first[2])
	assert.Equal(t, "2012-03-01", first[4])
	assert.Equal(t, []string{"6", "A", "2025-2026"}, first[9:])

	assert.Equal(t, []string{"5", "B", "2024-2025"}, tbl.Rows[1][9:])
	assert.Equal(t, []string{report.Missing, report.Missing, report.Missing}, tbl.Rows[2][9:])
}

func TestStudentReportFormats(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db, "M.S. Naz High School").WithClock(func() time.Time { return fixedNow })
	dbtest.Student(t, db, 1, "Ali Khan")

	in := dto.ReportInput{}
	in.Defaults()
	out, err := svc.StudentReport(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "student-report-1756728000000.pdf", out.Filename)
	body, err := base64.StdEncoding.DecodeString(out.File)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	in = dto.ReportInput{Format: "XLSX"}
	in.Defaults()
	out, err = svc.StudentReport(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "student-report-1756728000000.xlsx", out.Filename)
	body, err = base64.StdEncoding.DecodeString(out.File)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ali Khan", rows[1][1])

	pdf, err := svc.StudentPDF(ctx, rpc.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "student-report-1756728000000.pdf", pdf.Filename)
	assert.NotEmpty(t, pdf.PDF)
}

func TestEmployeeReport(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db, "").WithClock(func() time.Time { return fixedNow })
	dbtest.Employee(t, db, 2, "Kashif Ali", constants.DesignationClerk)
	dbtest.Employee(t, db, 1, "Amna Bibi", constants.DesignationTeacher)

	tbl, err := svc.employeeTable(context.Background())
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"MSNE250001", "Amna Bibi", "Father Amna Bibi", "Teacher", "12345-1111111-2", "03111234567", "2020-08-01"}, tbl.Rows[0])

	out, err := svc.EmployeeReport(context.Background(), dto.ReportInput{Format: dto.FormatXLSX})
	require.NoError(t, err)
	assert.Equal(t, "employee-report-1756728000000.xlsx", out.Filename)
}
