// file: internals/features/reports/service/report_service.go
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"msns_backend/internals/features/reports/dto"
	"msns_backend/internals/helpers/report"
	"msns_backend/internals/rpc"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	studentColumns = []string{
		"Student ID", "Name", "Registration #", "Admission #", "Date of Birth", "Gender",
		"Father's Name", "Student CNIC", "Father's CNIC", "Class", "Section", "Session",
	}
	employeeColumns = []string{
		"Registration #", "Name", "Father's Name", "Designation", "CNIC", "Mobile", "Date of Joining",
	}
)

type Service struct {
	db        *gorm.DB
	institute string
	now       func() time.Time
}

func New(db *gorm.DB, institute string) *Service {
	if institute == "" {
		institute = "ACADEMIC INSTITUTE"
	}
	return &Service{db: db, institute: institute, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service { s.now = now; return s }

func (s *Service) StudentReport(ctx context.Context, in dto.ReportInput) (dto.FileResponse, error) {
	t, err := s.studentTable(ctx)
	if err != nil {
		return dto.FileResponse{}, rpc.Internal("Failed to generate student report", err)
	}
	return s.render("student-report", in.Format, t)
}

func (s *Service) EmployeeReport(ctx context.Context, in dto.ReportInput) (dto.FileResponse, error) {
	t, err := s.employeeTable(ctx)
	if err != nil {
		return dto.FileResponse{}, rpc.Internal("Failed to generate employee report", err)
	}
	return s.render("employee-report", in.Format, t)
}

// StudentPDF backs student.generateStudentReport.
func (s *Service) StudentPDF(ctx context.Context, _ rpc.Empty) (dto.PDFResponse, error) {
	out, err := s.StudentReport(ctx, dto.ReportInput{Format: dto.FormatPDF})
	if err != nil {
		return dto.PDFResponse{}, err
	}
	return dto.PDFResponse{PDF: out.File, Filename: out.Filename}, nil
}

func (s *Service) render(prefix, format string, t report.Table) (dto.FileResponse, error) {
	var (
		body []byte
		err  error
		ct   string
	)
	switch format {
	case dto.FormatXLSX:
		body, err = report.RenderXLSX(t)
		ct = contentTypeXLSX
	default:
		format = dto.FormatPDF
		body, err = report.RenderPDF(s.institute, t)
		ct = contentTypePDF
	}
	if err != nil {
		return dto.FileResponse{}, rpc.Internal("Failed to render report", err)
	}
	return dto.FileResponse{
		File:        base64.StdEncoding.EncodeToString(body),
		Filename:    fmt.Sprintf("%s-%d.%s", prefix, s.now().UnixMilli(), format),
		ContentType: ct,
	}, nil
}

type studentRow struct {
	StudentID          uuid.UUID
	StudentName        string
	RegistrationNumber string
	AdmissionNumber    string
	DateOfBirth        time.Time
	Gender             string
	FatherName         string
	StudentCNIC        string
	FatherCNIC         string
}

type placement struct {
	StudentID   uuid.UUID
	Grade       string
	Section     string
	SessionName string
	IsActive    bool
	SessionFrom time.Time
}

// studentTable lists every student with the class of the active session,
// falling back to the most recent session the student was placed in.
func (s *Service) studentTable(ctx context.Context) (report.Table, error) {
	db := s.db.WithContext(ctx)

	var students []studentRow
	if err := db.Table("students").
		Select("student_id, student_name, registration_number, admission_number, date_of_birth, gender, father_name, student_cnic, father_cnic").
		Order("registration_number ASC").
		Scan(&students).Error; err != nil {
		return report.Table{}, err
	}

	var places []placement
	if err := db.Table("student_classes sc").
		Select("sc.student_id, c.grade, c.section, se.session_name, se.is_active, se.session_from").
		Joins("JOIN classes c ON c.class_id = sc.class_id").
		Joins("JOIN sessions se ON se.session_id = sc.session_id").
		Order("se.is_active DESC").Order("se.session_from DESC").
		Scan(&places).Error; err != nil {
		return report.Table{}, err
	}
	best := make(map[uuid.UUID]placement, len(places))
	for _, p := range places {
		if _, seen := best[p.StudentID]; !seen {
			best[p.StudentID] = p
		}
	}

	t := report.Table{Title: "Student Directory Report", Columns: studentColumns}
	for _, st := range students {
		p := best[st.StudentID]
		t.Rows = append(t.Rows, []string{
			st.StudentID.String(),
			st.StudentName,
			st.RegistrationNumber,
			st.AdmissionNumber,
			formatDate(st.DateOfBirth),
			st.Gender,
			st.FatherName,
			st.StudentCNIC,
			st.FatherCNIC,
			report.Cell(p.Grade),
			report.Cell(p.Section),
			report.Cell(p.SessionName),
		})
	}
	return t, nil
}

type employeeRow struct {
	RegistrationNumber string
	EmployeeName       string
	FatherName         string
	Designation        string
	CNIC               string
	MobileNo           string
	DateOfJoining      time.Time
}

func (s *Service) employeeTable(ctx context.Context) (report.Table, error) {
	var rows []employeeRow
	err := s.db.WithContext(ctx).Table("employees").
		Select("registration_number, employee_name, father_name, designation, cnic, mobile_no, date_of_joining").
		Order("registration_number ASC").
		Scan(&rows).Error
	if err != nil {
		return report.Table{}, err
	}
	t := report.Table{Title: "Employee Directory Report", Columns: employeeColumns}
	for _, e := range rows {
		t.Rows = append(t.Rows, []string{
			e.RegistrationNumber,
			e.EmployeeName,
			e.FatherName,
			e.Designation,
			e.CNIC,
			e.MobileNo,
			formatDate(e.DateOfJoining),
		})
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return report.Missing
	}
	return t.Format("2006-01-02")
}
