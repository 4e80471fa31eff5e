package dto

import "strings"

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

type ReportInput struct {
	Format string `json:"format" validate:"oneof=pdf xlsx"`
}

func (in *ReportInput) Defaults() {
	in.Format = strings.ToLower(strings.TrimSpace(in.Format))
	if in.Format == "" {
		in.Format = FormatPDF
	}
}

type FileResponse struct {
	File        string `json:"file"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// PDFResponse is the shape of student.generateStudentReport.
type PDFResponse struct {
	PDF      string `json:"pdf"`
	Filename string `json:"filename"`
}
