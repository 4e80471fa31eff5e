// Package report renders tabular directory reports as PDF or XLSX.
package report

import "strings"

const Missing = "N/A"

type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Cell returns v, or Missing when v is blank.
func Cell(v string) string {
	if strings.TrimSpace(v) == "" {
		return Missing
	}
	return v
}

// CellPtr is Cell for optional values.
func CellPtr(v *string) string {
	if v == nil {
		return Missing
	}
	return Cell(*v)
}
