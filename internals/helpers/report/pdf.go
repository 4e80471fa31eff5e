package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A4 in points.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 50.0
	RowHeight  = 20.0

	headerY   = 40.0
	titleY    = 70.0
	tableY    = 100.0
	fontSize  = 10.0
	fontTitle = 14.0
	fontHead  = 18.0
)

// RowPositions returns the page index and baseline of every data row. The
// header row sits at tableY on the first page; later pages carry rows only,
// starting at the top margin.
func RowPositions(n int) (pages []int, ys []float64) {
	page, y := 0, tableY+RowHeight
	for i := 0; i < n; i++ {
		if y > PageHeight-Margin {
			page++
			y = Margin
		}
		pages = append(pages, page)
		ys = append(ys, y)
		y += RowHeight
	}
	return pages, ys
}

// RenderPDF draws the institute header, the title and the table with
// equal-width columns. Cell text is cut to fit its column.
func RenderPDF(institute string, t Table) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(Margin, Margin, Margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	colWidth := 0.0
	if n := len(t.Columns); n > 0 {
		colWidth = (PageWidth - 2*Margin) / float64(n)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", fontHead)
	pdf.Text(Margin, headerY, tr(institute))
	pdf.SetFont("Helvetica", "B", fontTitle)
	pdf.Text(Margin, titleY, tr(t.Title))

	pdf.SetFont("Helvetica", "B", fontSize)
	for i, col := range t.Columns {
		pdf.Text(Margin+float64(i)*colWidth, tableY, fit(pdf, tr(col), colWidth))
	}

	pdf.SetFont("Helvetica", "", fontSize)
	pages, ys := RowPositions(len(t.Rows))
	current := 0
	for r, row := range t.Rows {
		if pages[r] != current {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", fontSize)
			current = pages[r]
		}
		for i := range t.Columns {
			v := Missing
			if i < len(row) {
				v = Cell(row[i])
			}
			pdf.Text(Margin+float64(i)*colWidth, ys[r], fit(pdf, tr(v), colWidth))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit trims s until it is narrower than width, leaving a little padding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	max := width - 2
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)) > max {
		r = r[:len(r)-1]
	}
	return string(r)
}
