package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ispcrm/internal/models"
)

// SalesReportPDF renders the rollup as a printable table.
func SalesReportPDF(rows []models.SalesReportRow, startDate, endDate string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Sales Report", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	period := "all time"
	if startDate != "" && endDate != "" {
		period = fmt.Sprintf("%s - %s", startDate, endDate)
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s    Generated: %s", period, time.Now().Format("2006-01-02")),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{80, 35, 40, 40, 50}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range salesReportHeaders {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, row.SalesName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", row.TotalLeads), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", row.ApprovedProjects), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", row.TotalCustomers), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, row.TotalSalesValue.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	if len(rows) == 0 {
		pdf.CellFormat(0, 7, "No data for the selected period", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
