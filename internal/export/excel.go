package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ispcrm/internal/models"
)

var salesReportHeaders = []string{"Sales Name", "Total Leads", "Approved Projects", "Total Customers", "Total Sales Value"}

// SalesReportXLSX renders the rollup as a single-sheet workbook.
func SalesReportXLSX(rows []models.SalesReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range salesReportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.SalesName,
			row.TotalLeads,
			row.ApprovedProjects,
			row.TotalCustomers,
			row.TotalSalesValue.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
