package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ispcrm/internal/models"
)

func TestSalesReportXLSX(t *testing.T) {
	rows := []models.SalesReportRow{
		{SalesName: "Andi", TotalLeads: 12, ApprovedProjects: 4, TotalCustomers: 4, TotalSalesValue: decimal.RequireFromString("1560000")},
		{SalesName: "Sari", TotalLeads: 7, ApprovedProjects: 1, TotalCustomers: 1, TotalSalesValue: decimal.RequireFromString("390000")},
	}

	data, err := SalesReportXLSX(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sales Report")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, salesReportHeaders, got[0])
	assert.Equal(t, "Andi", got[1][0])
	assert.Equal(t, "Sari", got[2][0])
}

func TestSalesReportXLSXEmpty(t *testing.T) {
	data, err := SalesReportXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sales Report")
	require.NoError(t, err)
	require.Len(t, got, 1, "header only")
}

func TestSalesReportPDF(t *testing.T) {
	rows := []models.SalesReportRow{
		{SalesName: "Andi", TotalLeads: 12, ApprovedProjects: 4, TotalCustomers: 4, TotalSalesValue: decimal.RequireFromString("1560000")},
	}
	data, err := SalesReportPDF(rows, "2026-01-01", "2026-06-30")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
