package models

import "github.com/shopspring/decimal"

// SalesReportRow is the per-salesperson rollup. Sales value sums item
// subtotals of approved projects only.
type SalesReportRow struct {
	SalesName        string          `json:"sales_name"`
	TotalLeads       int             `json:"total_leads"`
	ApprovedProjects int             `json:"approved_projects"`
	TotalCustomers   int             `json:"total_customers"`
	TotalSalesValue  decimal.Decimal `json:"total_sales_value"`
}

type LeadStatusBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Month  string `json:"month"`
}
