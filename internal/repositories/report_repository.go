package repositories

import (
	"database/sql"
	"fmt"

	"ispcrm/internal/models"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SalesSummary aggregates per-salesperson lead, approved-project and
// customer counts plus approved revenue, over an optional date range.
// onlyUserID > 0 restricts the rollup to a single salesperson.
func (r *ReportRepository) SalesSummary(startDate, endDate string, onlyUserID int) ([]models.SalesReportRow, error) {
	query := `
		SELECT
			u.name AS sales_name,
			COUNT(DISTINCT l.id) AS total_leads,
			COUNT(DISTINCT CASE WHEN p.status = 'approved' THEN p.id END) AS approved_projects,
			COUNT(DISTINCT c.id) AS total_customers,
			COALESCE(SUM(CASE WHEN p.status = 'approved' THEN pi.negotiated_price * pi.quantity END), 0) AS total_sales_value
		FROM users u
		LEFT JOIN leads l ON u.id = l.user_id
		LEFT JOIN projects p ON u.id = p.user_id
		LEFT JOIN customers c ON u.id = c.user_id
		LEFT JOIN project_items pi ON p.id = pi.project_id AND p.status = 'approved'
		WHERE u.role = 'sales'
	`
	args := []interface{}{}
	i := 1

	if startDate != "" && endDate != "" {
		query += fmt.Sprintf(`
			AND (
				(l.created_at BETWEEN $%d AND $%d) OR
				(p.created_at BETWEEN $%d AND $%d) OR
				(c.created_at BETWEEN $%d AND $%d)
			)`, i, i+1, i, i+1, i, i+1)
		args = append(args, startDate, endDate)
		i += 2
	}
	if onlyUserID > 0 {
		query += fmt.Sprintf(" AND u.id = $%d", i)
		args = append(args, onlyUserID)
	}

	query += `
		GROUP BY u.id, u.name
		ORDER BY total_sales_value DESC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	defer rows.Close()

	out := []models.SalesReportRow{}
	for rows.Next() {
		var row models.SalesReportRow
		if err := rows.Scan(&row.SalesName, &row.TotalLeads, &row.ApprovedProjects,
			&row.TotalCustomers, &row.TotalSalesValue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LeadsByStatus buckets lead counts by status and creation month.
func (r *ReportRepository) LeadsByStatus(startDate, endDate string, onlyUserID int) ([]models.LeadStatusBucket, error) {
	query := `
		SELECT status, COUNT(*) AS count, TO_CHAR(created_at, 'YYYY-MM') AS month
		FROM leads
		WHERE 1=1
	`
	args := []interface{}{}
	i := 1

	if startDate != "" && endDate != "" {
		query += fmt.Sprintf(" AND created_at BETWEEN $%d AND $%d", i, i+1)
		args = append(args, startDate, endDate)
		i += 2
	}
	if onlyUserID > 0 {
		query += fmt.Sprintf(" AND user_id = $%d", i)
		args = append(args, onlyUserID)
	}

	query += `
		GROUP BY status, TO_CHAR(created_at, 'YYYY-MM')
		ORDER BY month, status
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("leads by status: %w", err)
	}
	defer rows.Close()

	out := []models.LeadStatusBucket{}
	for rows.Next() {
		var b models.LeadStatusBucket
		if err := rows.Scan(&b.Status, &b.Count, &b.Month); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
