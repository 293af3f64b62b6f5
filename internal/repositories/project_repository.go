package repositories

import (
	"database/sql"
	"fmt"

	"ispcrm/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectFilter narrows List. OwnerID = 0 means unscoped (manager view).
type ProjectFilter struct {
	OwnerID int
	Status  string
	Limit   int
	Offset  int
}

// CreateWithItems persists a project and its items atomically. When
// convertLead is set (gate passed at creation time) the lead flips to
// converted and the customer row is inserted in the same transaction.
func (r *ProjectRepository) CreateWithItems(p *models.Project, items []models.ProjectItem, convertLead bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertProject = `
		INSERT INTO projects (lead_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(insertProject, p.LeadID, p.UserID, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	const insertItem = `
		INSERT INTO project_items (project_id, product_id, negotiated_price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for idx := range items {
		items[idx].ProjectID = p.ID
		if err := tx.QueryRow(insertItem, p.ID, items[idx].ProductID, items[idx].NegotiatedPrice, items[idx].Quantity).
			Scan(&items[idx].ID); err != nil {
			return fmt.Errorf("insert project item: %w", err)
		}
	}

	if convertLead {
		if err := convertLeadTx(tx, p.LeadID, p.UserID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Approve flips a pending project to approved and converts its lead,
// all in one transaction. The conditional UPDATE makes concurrent
// approvals race-safe: only the call that finds the row still pending
// proceeds. Returns nil when the project was not waiting for approval.
func (r *ProjectRepository) Approve(projectID, approverID int) (*models.Project, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const approve = `
		UPDATE projects
		SET status='approved', approved_by=$1, approval_date=CURRENT_TIMESTAMP, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2 AND status='waiting_approval'
		RETURNING id, lead_id, user_id, status, approved_by, approval_date, rejection_reason, created_at, updated_at
	`
	p, err := scanProject(tx.QueryRow(approve, approverID, projectID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("approve project: %w", err)
	}

	if err := convertLeadTx(tx, p.LeadID, p.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

// Reject stores the reason. Returns nil when the project was not pending.
func (r *ProjectRepository) Reject(projectID int, reason string) (*models.Project, error) {
	const reject = `
		UPDATE projects
		SET status='rejected', rejection_reason=$1, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2 AND status='waiting_approval'
		RETURNING id, lead_id, user_id, status, approved_by, approval_date, rejection_reason, created_at, updated_at
	`
	p, err := scanProject(r.db.QueryRow(reject, reason, projectID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reject project: %w", err)
	}
	return p, nil
}

// GetByID returns the project with resolved names and its item list,
// each item carrying catalog and negotiated price side by side.
// ownerID > 0 restricts visibility to that salesperson's projects.
func (r *ProjectRepository) GetByID(id, ownerID int) (*models.ProjectDetail, error) {
	query := `
		SELECT p.id, p.lead_id, p.user_id, p.status, p.approved_by, p.approval_date, p.rejection_reason,
		       p.created_at, p.updated_at,
		       COALESCE(l.name, ''), COALESCE(l.contact, ''), COALESCE(l.address, ''),
		       COALESCE(u.name, ''), m.name
		FROM projects p
		LEFT JOIN leads l ON p.lead_id = l.id
		LEFT JOIN users u ON p.user_id = u.id
		LEFT JOIN users m ON p.approved_by = m.id
		WHERE p.id = $1
	`
	args := []interface{}{id}
	if ownerID > 0 {
		query += " AND p.user_id = $2"
		args = append(args, ownerID)
	}

	var (
		d          models.ProjectDetail
		approvedBy sql.NullInt64
		approvedAt sql.NullTime
		reason     sql.NullString
		approver   sql.NullString
	)
	err := r.db.QueryRow(query, args...).Scan(
		&d.ID, &d.LeadID, &d.UserID, &d.Status, &approvedBy, &approvedAt, &reason,
		&d.CreatedAt, &d.UpdatedAt,
		&d.LeadName, &d.LeadContact, &d.LeadAddress, &d.SalesName, &approver,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	applyNullable(&d.Project, approvedBy, approvedAt, reason)
	if approver.Valid {
		d.ApprovedByName = &approver.String
	}

	const itemsQuery = `
		SELECT pi.id, pi.project_id, pi.product_id, pi.negotiated_price, pi.quantity,
		       (pi.negotiated_price * pi.quantity) AS subtotal,
		       COALESCE(pr.name, ''), COALESCE(ROUND(pr.hpp * (1 + pr.margin / 100), 2), 0) AS regular_price
		FROM project_items pi
		LEFT JOIN products pr ON pi.product_id = pr.id
		WHERE pi.project_id = $1
		ORDER BY pi.id
	`
	rows, err := r.db.Query(itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get project items: %w", err)
	}
	defer rows.Close()

	d.Items = []models.ProjectItem{}
	for rows.Next() {
		var it models.ProjectItem
		if err := rows.Scan(&it.ID, &it.ProjectID, &it.ProductID, &it.NegotiatedPrice, &it.Quantity,
			&it.Subtotal, &it.ProductName, &it.RegularPrice); err != nil {
			return nil, err
		}
		d.Items = append(d.Items, it)
	}
	return &d, rows.Err()
}

func (r *ProjectRepository) List(f ProjectFilter) ([]models.ProjectSummary, error) {
	query := `
		SELECT p.id, p.lead_id, p.user_id, p.status, p.approved_by, p.approval_date, p.rejection_reason,
		       p.created_at, p.updated_at,
		       COALESCE(l.name, ''), COALESCE(l.contact, ''), COALESCE(u.name, ''), m.name,
		       COUNT(pi.id) AS total_items,
		       COALESCE(SUM(pi.negotiated_price * pi.quantity), 0) AS total_value
		FROM projects p
		LEFT JOIN leads l ON p.lead_id = l.id
		LEFT JOIN users u ON p.user_id = u.id
		LEFT JOIN users m ON p.approved_by = m.id
		LEFT JOIN project_items pi ON p.id = pi.project_id
		WHERE 1=1
	`
	args := []interface{}{}
	i := 1

	if f.OwnerID > 0 {
		query += fmt.Sprintf(" AND p.user_id = $%d", i)
		args = append(args, f.OwnerID)
		i++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND p.status = $%d", i)
		args = append(args, f.Status)
		i++
	}

	query += fmt.Sprintf(`
		GROUP BY p.id, l.name, l.contact, u.name, m.name
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []models.ProjectSummary{}
	for rows.Next() {
		var (
			s          models.ProjectSummary
			approvedBy sql.NullInt64
			approvedAt sql.NullTime
			reason     sql.NullString
			approver   sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.LeadID, &s.UserID, &s.Status, &approvedBy, &approvedAt, &reason,
			&s.CreatedAt, &s.UpdatedAt,
			&s.LeadName, &s.LeadContact, &s.SalesName, &approver,
			&s.TotalItems, &s.TotalValue); err != nil {
			return nil, err
		}
		applyNullable(&s.Project, approvedBy, approvedAt, reason)
		if approver.Valid {
			s.ApprovedByName = &approver.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// convertLeadTx performs the shared approval side effect: the lead flips
// to converted and the customer row appears. ON CONFLICT keeps the
// lead -> customer mapping unique even if a second project for the same
// lead reaches approved.
func convertLeadTx(tx *sql.Tx, leadID, salesID int) error {
	if _, err := tx.Exec(
		`UPDATE leads SET status='converted', updated_at=CURRENT_TIMESTAMP WHERE id=$1`, leadID); err != nil {
		return fmt.Errorf("convert lead: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO customers (lead_id, user_id, subscription_date)
		 VALUES ($1, $2, CURRENT_DATE)
		 ON CONFLICT (lead_id) DO NOTHING`, leadID, salesID); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func scanProject(row *sql.Row) (*models.Project, error) {
	var (
		p          models.Project
		approvedBy sql.NullInt64
		approvedAt sql.NullTime
		reason     sql.NullString
	)
	if err := row.Scan(&p.ID, &p.LeadID, &p.UserID, &p.Status, &approvedBy, &approvedAt, &reason,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	applyNullable(&p, approvedBy, approvedAt, reason)
	return &p, nil
}

func applyNullable(p *models.Project, approvedBy sql.NullInt64, approvedAt sql.NullTime, reason sql.NullString) {
	if approvedBy.Valid {
		v := int(approvedBy.Int64)
		p.ApprovedBy = &v
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		p.ApprovalDate = &t
	}
	if reason.Valid {
		p.RejectionReason = &reason.String
	}
}
