package repositories

import (
	"database/sql"
	"fmt"

	"ispcrm/internal/models"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// LeadFilter narrows List. OwnerID = 0 means unscoped (manager view).
type LeadFilter struct {
	OwnerID int
	Status  string
	Search  string
	Limit   int
	Offset  int
}

func (r *LeadRepository) Create(lead *models.Lead) error {
	const q = `
		INSERT INTO leads (user_id, name, contact, address, requirement, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRow(q, lead.UserID, lead.Name, lead.Contact, lead.Address, lead.Requirement, lead.Status).
		Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Update(lead *models.Lead) error {
	const q = `
		UPDATE leads
		SET name=$1, contact=$2, address=$3, requirement=$4, status=$5, updated_at=CURRENT_TIMESTAMP
		WHERE id=$6
		RETURNING updated_at
	`
	if err := r.db.QueryRow(q, lead.Name, lead.Contact, lead.Address, lead.Requirement, lead.Status, lead.ID).
		Scan(&lead.UpdatedAt); err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) GetByID(id int) (*models.Lead, error) {
	const q = `
		SELECT l.id, l.user_id, l.name, l.contact, l.address, COALESCE(l.requirement, ''), l.status,
		       l.created_at, l.updated_at, COALESCE(u.name, '')
		FROM leads l
		LEFT JOIN users u ON l.user_id = u.id
		WHERE l.id = $1
	`
	var l models.Lead
	err := r.db.QueryRow(q, id).Scan(&l.ID, &l.UserID, &l.Name, &l.Contact, &l.Address, &l.Requirement,
		&l.Status, &l.CreatedAt, &l.UpdatedAt, &l.SalesName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return &l, nil
}

func (r *LeadRepository) Delete(id int) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeadRepository) List(f LeadFilter) ([]models.Lead, error) {
	query := `
		SELECT l.id, l.user_id, l.name, l.contact, l.address, COALESCE(l.requirement, ''), l.status,
		       l.created_at, l.updated_at, COALESCE(u.name, '')
		FROM leads l
		LEFT JOIN users u ON l.user_id = u.id
		WHERE 1=1
	`
	args := []interface{}{}
	i := 1

	if f.OwnerID > 0 {
		query += fmt.Sprintf(" AND l.user_id = $%d", i)
		args = append(args, f.OwnerID)
		i++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND l.status = $%d", i)
		args = append(args, f.Status)
		i++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (l.name ILIKE $%d OR l.contact ILIKE $%d OR l.address ILIKE $%d)", i, i, i)
		args = append(args, "%"+f.Search+"%")
		i++
	}

	query += fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	out := []models.Lead{}
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Contact, &l.Address, &l.Requirement,
			&l.Status, &l.CreatedAt, &l.UpdatedAt, &l.SalesName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Stats counts leads per status. ownerID = 0 counts all.
func (r *LeadRepository) Stats(ownerID int) (*models.LeadStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_leads,
			COUNT(CASE WHEN status = 'new' THEN 1 END) AS new_leads,
			COUNT(CASE WHEN status = 'contacted' THEN 1 END) AS contacted_leads,
			COUNT(CASE WHEN status = 'qualified' THEN 1 END) AS qualified_leads,
			COUNT(CASE WHEN status = 'converted' THEN 1 END) AS converted_leads
		FROM leads
		WHERE 1=1
	`
	args := []interface{}{}
	if ownerID > 0 {
		query += " AND user_id = $1"
		args = append(args, ownerID)
	}

	var s models.LeadStats
	if err := r.db.QueryRow(query, args...).
		Scan(&s.TotalLeads, &s.NewLeads, &s.ContactedLeads, &s.QualifiedLeads, &s.ConvertedLeads); err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	return &s, nil
}
