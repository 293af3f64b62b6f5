package repositories

import (
	"database/sql"
	"fmt"

	"ispcrm/internal/models"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns customers with joined lead columns and a count of active
// services. ownerID > 0 restricts to that salesperson's customers.
func (r *CustomerRepository) List(ownerID, limit, offset int) ([]models.Customer, error) {
	query := `
		SELECT c.id, c.lead_id, c.user_id, c.subscription_date, c.created_at,
		       COALESCE(l.name, ''), COALESCE(l.contact, ''), COALESCE(l.address, ''),
		       COALESCE(u.name, ''),
		       COUNT(cs.id) AS total_services,
		       MAX(cs.end_date) AS latest_end_date
		FROM customers c
		LEFT JOIN leads l ON c.lead_id = l.id
		LEFT JOIN users u ON c.user_id = u.id
		LEFT JOIN customer_services cs ON c.id = cs.customer_id AND cs.status = 'active'
		WHERE 1=1
	`
	args := []interface{}{}
	i := 1

	if ownerID > 0 {
		query += fmt.Sprintf(" AND c.user_id = $%d", i)
		args = append(args, ownerID)
		i++
	}

	query += fmt.Sprintf(`
		GROUP BY c.id, l.name, l.contact, l.address, u.name
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		var (
			c       models.Customer
			endDate sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.LeadID, &c.UserID, &c.SubscriptionDate, &c.CreatedAt,
			&c.CustomerName, &c.CustomerContact, &c.CustomerAddress, &c.SalesName,
			&c.TotalServices, &endDate); err != nil {
			return nil, err
		}
		if endDate.Valid {
			t := endDate.Time
			c.LatestEndDate = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns the customer and its service list. ownerID > 0
// restricts visibility; an invisible customer reads as absent.
func (r *CustomerRepository) GetByID(id, ownerID int) (*models.CustomerDetail, error) {
	query := `
		SELECT c.id, c.lead_id, c.user_id, c.subscription_date, c.created_at,
		       COALESCE(l.name, ''), COALESCE(l.contact, ''), COALESCE(l.address, ''),
		       COALESCE(u.name, '')
		FROM customers c
		LEFT JOIN leads l ON c.lead_id = l.id
		LEFT JOIN users u ON c.user_id = u.id
		WHERE c.id = $1
	`
	args := []interface{}{id}
	if ownerID > 0 {
		query += " AND c.user_id = $2"
		args = append(args, ownerID)
	}

	var d models.CustomerDetail
	err := r.db.QueryRow(query, args...).Scan(&d.ID, &d.LeadID, &d.UserID, &d.SubscriptionDate, &d.CreatedAt,
		&d.CustomerName, &d.CustomerContact, &d.CustomerAddress, &d.SalesName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer by id: %w", err)
	}

	const servicesQuery = `
		SELECT cs.id, cs.customer_id, cs.product_id, cs.start_date, cs.end_date, cs.status,
		       COALESCE(p.name, ''), COALESCE(ROUND(p.hpp * (1 + p.margin / 100), 2), 0) AS regular_price
		FROM customer_services cs
		LEFT JOIN products p ON cs.product_id = p.id
		WHERE cs.customer_id = $1
		ORDER BY cs.start_date DESC
	`
	rows, err := r.db.Query(servicesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get customer services: %w", err)
	}
	defer rows.Close()

	d.Services = []models.CustomerService{}
	for rows.Next() {
		var (
			s       models.CustomerService
			endDate sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.StartDate, &endDate, &s.Status,
			&s.ProductName, &s.RegularPrice); err != nil {
			return nil, err
		}
		if endDate.Valid {
			t := endDate.Time
			s.EndDate = &t
		}
		d.Services = append(d.Services, s)
	}
	d.TotalServices = len(d.Services)
	return &d, rows.Err()
}

func (r *CustomerRepository) AddService(svc *models.CustomerService) error {
	const q = `
		INSERT INTO customer_services (customer_id, product_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.db.QueryRow(q, svc.CustomerID, svc.ProductID, svc.StartDate, svc.EndDate, svc.Status).
		Scan(&svc.ID); err != nil {
		return fmt.Errorf("add customer service: %w", err)
	}
	return nil
}
