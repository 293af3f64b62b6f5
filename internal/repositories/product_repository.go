package repositories

import (
	"database/sql"
	"fmt"

	"ispcrm/internal/models"
)

// priceExpr derives the catalog sale price from cost and margin on every
// read, so a stored value can never drift from the formula.
const priceExpr = "ROUND(hpp * (1 + margin / 100), 2)"

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	q := `
		INSERT INTO products (name, description, hpp, margin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ` + priceExpr + ` AS price, created_at
	`
	if err := r.db.QueryRow(q, p.Name, p.Description, p.HPP, p.Margin).
		Scan(&p.ID, &p.Price, &p.CreatedAt); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(p *models.Product) (bool, error) {
	q := `
		UPDATE products
		SET name=$1, description=$2, hpp=$3, margin=$4
		WHERE id=$5
		RETURNING ` + priceExpr + ` AS price, created_at
	`
	err := r.db.QueryRow(q, p.Name, p.Description, p.HPP, p.Margin, p.ID).Scan(&p.Price, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	return true, nil
}

func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	q := `
		SELECT id, name, COALESCE(description, ''), hpp, margin, ` + priceExpr + ` AS price, created_at
		FROM products
		WHERE id = $1
	`
	var p models.Product
	err := r.db.QueryRow(q, id).Scan(&p.ID, &p.Name, &p.Description, &p.HPP, &p.Margin, &p.Price, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Delete(id int) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductRepository) List(limit, offset int) ([]models.Product, error) {
	q := `
		SELECT id, name, COALESCE(description, ''), hpp, margin, ` + priceExpr + ` AS price, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.HPP, &p.Margin, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
