package services

import (
	"fmt"

	"ispcrm/internal/models"
)

type ProductRepository interface {
	Create(p *models.Product) error
	Update(p *models.Product) (bool, error)
	GetByID(id int) (*models.Product, error)
	Delete(id int) (bool, error)
	List(limit, offset int) ([]models.Product, error)
}

// ProductService is catalog CRUD. Write access is gated to managers at
// the routing layer; the catalog itself is visible to everyone.
type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(p *models.Product) error {
	return s.repo.Create(p)
}

func (s *ProductService) Update(p *models.Product) error {
	ok, err := s.repo.Update(p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *ProductService) GetByID(id int) (*models.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *ProductService) Delete(id int) error {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *ProductService) List(limit, offset int) ([]models.Product, error) {
	return s.repo.List(limit, offset)
}
