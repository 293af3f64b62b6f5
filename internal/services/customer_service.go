package services

import (
	"fmt"
	"time"

	"ispcrm/internal/authz"
	"ispcrm/internal/models"
)

type CustomerRepository interface {
	List(ownerID, limit, offset int) ([]models.Customer, error)
	GetByID(id, ownerID int) (*models.CustomerDetail, error)
	AddService(svc *models.CustomerService) error
}

type AddServiceRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
}

// CustomerService manages converted subscribers. Customer rows are only
// ever created by project approval; this service reads them and attaches
// subscribed products.
type CustomerService struct {
	repo     CustomerRepository
	products ProductRepository
}

func NewCustomerService(repo CustomerRepository, products ProductRepository) *CustomerService {
	return &CustomerService{repo: repo, products: products}
}

func (s *CustomerService) List(user *models.User, limit, offset int) ([]models.Customer, error) {
	return s.repo.List(authz.OwnerScope(user), limit, offset)
}

func (s *CustomerService) GetByID(user *models.User, id int) (*models.CustomerDetail, error) {
	d, err := s.repo.GetByID(id, authz.OwnerScope(user))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return d, nil
}

func (s *CustomerService) AddService(user *models.User, customerID int, req *AddServiceRequest) (*models.CustomerService, error) {
	if _, err := s.GetByID(user, customerID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", req.ProductID, ErrNotFound)
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date %q: %w", req.StartDate, ErrValidation)
	}
	var end *time.Time
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date %q: %w", req.EndDate, ErrValidation)
		}
		end = &t
	}

	svc := &models.CustomerService{
		CustomerID:   customerID,
		ProductID:    req.ProductID,
		StartDate:    start,
		EndDate:      end,
		Status:       models.ServiceStatusActive,
		ProductName:  product.Name,
		RegularPrice: SalePrice(product.HPP, product.Margin),
	}
	if err := s.repo.AddService(svc); err != nil {
		return nil, err
	}
	return svc, nil
}
