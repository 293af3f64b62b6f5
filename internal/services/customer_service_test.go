package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispcrm/internal/models"
)

type stubCustomerRepo struct {
	customers map[int]*models.CustomerDetail
	added     *models.CustomerService
}

func (s *stubCustomerRepo) List(ownerID, limit, offset int) ([]models.Customer, error) {
	return nil, nil
}

func (s *stubCustomerRepo) GetByID(id, ownerID int) (*models.CustomerDetail, error) {
	d := s.customers[id]
	if d != nil && ownerID != 0 && d.UserID != ownerID {
		return nil, nil
	}
	return d, nil
}

func (s *stubCustomerRepo) AddService(svc *models.CustomerService) error {
	svc.ID = 1
	s.added = svc
	return nil
}

func newCustomerFixture() (*CustomerService, *stubCustomerRepo) {
	repo := &stubCustomerRepo{customers: map[int]*models.CustomerDetail{
		5: {Customer: models.Customer{ID: 5, UserID: 1, CustomerName: "PT Maju"}},
	}}
	products := &stubProductRepo{products: map[int]*models.Product{
		3: {ID: 3, Name: "Home 50 Mbps", HPP: dec("100000"), Margin: dec("30")},
	}}
	return NewCustomerService(repo, products), repo
}

func TestAddService(t *testing.T) {
	svc, repo := newCustomerFixture()
	owner := &models.User{ID: 1, Role: models.RoleSales}

	added, err := svc.AddService(owner, 5, &AddServiceRequest{
		ProductID: 3,
		StartDate: "2026-08-01",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ServiceStatusActive, added.Status)
	assert.Equal(t, "Home 50 Mbps", added.ProductName)
	assert.True(t, added.RegularPrice.Equal(dec("130000")))
	assert.Nil(t, added.EndDate)
	assert.Equal(t, repo.added, added)
}

func TestAddServiceRejectsBadDates(t *testing.T) {
	svc, _ := newCustomerFixture()
	owner := &models.User{ID: 1, Role: models.RoleSales}

	_, err := svc.AddService(owner, 5, &AddServiceRequest{ProductID: 3, StartDate: "01-08-2026"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddService(owner, 5, &AddServiceRequest{ProductID: 3, StartDate: "2026-08-01", EndDate: "soon"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddServiceUnknownProduct(t *testing.T) {
	svc, _ := newCustomerFixture()
	owner := &models.User{ID: 1, Role: models.RoleSales}

	_, err := svc.AddService(owner, 5, &AddServiceRequest{ProductID: 999, StartDate: "2026-08-01"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerHiddenFromOtherSales(t *testing.T) {
	svc, _ := newCustomerFixture()
	other := &models.User{ID: 2, Role: models.RoleSales}

	_, err := svc.GetByID(other, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	manager := &models.User{ID: 9, Role: models.RoleManager}
	_, err = svc.GetByID(manager, 5)
	assert.NoError(t, err)
}
