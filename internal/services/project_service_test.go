package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispcrm/internal/models"
	"ispcrm/internal/repositories"
)

type stubLeadRepo struct {
	leads map[int]*models.Lead
}

func (s *stubLeadRepo) Create(lead *models.Lead) error   { lead.ID = 1; return nil }
func (s *stubLeadRepo) Update(lead *models.Lead) error   { return nil }
func (s *stubLeadRepo) Delete(id int) (bool, error)      { return true, nil }
func (s *stubLeadRepo) GetByID(id int) (*models.Lead, error) {
	return s.leads[id], nil
}
func (s *stubLeadRepo) List(f repositories.LeadFilter) ([]models.Lead, error) { return nil, nil }
func (s *stubLeadRepo) Stats(ownerID int) (*models.LeadStats, error)          { return &models.LeadStats{}, nil }

type stubProductRepo struct {
	products map[int]*models.Product
}

func (s *stubProductRepo) Create(p *models.Product) error { p.ID = 1; return nil }
func (s *stubProductRepo) Update(p *models.Product) (bool, error) { return true, nil }
func (s *stubProductRepo) Delete(id int) (bool, error)            { return true, nil }
func (s *stubProductRepo) GetByID(id int) (*models.Product, error) {
	return s.products[id], nil
}
func (s *stubProductRepo) List(limit, offset int) ([]models.Product, error) { return nil, nil }

type stubProjectRepo struct {
	created     *models.Project
	items       []models.ProjectItem
	convertLead bool
	pending     map[int]bool // projects currently in waiting_approval
}

func (s *stubProjectRepo) CreateWithItems(p *models.Project, items []models.ProjectItem, convertLead bool) error {
	p.ID = 42
	s.created = p
	s.items = items
	s.convertLead = convertLead
	return nil
}

func (s *stubProjectRepo) Approve(projectID, approverID int) (*models.Project, error) {
	if !s.pending[projectID] {
		return nil, nil
	}
	delete(s.pending, projectID)
	return &models.Project{ID: projectID, Status: models.ProjectStatusApproved, ApprovedBy: &approverID}, nil
}

func (s *stubProjectRepo) Reject(projectID int, reason string) (*models.Project, error) {
	if !s.pending[projectID] {
		return nil, nil
	}
	delete(s.pending, projectID)
	return &models.Project{ID: projectID, Status: models.ProjectStatusRejected, RejectionReason: &reason}, nil
}

func (s *stubProjectRepo) GetByID(id, ownerID int) (*models.ProjectDetail, error) { return nil, nil }
func (s *stubProjectRepo) List(f repositories.ProjectFilter) ([]models.ProjectSummary, error) {
	return nil, nil
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func newProjectFixture() (*ProjectService, *stubProjectRepo) {
	leads := &stubLeadRepo{leads: map[int]*models.Lead{
		7: {ID: 7, UserID: 1, Name: "PT Maju", Status: models.LeadStatusQualified},
	}}
	// catalog price: 100000 * 1.30 = 130000
	products := &stubProductRepo{products: map[int]*models.Product{
		3: {ID: 3, Name: "Home 50 Mbps", HPP: dec("100000"), Margin: dec("30")},
	}}
	repo := &stubProjectRepo{pending: map[int]bool{}}
	return NewProjectService(repo, leads, products, nil), repo
}

func TestProjectCreateAtCatalogPriceAutoApproves(t *testing.T) {
	svc, repo := newProjectFixture()
	sales := &models.User{ID: 1, Name: "Andi", Role: models.RoleSales}

	project, items, needsApproval, err := svc.Create(sales, &CreateProjectRequest{
		LeadID: 7,
		Items:  []CreateProjectItem{{ProductID: 3, NegotiatedPrice: dec("130000"), Quantity: 2}},
	})
	require.NoError(t, err)

	assert.False(t, needsApproval)
	assert.Equal(t, models.ProjectStatusApproved, project.Status)
	assert.True(t, repo.convertLead, "auto-approved project must convert its lead")
	require.Len(t, items, 1)
	assert.True(t, items[0].Subtotal.Equal(dec("260000")))
	assert.True(t, items[0].RegularPrice.Equal(dec("130000")))
}

func TestProjectCreateBelowCatalogPriceWaitsForApproval(t *testing.T) {
	svc, repo := newProjectFixture()
	sales := &models.User{ID: 1, Name: "Andi", Role: models.RoleSales}

	project, _, needsApproval, err := svc.Create(sales, &CreateProjectRequest{
		LeadID: 7,
		Items:  []CreateProjectItem{{ProductID: 3, NegotiatedPrice: dec("129999.99")}},
	})
	require.NoError(t, err)

	assert.True(t, needsApproval)
	assert.Equal(t, models.ProjectStatusWaitingApproval, project.Status)
	assert.False(t, repo.convertLead, "pending project must not touch the lead")
}

func TestProjectCreateDefaultsQuantityToOne(t *testing.T) {
	svc, repo := newProjectFixture()
	sales := &models.User{ID: 1, Role: models.RoleSales}

	_, items, _, err := svc.Create(sales, &CreateProjectRequest{
		LeadID: 7,
		Items:  []CreateProjectItem{{ProductID: 3, NegotiatedPrice: dec("130000"), Quantity: 0}},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.NotNil(t, repo.created)
}

func TestProjectCreateRejectsEmptyItems(t *testing.T) {
	svc, _ := newProjectFixture()
	sales := &models.User{ID: 1, Role: models.RoleSales}

	_, _, _, err := svc.Create(sales, &CreateProjectRequest{LeadID: 7})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjectCreateHidesForeignLeadFromSales(t *testing.T) {
	svc, _ := newProjectFixture()
	otherSales := &models.User{ID: 2, Role: models.RoleSales}

	_, _, _, err := svc.Create(otherSales, &CreateProjectRequest{
		LeadID: 7,
		Items:  []CreateProjectItem{{ProductID: 3, NegotiatedPrice: dec("130000")}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectCreateManagerMayUseAnyLead(t *testing.T) {
	svc, _ := newProjectFixture()
	manager := &models.User{ID: 9, Role: models.RoleManager}

	_, _, _, err := svc.Create(manager, &CreateProjectRequest{
		LeadID: 7,
		Items:  []CreateProjectItem{{ProductID: 3, NegotiatedPrice: dec("130000")}},
	})
	assert.NoError(t, err)
}

func TestProjectCreateUnknownProduct(t *testing.T) {
	svc, _ := newProjectFixture()
	sales := &models.User{ID: 1, Role: models.RoleSales}

	_, _, _, err := svc.Create(sales, &CreateProjectRequest{
		LeadID: 7,
		Items:  []CreateProjectItem{{ProductID: 999, NegotiatedPrice: dec("130000")}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideApprove(t *testing.T) {
	svc, repo := newProjectFixture()
	repo.pending[42] = true
	manager := &models.User{ID: 9, Role: models.RoleManager}

	project, err := svc.Decide(manager, 42, DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusApproved, project.Status)
	require.NotNil(t, project.ApprovedBy)
	assert.Equal(t, 9, *project.ApprovedBy)
}

func TestDecideReject(t *testing.T) {
	svc, repo := newProjectFixture()
	repo.pending[42] = true
	manager := &models.User{ID: 9, Role: models.RoleManager}

	project, err := svc.Decide(manager, 42, DecisionReject, "discount too deep")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusRejected, project.Status)
	require.NotNil(t, project.RejectionReason)
	assert.Equal(t, "discount too deep", *project.RejectionReason)
}

func TestDecideOnSettledProject(t *testing.T) {
	svc, _ := newProjectFixture()
	manager := &models.User{ID: 9, Role: models.RoleManager}

	// nothing pending: repo reports no matching row
	_, err := svc.Decide(manager, 42, DecisionApprove, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Decide(manager, 42, DecisionReject, "late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecideUnknownAction(t *testing.T) {
	svc, _ := newProjectFixture()
	manager := &models.User{ID: 9, Role: models.RoleManager}

	_, err := svc.Decide(manager, 42, "escalate", "")
	assert.ErrorIs(t, err, ErrValidation)
}
