package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ispcrm/internal/authz"
	"ispcrm/internal/models"
	"ispcrm/internal/repositories"
)

type ProjectRepository interface {
	CreateWithItems(p *models.Project, items []models.ProjectItem, convertLead bool) error
	Approve(projectID, approverID int) (*models.Project, error)
	Reject(projectID int, reason string) (*models.Project, error)
	GetByID(id, ownerID int) (*models.ProjectDetail, error)
	List(f repositories.ProjectFilter) ([]models.ProjectSummary, error)
}

type CreateProjectItem struct {
	ProductID       int             `json:"product_id" binding:"required"`
	NegotiatedPrice decimal.Decimal `json:"negotiated_price"`
	Quantity        int             `json:"quantity"`
}

type CreateProjectRequest struct {
	LeadID int                 `json:"lead_id" binding:"required"`
	Items  []CreateProjectItem `json:"items" binding:"required"`
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type ProjectService struct {
	repo     ProjectRepository
	leads    LeadRepository
	products ProductRepository
	notifier *Notifier
}

func NewProjectService(repo ProjectRepository, leads LeadRepository, products ProductRepository, notifier *Notifier) *ProjectService {
	return &ProjectService{repo: repo, leads: leads, products: products, notifier: notifier}
}

// Create runs the approval gate over the submitted items and persists
// the project atomically. A proposal with every item at or above
// catalog price is born approved and converts its lead immediately;
// anything else starts in waiting_approval and touches nothing else.
func (s *ProjectService) Create(user *models.User, req *CreateProjectRequest) (*models.Project, []models.ProjectItem, bool, error) {
	if len(req.Items) == 0 {
		return nil, nil, false, fmt.Errorf("items are required: %w", ErrValidation)
	}

	lead, err := s.leads.GetByID(req.LeadID)
	if err != nil {
		return nil, nil, false, err
	}
	if lead == nil || !authz.CanAccessRecord(user, lead.UserID) {
		return nil, nil, false, fmt.Errorf("lead %d: %w", req.LeadID, ErrNotFound)
	}

	proposed := make([]ProposedItem, 0, len(req.Items))
	items := make([]models.ProjectItem, 0, len(req.Items))
	for _, in := range req.Items {
		product, err := s.products.GetByID(in.ProductID)
		if err != nil {
			return nil, nil, false, err
		}
		if product == nil {
			return nil, nil, false, fmt.Errorf("product %d: %w", in.ProductID, ErrNotFound)
		}

		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		catalog := SalePrice(product.HPP, product.Margin)
		proposed = append(proposed, ProposedItem{
			ProductID:       in.ProductID,
			NegotiatedPrice: in.NegotiatedPrice,
			CatalogPrice:    catalog,
			Quantity:        qty,
		})
		items = append(items, models.ProjectItem{
			ProductID:       in.ProductID,
			NegotiatedPrice: in.NegotiatedPrice,
			Quantity:        qty,
			Subtotal:        in.NegotiatedPrice.Mul(decimal.NewFromInt(int64(qty))),
			ProductName:     product.Name,
			RegularPrice:    catalog,
		})
	}

	needsApproval := NeedsApproval(proposed)
	status := models.ProjectStatusApproved
	if needsApproval {
		status = models.ProjectStatusWaitingApproval
	}

	project := &models.Project{
		LeadID: lead.ID,
		UserID: user.ID,
		Status: status,
	}
	if err := s.repo.CreateWithItems(project, items, !needsApproval); err != nil {
		return nil, nil, false, err
	}

	if needsApproval {
		s.notifier.ProjectPendingApproval(project.ID, lead.Name, user.Name)
	}
	return project, items, needsApproval, nil
}

// Decide applies a manager's approve/reject to a pending project. A
// project no longer in waiting_approval is reported as ErrInvalidState
// and left untouched.
func (s *ProjectService) Decide(manager *models.User, projectID int, action, reason string) (*models.Project, error) {
	switch action {
	case DecisionApprove:
		p, err := s.repo.Approve(projectID, manager.ID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("project %d is not waiting for approval: %w", projectID, ErrInvalidState)
		}
		return p, nil
	case DecisionReject:
		p, err := s.repo.Reject(projectID, reason)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("project %d is not waiting for approval: %w", projectID, ErrInvalidState)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("action %q: %w", action, ErrValidation)
	}
}

func (s *ProjectService) GetByID(user *models.User, id int) (*models.ProjectDetail, error) {
	detail, err := s.repo.GetByID(id, authz.OwnerScope(user))
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return detail, nil
}

func (s *ProjectService) List(user *models.User, status string, limit, offset int) ([]models.ProjectSummary, error) {
	return s.repo.List(repositories.ProjectFilter{
		OwnerID: authz.OwnerScope(user),
		Status:  status,
		Limit:   limit,
		Offset:  offset,
	})
}
