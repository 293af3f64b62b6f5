package services

import (
	"fmt"

	"ispcrm/internal/authz"
	"ispcrm/internal/models"
	"ispcrm/internal/repositories"
)

type LeadRepository interface {
	Create(lead *models.Lead) error
	Update(lead *models.Lead) error
	GetByID(id int) (*models.Lead, error)
	Delete(id int) (bool, error)
	List(f repositories.LeadFilter) ([]models.Lead, error)
	Stats(ownerID int) (*models.LeadStats, error)
}

type LeadService struct {
	repo LeadRepository
}

func NewLeadService(repo LeadRepository) *LeadService {
	return &LeadService{repo: repo}
}

func (s *LeadService) Create(user *models.User, lead *models.Lead) error {
	// owner always comes from the token, not the payload
	lead.UserID = user.ID
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	return s.repo.Create(lead)
}

// Update replaces the editable fields. Status changes are advisory here;
// only project approval sets "converted".
func (s *LeadService) Update(user *models.User, lead *models.Lead) (*models.Lead, error) {
	current, err := s.visible(user, lead.ID)
	if err != nil {
		return nil, err
	}
	if lead.Status == "" {
		lead.Status = current.Status
	}
	if err := s.repo.Update(lead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(lead.ID)
}

func (s *LeadService) GetByID(user *models.User, id int) (*models.Lead, error) {
	return s.visible(user, id)
}

func (s *LeadService) Delete(user *models.User, id int) error {
	if _, err := s.visible(user, id); err != nil {
		return err
	}
	ok, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *LeadService) List(user *models.User, status, search string, limit, offset int) ([]models.Lead, error) {
	return s.repo.List(repositories.LeadFilter{
		OwnerID: authz.OwnerScope(user),
		Status:  status,
		Search:  search,
		Limit:   limit,
		Offset:  offset,
	})
}

func (s *LeadService) Stats(user *models.User) (*models.LeadStats, error) {
	return s.repo.Stats(authz.OwnerScope(user))
}

// visible loads a lead and hides other users' rows from sales roles.
func (s *LeadService) visible(user *models.User, id int) (*models.Lead, error) {
	lead, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil || !authz.CanAccessRecord(user, lead.UserID) {
		return nil, fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}
	return lead, nil
}
