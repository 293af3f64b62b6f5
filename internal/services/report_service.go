package services

import (
	"ispcrm/internal/authz"
	"ispcrm/internal/models"
)

type ReportRepository interface {
	SalesSummary(startDate, endDate string, onlyUserID int) ([]models.SalesReportRow, error)
	LeadsByStatus(startDate, endDate string, onlyUserID int) ([]models.LeadStatusBucket, error)
}

// ReportService is read-only aggregation; values are recomputed per
// request, no caching.
type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) SalesSummary(user *models.User, startDate, endDate string) ([]models.SalesReportRow, error) {
	return s.repo.SalesSummary(startDate, endDate, authz.OwnerScope(user))
}

func (s *ReportService) LeadsByStatus(user *models.User, startDate, endDate string) ([]models.LeadStatusBucket, error) {
	return s.repo.LeadsByStatus(startDate, endDate, authz.OwnerScope(user))
}
