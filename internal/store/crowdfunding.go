package store

import (
	"github.com/Olocraft/propady/internal/model"
	"gorm.io/gorm"
)

// CrowdfundingStore provides data access for crowdfunding projects and their
// investments.
type CrowdfundingStore struct {
	db *gorm.DB
}

// NewCrowdfundingStore creates a crowdfunding store bound to a database handle
func NewCrowdfundingStore(db *gorm.DB) *CrowdfundingStore {
	return &CrowdfundingStore{db: db}
}

// CreateProject inserts a new crowdfunding project
func (s *CrowdfundingStore) CreateProject(project *model.CrowdfundingProject) error {
	return s.db.Create(project).Error
}

// ListProjects returns all projects, newest first
func (s *CrowdfundingStore) ListProjects() ([]model.CrowdfundingProject, error) {
	var projects []model.CrowdfundingProject
	if err := s.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project. Returns gorm.ErrRecordNotFound when no
// row matches.
func (s *CrowdfundingStore) GetProject(id string) (model.CrowdfundingProject, error) {
	var project model.CrowdfundingProject
	if err := s.db.Where("id = ?", id).First(&project).Error; err != nil {
		return model.CrowdfundingProject{}, err
	}
	return project, nil
}

// RecordInvestment inserts an investment row and bumps the project's running
// total in the same transaction. The total moves through an atomic SQL
// increment, so concurrent investors never lose each other's contributions.
func (s *CrowdfundingStore) RecordInvestment(projectID string, investorID uint, amount float64) (model.CrowdfundingInvestment, error) {
	investment := model.CrowdfundingInvestment{
		ProjectID:  projectID,
		InvestorID: investorID,
		Amount:     amount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&investment).Error; err != nil {
			return err
		}

		result := tx.Model(&model.CrowdfundingProject{}).
			Where("id = ?", projectID).
			UpdateColumn("current_amount", gorm.Expr("current_amount + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return model.CrowdfundingInvestment{}, err
	}
	return investment, nil
}
