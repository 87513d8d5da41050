package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrowdfundingProject is a funding campaign for a property development.
// CurrentAmount only moves through the store's atomic increment.
type CrowdfundingProject struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	GoalAmount    float64   `json:"goal_amount" gorm:"not null"`
	CurrentAmount float64   `json:"current_amount" gorm:"not null;default:0"`
	ImageURL      string    `json:"image_url" gorm:"type:varchar(512)"`
	EndDate       time.Time `json:"end_date" gorm:"not null"`
	CreatorID     uint      `json:"creator_id" gorm:"index;not null"`
	PropertyType  string    `json:"property_type" gorm:"type:varchar(100);not null"`
	Location      string    `json:"location" gorm:"type:varchar(255);not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *CrowdfundingProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CrowdfundingInvestment records a contribution to a project. Append-only.
type CrowdfundingInvestment struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID  string    `json:"project_id" gorm:"type:uuid;index;not null"`
	InvestorID uint      `json:"investor_id" gorm:"index;not null"`
	Amount     float64   `json:"amount" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (i *CrowdfundingInvestment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
