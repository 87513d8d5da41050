package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment records a buyer's stake in a property. Rows are append-only;
// nothing in the service updates or deletes them.
type Investment struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID string    `json:"property_id" gorm:"type:uuid;index;not null"`
	InvestorID uint      `json:"investor_id" gorm:"index;not null"`
	Amount     float64   `json:"amount" gorm:"not null"`
	Tokens     int       `json:"tokens" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
