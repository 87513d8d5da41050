package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents a marketplace listing
type Property struct {
	ID                 string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title              string    `json:"title" gorm:"type:varchar(255);not null"`
	Description        string    `json:"description" gorm:"type:text"`
	Price              float64   `json:"price" gorm:"not null"`
	Location           string    `json:"location" gorm:"type:varchar(255);not null"`
	Bedrooms           *int      `json:"bedrooms,omitempty"`
	Bathrooms          *int      `json:"bathrooms,omitempty"`
	Area               *float64  `json:"area,omitempty"`
	Images             []string  `json:"images" gorm:"serializer:json;type:text"`
	OwnerID            uint      `json:"owner_id" gorm:"index;not null"`
	BlockchainVerified bool      `json:"blockchain_verified" gorm:"default:false"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
