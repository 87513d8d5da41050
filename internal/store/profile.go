package store

import (
	"github.com/Olocraft/propady/internal/model"
	"gorm.io/gorm"
)

// ProfileStore provides data access for user profiles
type ProfileStore struct {
	db *gorm.DB
}

// NewProfileStore creates a profile store bound to a database handle
func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Create inserts a profile row sharing the user's id
func (s *ProfileStore) Create(profile *model.Profile) error {
	return s.db.Create(profile).Error
}

// Get returns a user's profile. Returns gorm.ErrRecordNotFound when missing.
func (s *ProfileStore) Get(userID uint) (model.Profile, error) {
	var profile model.Profile
	if err := s.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// Update applies a partial field update and returns the updated profile
func (s *ProfileStore) Update(userID uint, fields map[string]interface{}) (model.Profile, error) {
	result := s.db.Model(&model.Profile{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return model.Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return model.Profile{}, gorm.ErrRecordNotFound
	}
	return s.Get(userID)
}
