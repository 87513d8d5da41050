package store

import (
	"encoding/json"
	"strings"

	"github.com/Olocraft/propady/internal/model"
	"gorm.io/gorm"
)

// PropertyFilters narrows a listing query. Nil/empty fields impose no
// constraint; price and room bounds are inclusive.
type PropertyFilters struct {
	MinPrice  *float64
	MaxPrice  *float64
	Location  string
	Bedrooms  *int
	Bathrooms *int
	Verified  *bool
}

// SearchFilters drives the free-text marketplace search
type SearchFilters struct {
	SearchTerm string
	MinPrice   *float64
	MaxPrice   *float64
	Location   string
}

// PropertyStore provides data access for property listings
type PropertyStore struct {
	db *gorm.DB
}

// NewPropertyStore creates a property store bound to a database handle
func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// containsPattern builds a case-insensitive substring pattern
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// List returns properties matching the filters, newest first. An empty result
// is not an error.
func (s *PropertyStore) List(filters *PropertyFilters) ([]model.Property, error) {
	query := s.db.Model(&model.Property{})

	if filters != nil {
		if filters.MinPrice != nil {
			query = query.Where("price >= ?", *filters.MinPrice)
		}
		if filters.MaxPrice != nil {
			query = query.Where("price <= ?", *filters.MaxPrice)
		}
		if filters.Location != "" {
			query = query.Where("LOWER(location) LIKE ?", containsPattern(filters.Location))
		}
		if filters.Bedrooms != nil {
			query = query.Where("bedrooms >= ?", *filters.Bedrooms)
		}
		if filters.Bathrooms != nil {
			query = query.Where("bathrooms >= ?", *filters.Bathrooms)
		}
		if filters.Verified != nil {
			query = query.Where("blockchain_verified = ?", *filters.Verified)
		}
	}

	var properties []model.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// GetByID returns a single property. Returns gorm.ErrRecordNotFound when no
// row matches.
func (s *PropertyStore) GetByID(id string) (model.Property, error) {
	var property model.Property
	if err := s.db.Where("id = ?", id).First(&property).Error; err != nil {
		return model.Property{}, err
	}
	return property, nil
}

// Create inserts a new property
func (s *PropertyStore) Create(property *model.Property) error {
	if property.Images == nil {
		property.Images = []string{}
	}
	return s.db.Create(property).Error
}

// Update applies a partial field update by id and returns the updated row.
// Ownership is not checked here; callers enforce it.
func (s *PropertyStore) Update(id string, fields map[string]interface{}) (model.Property, error) {
	// Map updates bypass the model's JSON serializer, so the images slice has
	// to be encoded here or gorm writes it as a raw value list.
	if images, ok := fields["images"].([]string); ok {
		encoded, err := json.Marshal(images)
		if err != nil {
			return model.Property{}, err
		}
		fields["images"] = string(encoded)
	}

	result := s.db.Model(&model.Property{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return model.Property{}, result.Error
	}
	if result.RowsAffected == 0 {
		return model.Property{}, gorm.ErrRecordNotFound
	}
	return s.GetByID(id)
}

// Delete removes a property by id
func (s *PropertyStore) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&model.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner returns all properties belonging to a user, newest first
func (s *PropertyStore) ListByOwner(ownerID uint) ([]model.Property, error) {
	var properties []model.Property
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// Search runs the marketplace free-text search: the term matches title,
// description or location as a case-insensitive substring, price and location
// bounds are ANDed on top, newest first.
func (s *PropertyStore) Search(filters SearchFilters) ([]model.Property, error) {
	query := s.db.Model(&model.Property{})

	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", containsPattern(filters.Location))
	}
	if filters.SearchTerm != "" {
		pattern := containsPattern(filters.SearchTerm)
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var properties []model.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}
