package store

import (
	"math"

	"github.com/Olocraft/propady/internal/model"
	"gorm.io/gorm"
)

// TokensPerUnit is the fixed token exchange rate: one token per $10 invested.
// Not configurable.
const TokensPerUnit = 10

// InvestmentStore provides data access for property investments
type InvestmentStore struct {
	db *gorm.DB
}

// NewInvestmentStore creates an investment store bound to a database handle
func NewInvestmentStore(db *gorm.DB) *InvestmentStore {
	return &InvestmentStore{db: db}
}

// Record inserts one investment row with the derived token count
func (s *InvestmentStore) Record(propertyID string, investorID uint, amount float64) (model.Investment, error) {
	investment := model.Investment{
		PropertyID: propertyID,
		InvestorID: investorID,
		Amount:     amount,
		Tokens:     int(math.Floor(amount / TokensPerUnit)),
	}
	if err := s.db.Create(&investment).Error; err != nil {
		return model.Investment{}, err
	}
	return investment, nil
}

// ListByInvestor returns a user's investments with their properties attached
func (s *InvestmentStore) ListByInvestor(investorID uint) ([]model.Investment, error) {
	var investments []model.Investment
	err := s.db.Preload("Property").
		Where("investor_id = ?", investorID).
		Order("created_at DESC").
		Find(&investments).Error
	if err != nil {
		return nil, err
	}
	return investments, nil
}
