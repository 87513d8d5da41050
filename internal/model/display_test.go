package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$130,000", FormatPrice(130000))
	assert.Equal(t, "$100", FormatPrice(100))
	assert.Equal(t, "$1,250,000", FormatPrice(1250000))
	assert.Equal(t, "$0", FormatPrice(0))
	// Fractional prices round to whole dollars
	assert.Equal(t, "$100,000", FormatPrice(99999.5))
}

func TestSupportedChains(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		chains []string
	}{
		{"below every tier", 15000, []string{}},
		{"binance only", 25000, []string{"binance"}},
		{"polygon and binance", 35000, []string{"polygon", "binance"}},
		{"all but ethereum", 75000, []string{"solana", "polygon", "binance"}},
		{"all chains", 150000, []string{"ethereum", "solana", "polygon", "binance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.chains, SupportedChains(tt.price))
		})
	}
}

func TestSupportedChainsThresholdIsExclusive(t *testing.T) {
	// A price exactly at a tier does not unlock it
	assert.Equal(t, []string{}, SupportedChains(20000))
	assert.Equal(t, []string{"binance"}, SupportedChains(20001))
	assert.Equal(t, []string{"solana", "polygon", "binance"}, SupportedChains(100000))
}

func TestMapPropertyToDisplay(t *testing.T) {
	p := Property{
		ID:                 "11111111-2222-3333-4444-555555555555",
		Title:              "Lekki Duplex",
		Price:              130000,
		Location:           "Lagos, Nigeria",
		Images:             []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
		BlockchainVerified: true,
	}

	d := MapPropertyToDisplay(p)
	assert.Equal(t, p.ID, d.ID)
	assert.Equal(t, "Lekki Duplex", d.Title)
	assert.Equal(t, "$130,000", d.Price)
	assert.Equal(t, "https://cdn.example.com/a.png", d.Image)
	assert.Equal(t, "Lagos, Nigeria", d.Location)
	assert.Equal(t, "Propady Real Estate", d.Agency)
	assert.True(t, d.Verified)
	assert.Equal(t, "12.08%", d.ROI)
	assert.Equal(t, "8.5%", d.AnnualReturn)
	assert.Equal(t, []string{"ethereum", "solana", "polygon", "binance"}, d.SupportedChains)
}

func TestMapPropertyToDisplayPlaceholderImage(t *testing.T) {
	d := MapPropertyToDisplay(Property{Title: "Bare listing", Price: 5000})
	assert.Equal(t, PlaceholderImage, d.Image)
	assert.False(t, d.Verified)
	assert.Equal(t, []string{}, d.SupportedChains)
}
