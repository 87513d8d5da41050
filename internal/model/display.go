package model

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PlaceholderImage is served when a listing has no uploaded images
const PlaceholderImage = "/lovable-uploads/9cf1c88a-5f50-447e-a034-cb6515047de2.png"

// Chains a listing can be paid through, gated by price tiers. The tiers are
// marketing placeholders, not a real eligibility rule.
const (
	ethereumThreshold = 100000
	solanaThreshold   = 50000
	polygonThreshold  = 30000
	binanceThreshold  = 20000
)

// PropertyDisplay is the presentation-ready shape of a Property. It is derived,
// never persisted.
type PropertyDisplay struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Price           string   `json:"price"`
	Image           string   `json:"image"`
	Location        string   `json:"location"`
	Agency          string   `json:"agency"`
	Verified        bool     `json:"verified"`
	ROI             string   `json:"roi"`
	AnnualReturn    string   `json:"annualReturn"`
	SupportedChains []string `json:"supportedChains"`
}

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a price as a US-locale currency string with no decimals,
// e.g. 130000 -> "$130,000".
func FormatPrice(price float64) string {
	return usPrinter.Sprintf("$%v", number.Decimal(math.Round(price), number.MaxFractionDigits(0)))
}

// SupportedChains returns the payment chains available at a given price.
// Membership is monotonic: every chain unlocked at a lower price stays
// unlocked at higher prices.
func SupportedChains(price float64) []string {
	chains := []string{}
	if price > ethereumThreshold {
		chains = append(chains, "ethereum")
	}
	if price > solanaThreshold {
		chains = append(chains, "solana")
	}
	if price > polygonThreshold {
		chains = append(chains, "polygon")
	}
	if price > binanceThreshold {
		chains = append(chains, "binance")
	}
	return chains
}

// MapPropertyToDisplay converts a stored property into its display shape.
// ROI and annual return are placeholder figures; no financial computation
// backs them.
func MapPropertyToDisplay(p Property) PropertyDisplay {
	image := PlaceholderImage
	if len(p.Images) > 0 {
		image = p.Images[0]
	}

	return PropertyDisplay{
		ID:              p.ID,
		Title:           p.Title,
		Price:           FormatPrice(p.Price),
		Image:           image,
		Location:        p.Location,
		Agency:          "Propady Real Estate",
		Verified:        p.BlockchainVerified,
		ROI:             "12.08%",
		AnnualReturn:    "8.5%",
		SupportedChains: SupportedChains(p.Price),
	}
}
