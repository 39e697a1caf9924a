package fares

import (
	"errors"
	"fmt"
	"math"
)

// Tier is a bookable fare tier.
type Tier string

const (
	TierEssentials Tier = "essentials"
	TierAdvantage  Tier = "advantage"
	TierComfort    Tier = "comfort"
)

// tierMultiplier raises the price one step per tier above essentials.
const tierMultiplier = 1.2

// ErrUnknownTier signals a fare tier outside the three recognized values.
var ErrUnknownTier = errors.New("unknown fare tier")

// Quote is the price of one fare tier for a given flight.
type Quote struct {
	Tier  Tier    `json:"tier"`
	Price float64 `json:"price"`
}

// Tiers lists the recognized fare tiers in ascending price order.
func Tiers() []Tier {
	return []Tier{TierEssentials, TierAdvantage, TierComfort}
}

// ParseTier validates a raw fare tier string.
func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierEssentials, TierAdvantage, TierComfort:
		return Tier(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, raw)
	}
}

// Price computes the canonical (unrounded) price of a tier from a flight's
// base price: essentials pays the base, each step up multiplies by 1.2.
func Price(basePrice float64, tier Tier) (float64, error) {
	switch tier {
	case TierEssentials:
		return basePrice, nil
	case TierAdvantage:
		return basePrice * tierMultiplier, nil
	case TierComfort:
		return basePrice * tierMultiplier * tierMultiplier, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
}

// DisplayPrice rounds a canonical price to two decimals for presentation.
// The canonical value is the one that goes into the payment submission.
func DisplayPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// QuoteAll prices every tier for display.
func QuoteAll(basePrice float64) []Quote {
	quotes := make([]Quote, 0, 3)
	for _, tier := range Tiers() {
		price, _ := Price(basePrice, tier)
		quotes = append(quotes, Quote{Tier: tier, Price: DisplayPrice(price)})
	}
	return quotes
}
