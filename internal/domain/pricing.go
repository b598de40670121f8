package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Pricing business client multipliers
type Pricing struct {
	BusinessPriceMultiplier    decimal.Decimal
	BusinessDurationMultiplier float64
}

// DefaultPricing returns 1.2x price and 1.5x duration for business clients
func DefaultPricing() Pricing {
	return Pricing{
		BusinessPriceMultiplier:    decimal.RequireFromString(DefaultBusinessPriceMultiplier),
		BusinessDurationMultiplier: DefaultBusinessDurationMultiplier,
	}
}

// TotalPrice amount charged for the service
func (p Pricing) TotalPrice(price decimal.Decimal, clientType ClientType) decimal.Decimal {
	if clientType != ClientBusiness {
		return price
	}
	return price.Mul(p.BusinessPriceMultiplier).Round(2)
}

// DurationMinutes booking-local duration, rounded to whole minutes
func (p Pricing) DurationMinutes(serviceDuration int, clientType ClientType) int {
	if clientType != ClientBusiness {
		return serviceDuration
	}
	return int(math.Round(float64(serviceDuration) * p.BusinessDurationMultiplier))
}
